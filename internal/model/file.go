package model

import (
	"io"
	"strings"
)

// FileKind is the attachment category of a staged file.
type FileKind string

const (
	// FileKindImage is attached as an app's iconURL
	FileKindImage FileKind = "image"

	// FileKindDocument is attached as an app's downloadURL
	FileKindDocument FileKind = "document"

	// FileKindOther is never attached
	FileKindOther FileKind = "other"
)

// MIME types accepted as documents
const (
	MIMETypePDF      = "application/pdf"
	MIMETypeText     = "text/plain"
	MIMETypeMSWord   = "application/msword"
	MIMETypeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEPrefixImage  = "image/"
	MIMETypeFallback = "application/octet-stream"
)

var documentTypes = map[string]bool{
	MIMETypePDF:    true,
	MIMETypeText:   true,
	MIMETypeMSWord: true,
	MIMETypeDOCX:   true,
}

// String returns the string representation of FileKind
func (k FileKind) String() string {
	return string(k)
}

// Attachable reports whether files of this kind are attached to apps.
func (k FileKind) Attachable() bool {
	return k == FileKindImage || k == FileKindDocument
}

// Classify maps a declared MIME type to a FileKind. Parameters such as
// "; charset=utf-8" are ignored.
func Classify(mimeType string) FileKind {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.ToLower(strings.TrimSpace(base))

	switch {
	case strings.HasPrefix(base, MIMEPrefixImage):
		return FileKindImage
	case documentTypes[base]:
		return FileKindDocument
	default:
		return FileKindOther
	}
}

// StagedFile is a user-selected file that has not been attached yet.
type StagedFile struct {
	ID       string
	Name     string
	Size     int64
	MIMEType string

	// Open returns the file contents. It may be called once per attachment.
	Open func() (io.ReadCloser, error)
}

// Kind classifies the file by its declared MIME type.
func (f StagedFile) Kind() FileKind {
	return Classify(f.MIMEType)
}

// StagedFileNames returns the display names of files, in order.
func StagedFileNames(files []StagedFile) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}
