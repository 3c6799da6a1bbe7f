package platform

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/ytget/source-editor/internal/model"
)

// DataURLPrefix starts every inline data string
const DataURLPrefix = "data:"

// EncodeDataURL reads r to the end and returns "data:<mime>;base64,<payload>".
// An empty mimeType is written as application/octet-stream.
func EncodeDataURL(r io.Reader, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = model.MIMETypeFallback
	}

	var b strings.Builder
	b.WriteString(DataURLPrefix)
	b.WriteString(mimeType)
	b.WriteString(";base64,")

	enc := base64.NewEncoder(base64.StdEncoding, &b)
	if _, err := io.Copy(enc, r); err != nil {
		return "", fmt.Errorf("read file contents: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeStagedFile opens f and encodes its contents with its declared type.
func EncodeStagedFile(f model.StagedFile) (string, error) {
	if f.Open == nil {
		return "", fmt.Errorf("file %s has no contents", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	return EncodeDataURL(rc, f.MIMEType)
}

// IsDataURL reports whether s looks like a base64 data URL.
func IsDataURL(s string) bool {
	header, _, ok := strings.Cut(s, ",")
	return ok && strings.HasPrefix(header, DataURLPrefix) && strings.HasSuffix(header, ";base64")
}
