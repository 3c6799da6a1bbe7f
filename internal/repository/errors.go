package repository

import "errors"

var (
	// ErrMalformedManifest is returned when manifest text is not JSON or has
	// no apps array.
	ErrMalformedManifest = errors.New("malformed manifest")

	// ErrFileRead is returned when a staged file cannot be converted.
	ErrFileRead = errors.New("file read failed")

	// ErrClipboardDenied is recorded when the clipboard rejects a write.
	ErrClipboardDenied = errors.New("clipboard access denied")

	// ErrNoFilesStaged is returned by Attach when nothing is staged.
	ErrNoFilesStaged = errors.New("no files staged")

	// ErrAttachInProgress is returned by Attach while another call converts
	// files.
	ErrAttachInProgress = errors.New("attach in progress")
)

// ManifestError describes why manifest text was rejected.
type ManifestError struct {
	Reason string
	Err    error
}

func (e *ManifestError) Error() string {
	return e.Reason
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// Is makes every ManifestError match ErrMalformedManifest.
func (e *ManifestError) Is(target error) bool {
	return target == ErrMalformedManifest
}
