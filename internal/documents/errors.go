package documents

import "errors"

var (
	// ErrEmptyFile rejects uploads with no content, before any I/O.
	ErrEmptyFile = errors.New("empty file")
	// ErrUnsupportedFormat rejects anything that is not .pdf or .docx.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrNotFound indicates the document id is unknown for this user.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates missing or malformed request data.
	ErrInvalidInput = errors.New("invalid input")
)
