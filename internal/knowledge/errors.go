package knowledge

import "errors"

var (
	// ErrNotFound indicates a document was not found.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate indicates a document with the same checksum already exists.
	ErrDuplicate = errors.New("document already ingested")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoText indicates the payload produced no extractable text.
	ErrNoText = errors.New("document has no extractable text")
)
