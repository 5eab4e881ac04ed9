package documents

import "errors"

var (
	ErrNotFound             = errors.New("document not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrParseFailed          = errors.New("document structure could not be parsed")

	// ErrPartialLink reports that the document record was committed but the
	// owner's list update failed. The document exists; the caller must not
	// treat this as "nothing happened".
	ErrPartialLink = errors.New("document created but owner link failed")
)
