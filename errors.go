package htmlpatch

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyHTML  = errors.New("page content cannot be empty")
	ErrEmptyTitle = errors.New("page title cannot be empty")

	// Site and label validation errors.
	ErrInvalidCard   = errors.New("invalid twitter card type")
	ErrInvalidHandle = errors.New("invalid site handle")
)
