package receipt

import "errors"

var (
	ErrNotFound        = errors.New("receipt not found")
	ErrAlreadyReviewed = errors.New("receipt already reviewed")
	ErrInvalidImage    = errors.New("receipt image is invalid")
)
