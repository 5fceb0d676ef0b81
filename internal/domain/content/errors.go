package content

import "errors"

var (
	ErrNotFound         = errors.New("content item not found")
	ErrNotPublished     = errors.New("content item is not published")
	ErrIneligible       = errors.New("member is not eligible for content item")
	ErrValidationFailed = errors.New("completion payload failed validation")
)
