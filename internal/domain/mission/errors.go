package mission

import "errors"

var (
	ErrNotFound     = errors.New("mission not found")
	ErrNotActive    = errors.New("mission is not active")
	ErrIneligible   = errors.New("member is not eligible for mission")
	ErrInvalidProof = errors.New("mission proof is invalid")
)
