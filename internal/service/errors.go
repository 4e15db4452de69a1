package service

import "errors"

// Sentinel errors the HTTP layer maps to status codes. Anything else
// surfaces as a 500 with the raw message.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid")
)
