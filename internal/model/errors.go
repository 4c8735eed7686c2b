package model

import "errors"

// Error kinds. Callers wrap one of these together with the underlying cause
// and test for it with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrUserInput  = errors.New("user input error")
	ErrNetwork    = errors.New("network error")
	ErrNotFound   = errors.New("not found")
	ErrUpload     = errors.New("upload error")
	ErrDecode     = errors.New("decode error")
	ErrStorage    = errors.New("storage error")
)
