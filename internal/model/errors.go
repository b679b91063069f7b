package model

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrCategoryInUse    = errors.New("category has memories")
	ErrValidation       = errors.New("validation error")
)
