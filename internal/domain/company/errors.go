package company

import "errors"

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrSlugRequired     = errors.New("company slug is required")
	ErrNameRequired     = errors.New("company name is required")
	ErrInvalidStateCode = errors.New("state code must be two letters")
	ErrSlugExists       = errors.New("company slug already exists")
)
