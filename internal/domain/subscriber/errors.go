package subscriber

import "errors"

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrAuthIDRequired     = errors.New("auth id is required")
	ErrInvalidEmail       = errors.New("email is invalid")
	ErrInvalidTier        = errors.New("tier is invalid")
	ErrDuplicateAuthID    = errors.New("subscriber with this auth id already exists")
)
