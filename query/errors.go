package query

import "errors"

var (
	// ErrMemberNotFound indicates the requested member does not exist.
	ErrMemberNotFound = errors.New("go-tickets: member not found")
)
