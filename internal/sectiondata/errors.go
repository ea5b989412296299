package sectiondata

import (
	"errors"
	"fmt"
)

// ErrNoUser is returned by Client.Fetch when no user is supplied. Queries
// never surface it: an unbound query simply does not fetch.
var ErrNoUser = errors.New("sectiondata: no user")

// Messages shown for backend failures.
const (
	MsgNetwork      = "Network error occurred"
	MsgFetchDefault = "Failed to fetch data"
)

// UnknownSectionError reports a section without a dispatch case.
type UnknownSectionError struct {
	Section Section
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("Unknown section: %s", e.Section)
}

// FetchError reports a transport failure or a Success=false envelope.
// Message is safe to show to users.
type FetchError struct {
	Section Section
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsUnknownSection reports whether err wraps an UnknownSectionError.
func IsUnknownSection(err error) bool {
	var target *UnknownSectionError
	return errors.As(err, &target)
}

// Message returns the text of err that may be shown to users.
func Message(err error) string {
	var fetchErr *FetchError
	var unknown *UnknownSectionError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fetchErr):
		return fetchErr.Message
	case errors.As(err, &unknown):
		return unknown.Error()
	default:
		return MsgFetchDefault
	}
}
