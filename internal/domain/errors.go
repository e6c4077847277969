package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrNetwork covers connection, DNS and timeout faults.
	ErrNetwork = errors.New("network failure")
	// ErrHTTP matches any *HTTPError via errors.Is.
	ErrHTTP = errors.New("http error")
	// ErrParse is a malformed body or a record that fails boundary validation.
	ErrParse = errors.New("parse failure")

	ErrNoCredential      = errors.New("no credential available")
	ErrNoImages          = errors.New("listing has no images")
	ErrImageIndex        = errors.New("image index out of range")
	ErrDeleteUnsupported = errors.New("delete is not supported")
	ErrEmptyID           = errors.New("property id is required")
)

// HTTPError is a non-2xx answer from the backend.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status %d", e.Status)
	}
	return fmt.Sprintf("bad status %d: %s", e.Status, e.Body)
}

func (e *HTTPError) Is(target error) bool {
	if target == ErrHTTP {
		return true
	}
	return target == ErrNotFound && e.Status == 404
}
