package service

import "errors"

var (
	// ErrUnauthorized is returned when the caller cannot be identified.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches every *NotFoundError through errors.Is.
	ErrNotFound = errors.New("not found")

	ErrSiteNotFound    = &NotFoundError{Resource: "Site"}
	ErrProfileNotFound = &NotFoundError{Resource: "Profile"}
)

// NotFoundError reports a missing or foreign resource. Records owned by another
// user are reported the same way as records that do not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ProviderError carries a message from an external provider that is safe to
// show to the caller, such as "User already registered".
type ProviderError struct {
	Message string
	Status  int
}

func (e *ProviderError) Error() string {
	return e.Message
}
