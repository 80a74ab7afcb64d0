package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidID = fmt.Errorf("%w: malformed id", ErrInvalidInput)

// ErrSignupRejected is the only error signup ever reports to a caller.
var ErrSignupRejected = fmt.Errorf("%w: signup rejected", ErrInvalidInput)
var ErrUserExists = errors.New("user already exists")

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrSubjectNotFound = errors.New("token subject not found")

// ErrForbidden is returned when a mutation runs without an authenticated viewer.
var ErrForbidden = errors.New("authentication required")

// ErrEmptyFilter guards update and delete calls that would otherwise match every document.
var ErrEmptyFilter = errors.New("refusing to mutate with an empty filter")
