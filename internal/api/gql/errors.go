package gql

import (
	"errors"

	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"

	"github.com/blogql/blog-api/internal/core/domain"
)

// Error codes reported in extensions.code.
const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// Error is what a resolver hands back to the executor. The executor copies
// Extensions into the response, so it must be returned unwrapped.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// Classify maps a domain error to the code and message a client may see.
// Anything unrecognised becomes CodeInternal with a generic message.
func Classify(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}

	switch {
	case errors.Is(err, domain.ErrSignupRejected):
		return &Error{Code: CodeBadUserInput, Message: "Please validate your input"}
	case errors.Is(err, domain.ErrInvalidID):
		return &Error{Code: CodeBadUserInput, Message: "malformed id"}
	case errors.Is(err, domain.ErrInvalidInput):
		return &Error{Code: CodeBadUserInput, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return &Error{Code: CodeUnauthenticated, Message: "Invalid email or password"}
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrSubjectNotFound):
		return &Error{Code: CodeUnauthenticated, Message: "Please verify if your JWT is valid"}
	case errors.Is(err, domain.ErrForbidden):
		return &Error{Code: CodeForbidden, Message: "Please provide a JWT"}
	case errors.Is(err, domain.ErrNotFound):
		return &Error{Code: CodeNotFound, Message: "resource not found"}
	}
	return &Error{Code: CodeInternal, Message: "internal server error"}
}

// ErrorResponse renders e as a data-less GraphQL response, for failures that
// happen before the executor runs.
func ErrorResponse(e *Error) *graphql.Response {
	return &graphql.Response{
		Errors: []*gqlerrors.QueryError{{
			Message:    e.Message,
			Extensions: e.Extensions(),
		}},
	}
}
