package services

import (
	"errors"
	"fmt"
	"net/http"

	"socialfeed/app/repositories"
)

// Error kinds. Every error returned by this package wraps exactly one of
// them, so callers can classify with errors.Is.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrAlreadyDone       = errors.New("already done")
	ErrNotDone           = errors.New("not done")
	ErrDependencyFailure = errors.New("dependency failure")
	ErrConflict          = errors.New("conflict")
)

var (
	ErrNoCredential      = newError(ErrUnauthenticated, "no token provided")
	ErrInvalidCredential = newError(ErrUnauthenticated, "invalid or expired token")
	ErrWrongPassword     = newError(ErrUnauthenticated, "invalid credentials")

	ErrUserNotFound    = newError(ErrNotFound, "user not found")
	ErrPostNotFound    = newError(ErrNotFound, "post not found")
	ErrCommentNotFound = newError(ErrNotFound, "comment not found")

	ErrNotPostOwner    = newError(ErrForbidden, "you can only modify your own posts")
	ErrNotAccountOwner = newError(ErrForbidden, "you can only modify your own account")

	ErrAlreadyLiked = newError(ErrAlreadyDone, "post already liked")
	ErrNotLiked     = newError(ErrNotDone, "post not liked yet")

	ErrEmailInUse = newError(ErrConflict, "email already in use")

	ErrEmptyQuery    = newError(ErrInvalidArgument, "search query is required")
	ErrEmptyPost     = newError(ErrInvalidArgument, "post needs a title, description or image")
	ErrImageRequired = newError(ErrInvalidArgument, "image is required")
)

// Error is a specific failure tied to one kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func invalidArgument(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}

func dependencyFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDependencyFailure, err)
}

// storeError translates a repository error. notFound is returned for
// missing records.
func storeError(op string, err error, notFound error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return notFound
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrEmailInUse
	default:
		return dependencyFailure(op, err)
	}
}

// StatusCode maps an error to the HTTP status it is reported with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyDone), errors.Is(err, ErrNotDone), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrDependencyFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
