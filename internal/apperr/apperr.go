package apperr

import (
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/containerd/errdefs/pkg/errhttp"
)

// Error constructors for the failure kinds the API distinguishes. Each wraps
// an errdefs sentinel so callers can classify with errdefs.IsNotFound etc.
// Messages are noun phrases; the sentinel supplies the trailing kind text.

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrNotFound)...)
}

func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrInvalidArgument)...)
}

func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrConflict)...)
}

func PermissionDeniedf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrPermissionDenied)...)
}

func Unauthenticatedf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrUnauthenticated)...)
}

func Internalf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrInternal)...)
}

// HTTPStatus maps a classified error to its response status code.
// Unclassified errors fall through to 500.
func HTTPStatus(err error) int {
	return errhttp.ToHTTP(err)
}
