package enrollment

import (
	"errors"
	"fmt"

	"github.com/nomuacademy/academy-server-go/pkg/types"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrInvalidStatus      = errors.New("invalid enrollment status")
	ErrAlreadyWishlisted  = errors.New("course already in wishlist")
	ErrWishlistNotFound   = errors.New("wishlist entry not found")
)

// AlreadyEnrolledError reports a duplicate application together with the
// state the existing enrollment is in, so the client can show it.
type AlreadyEnrolledError struct {
	Status types.EnrollmentStatus
}

func (e *AlreadyEnrolledError) Error() string {
	return fmt.Sprintf("already enrolled in this course (status: %s)", e.Status)
}

func (e *AlreadyEnrolledError) Is(target error) bool {
	return target == ErrAlreadyEnrolled
}
