package enrollment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nomuacademy/academy-server-go/pkg/types"
)

func TestAlreadyEnrolledError_MatchesSentinel(t *testing.T) {
	err := &AlreadyEnrolledError{Status: types.EnrollmentPending}

	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.NotErrorIs(t, err, ErrEnrollmentNotFound)

	wrapped := fmt.Errorf("create enrollment: %w", err)
	assert.ErrorIs(t, wrapped, ErrAlreadyEnrolled)

	var dup *AlreadyEnrolledError
	assert.True(t, errors.As(wrapped, &dup))
	assert.Equal(t, types.EnrollmentPending, dup.Status)
}

func TestAlreadyEnrolledError_Message(t *testing.T) {
	err := &AlreadyEnrolledError{Status: types.EnrollmentApproved}
	assert.Contains(t, err.Error(), "approved")
}
