package enrollment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nomuacademy/academy-server-go/pkg/types"
)

func statusPtr(s types.EnrollmentStatus) *types.EnrollmentStatus { return &s }

func TestDecide_AnonymousNeverAccesses(t *testing.T) {
	// Even free courses require an account.
	assert.False(t, Decide(false, true, nil).CanAccess)
	assert.False(t, Decide(false, false, nil).CanAccess)
	assert.False(t, Decide(false, false, statusPtr(types.EnrollmentApproved)).CanAccess)
}

func TestDecide_FreeCourse(t *testing.T) {
	decision := Decide(true, true, nil)
	assert.True(t, decision.CanAccess)
	assert.True(t, decision.IsFree)
}

func TestDecide_PaidCourse(t *testing.T) {
	tests := []struct {
		name   string
		status *types.EnrollmentStatus
		want   bool
	}{
		{"no enrollment", nil, false},
		{"pending", statusPtr(types.EnrollmentPending), false},
		{"approved", statusPtr(types.EnrollmentApproved), true},
		{"rejected", statusPtr(types.EnrollmentRejected), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(true, false, tt.status)
			assert.Equal(t, tt.want, decision.CanAccess)
		})
	}
}

func TestDecide_CarriesStatus(t *testing.T) {
	decision := Decide(true, false, statusPtr(types.EnrollmentPending))
	assert.NotNil(t, decision.Status)
	assert.Equal(t, types.EnrollmentPending, *decision.Status)
}
