package enrollment

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/features/course"
	"github.com/nomuacademy/academy-server-go/pkg/types"
)

// AccessDecision explains an access check, not just its outcome.
type AccessDecision struct {
	CanAccess bool                    `json:"can_access"`
	IsFree    bool                    `json:"is_free"`
	Status    *types.EnrollmentStatus `json:"status,omitempty"`
}

// Decide evaluates course access for a possibly-anonymous caller. The order
// matters: anonymous callers are rejected before the free check, so free
// courses still require an account. A pending or rejected enrollment grants
// nothing.
func Decide(authenticated bool, isFree bool, status *types.EnrollmentStatus) AccessDecision {
	decision := AccessDecision{IsFree: isFree, Status: status}

	if !authenticated {
		return decision
	}
	if isFree {
		decision.CanAccess = true
		return decision
	}
	if status != nil && *status == types.EnrollmentApproved {
		decision.CanAccess = true
	}

	return decision
}

// CheckAccess resolves the caller's enrollment and evaluates access to one
// course.
func CheckAccess(db *gorm.DB, userID *uuid.UUID, crs course.Course) (AccessDecision, error) {
	if userID == nil {
		return Decide(false, crs.IsFree, nil), nil
	}

	var status *types.EnrollmentStatus
	enrollment, err := GetForUserAndCourse(db, *userID, crs.ID)
	switch err {
	case nil:
		status = &enrollment.Status
	case ErrEnrollmentNotFound:
		// No application on file; free courses are still accessible.
	default:
		return AccessDecision{}, err
	}

	return Decide(true, crs.IsFree, status), nil
}
