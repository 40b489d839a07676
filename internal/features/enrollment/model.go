package enrollment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/features/course"
	"github.com/nomuacademy/academy-server-go/internal/features/user"
	"github.com/nomuacademy/academy-server-go/pkg/metrics"
	"github.com/nomuacademy/academy-server-go/pkg/types"
)

// Enrollment ties a user to a course application and tracks its review
// state. Approval metadata lives on the row itself: approved_at and
// approved_by are set together and cleared together.
type Enrollment struct {
	types.BaseModel

	UserID     uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_user_course;column:user_id" json:"user_id"`
	CourseID   uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_user_course;column:course_id" json:"course_id"`
	Status     types.EnrollmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	EnrolledAt time.Time              `gorm:"not null;column:enrolled_at" json:"enrolled_at"`
	ApprovedAt *time.Time             `gorm:"column:approved_at" json:"approved_at,omitempty"`
	ApprovedBy *uuid.UUID             `gorm:"type:uuid;column:approved_by" json:"approved_by,omitempty"`

	User   *user.User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course *course.Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// TableName overrides the default table name.
func (Enrollment) TableName() string { return "user_enrollments" }

// Create applies a user to a course. Free courses are approved on the spot
// with no approver recorded; paid courses start pending review. The unique
// index on (user_id, course_id) is the authority on duplicates: the
// pre-flight read exists only to surface the current status in the error.
func Create(db *gorm.DB, userID uuid.UUID, crs course.Course) (Enrollment, error) {
	var existing Enrollment
	err := db.First(&existing, "user_id = ? AND course_id = ?", userID, crs.ID).Error
	if err == nil {
		return existing, &AlreadyEnrolledError{Status: existing.Status}
	}
	if err != gorm.ErrRecordNotFound {
		return Enrollment{}, err
	}

	enrollment := Enrollment{
		UserID:     userID,
		CourseID:   crs.ID,
		Status:     types.EnrollmentPending,
		EnrolledAt: time.Now().UTC(),
	}

	if crs.IsFree {
		now := time.Now().UTC()
		enrollment.Status = types.EnrollmentApproved
		enrollment.ApprovedAt = &now
	}

	if err := db.Create(&enrollment).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Lost the race to a concurrent application.
			if db.First(&existing, "user_id = ? AND course_id = ?", userID, crs.ID).Error == nil {
				return existing, &AlreadyEnrolledError{Status: existing.Status}
			}
			return Enrollment{}, &AlreadyEnrolledError{Status: types.EnrollmentPending}
		}
		return Enrollment{}, err
	}

	metrics.RecordEnrollmentDecision(string(enrollment.Status))
	return enrollment, nil
}

// Transition moves an enrollment to a new review state. Only approved and
// rejected are administrative decisions; sending an enrollment back to
// pending is not supported. Approval stamps approved_at and the approving
// admin; rejection clears both. When the caller's own admin identity is
// unknown, the approver falls back to an arbitrary admin-flagged account.
func Transition(db *gorm.DB, id uuid.UUID, status types.EnrollmentStatus, actingAdmin *uuid.UUID) (Enrollment, error) {
	if status != types.EnrollmentApproved && status != types.EnrollmentRejected {
		return Enrollment{}, ErrInvalidStatus
	}

	enrollment, err := Get(db, id)
	if err != nil {
		return enrollment, err
	}

	updates := map[string]interface{}{
		"status":      status,
		"approved_at": nil,
		"approved_by": nil,
	}

	if status == types.EnrollmentApproved {
		approver := actingAdmin
		if approver == nil {
			if admin, err := user.FindAnyAdmin(db); err == nil {
				approver = &admin.ID
			}
		}
		updates["approved_at"] = time.Now().UTC()
		updates["approved_by"] = approver
	}

	if err := db.Model(&Enrollment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return enrollment, err
	}

	metrics.RecordEnrollmentDecision(string(status))
	return Get(db, id)
}

// Get retrieves a single enrollment with its user and course.
func Get(db *gorm.DB, id uuid.UUID) (Enrollment, error) {
	var enrollment Enrollment
	err := db.
		Preload("User").
		Preload("Course").
		First(&enrollment, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return enrollment, ErrEnrollmentNotFound
		}
		return enrollment, err
	}
	return enrollment, nil
}

// GetForUserAndCourse looks up a user's enrollment in one course.
func GetForUserAndCourse(db *gorm.DB, userID, courseID uuid.UUID) (Enrollment, error) {
	var enrollment Enrollment
	err := db.First(&enrollment, "user_id = ? AND course_id = ?", userID, courseID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return enrollment, ErrEnrollmentNotFound
		}
		return enrollment, err
	}
	return enrollment, nil
}

// ListForUser returns a user's enrollments newest first, with course
// summaries attached.
func ListForUser(db *gorm.DB, userID uuid.UUID) ([]Enrollment, error) {
	var enrollments []Enrollment
	err := db.
		Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

// ListAll returns every enrollment, optionally filtered by status (admin
// surface).
func ListAll(db *gorm.DB, status string) ([]Enrollment, error) {
	query := db.
		Preload("User").
		Preload("Course").
		Order("enrolled_at DESC")

	if status != "" {
		if !types.EnrollmentStatus(status).Valid() {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}

	var enrollments []Enrollment
	err := query.Find(&enrollments).Error
	return enrollments, err
}

// Stats tallies enrollments per review state.
type Stats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// CountByStatus computes the admin dashboard tally in one pass.
func CountByStatus(db *gorm.DB) (Stats, error) {
	var rows []struct {
		Status types.EnrollmentStatus
		Count  int64
	}

	err := db.Model(&Enrollment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case types.EnrollmentPending:
			stats.Pending = row.Count
		case types.EnrollmentApproved:
			stats.Approved = row.Count
		case types.EnrollmentRejected:
			stats.Rejected = row.Count
		}
	}

	return stats, nil
}
