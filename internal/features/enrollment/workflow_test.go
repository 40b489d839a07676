package enrollment

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nomuacademy/academy-server-go/internal/features/course"
	"github.com/nomuacademy/academy-server-go/internal/features/user"
	"github.com/nomuacademy/academy-server-go/internal/middleware"
	"github.com/nomuacademy/academy-server-go/pkg/types"
)

// The production schema leans on Postgres column defaults that sqlite does
// not parse, so the test tables are created directly.
var testSchema = []string{
	`CREATE TABLE users (
		id uuid PRIMARY KEY,
		created_at datetime,
		updated_at datetime,
		name varchar(100) NOT NULL,
		email varchar(255) NOT NULL UNIQUE,
		password_hash varchar(255) NOT NULL,
		license_number varchar(50) NOT NULL UNIQUE,
		experience int NOT NULL DEFAULT 0,
		specialization text NOT NULL DEFAULT '{}',
		profile_image text,
		is_admin boolean NOT NULL DEFAULT false
	)`,
	`CREATE TABLE courses (
		id uuid PRIMARY KEY,
		created_at datetime,
		updated_at datetime,
		title varchar(255) NOT NULL,
		description text NOT NULL,
		category varchar(100) NOT NULL,
		difficulty varchar(20) NOT NULL,
		duration int NOT NULL DEFAULT 0,
		price numeric(12,2) NOT NULL DEFAULT 0,
		is_free boolean NOT NULL DEFAULT false,
		is_published boolean NOT NULL DEFAULT false,
		video_url text,
		thumbnail text,
		learning_objectives text NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE user_enrollments (
		id uuid PRIMARY KEY,
		created_at datetime,
		updated_at datetime,
		user_id uuid NOT NULL,
		course_id uuid NOT NULL,
		status varchar(20) NOT NULL DEFAULT 'pending',
		enrolled_at datetime NOT NULL,
		approved_at datetime,
		approved_by uuid
	)`,
	`CREATE UNIQUE INDEX idx_user_course ON user_enrollments (user_id, course_id)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection would otherwise get its own empty in-memory
	// database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, isAdmin bool) user.User {
	t.Helper()

	usr := user.User{
		Name:           "홍길동",
		Email:          uuid.NewString() + "@example.com",
		PasswordHash:   "not-a-real-hash",
		LicenseNumber:  uuid.NewString(),
		Specialization: pq.StringArray{},
		IsAdmin:        isAdmin,
	}
	require.NoError(t, db.Create(&usr).Error)
	return usr
}

func seedCourse(t *testing.T, db *gorm.DB, free bool) course.Course {
	t.Helper()

	crs := course.Course{
		Title:              "부당해고 구제 실무",
		Description:        "부당해고 구제신청 절차를 다룹니다.",
		Category:           "노동법",
		Difficulty:         types.DifficultyBeginner,
		IsFree:             free,
		IsPublished:        true,
		LearningObjectives: pq.StringArray{},
	}
	require.NoError(t, db.Create(&crs).Error)
	return crs
}

func TestCreate_FreeCourseAutoApproved(t *testing.T) {
	db := openTestDB(t)
	usr := seedUser(t, db, false)
	crs := seedCourse(t, db, true)

	enrollment, err := Create(db, usr.ID, crs)
	require.NoError(t, err)

	assert.Equal(t, types.EnrollmentApproved, enrollment.Status)
	require.NotNil(t, enrollment.ApprovedAt)
	assert.Nil(t, enrollment.ApprovedBy, "auto-approval records no approver")
}

func TestCreate_PaidCourseStartsPending(t *testing.T) {
	db := openTestDB(t)
	usr := seedUser(t, db, false)
	crs := seedCourse(t, db, false)

	enrollment, err := Create(db, usr.ID, crs)
	require.NoError(t, err)

	assert.Equal(t, types.EnrollmentPending, enrollment.Status)
	assert.Nil(t, enrollment.ApprovedAt)
	assert.Nil(t, enrollment.ApprovedBy)
}

func TestCreate_DuplicateReportsCurrentStatus(t *testing.T) {
	db := openTestDB(t)
	usr := seedUser(t, db, false)
	crs := seedCourse(t, db, false)

	first, err := Create(db, usr.ID, crs)
	require.NoError(t, err)

	_, err = Create(db, usr.ID, crs)
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	var dupErr *AlreadyEnrolledError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, types.EnrollmentPending, dupErr.Status)

	// Rejection does not reopen applications.
	_, err = Transition(db, first.ID, types.EnrollmentRejected, nil)
	require.NoError(t, err)

	_, err = Create(db, usr.ID, crs)
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, types.EnrollmentRejected, dupErr.Status)

	var count int64
	require.NoError(t, db.Model(&Enrollment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTransition_ApproveStampsAuditFields(t *testing.T) {
	db := openTestDB(t)
	usr := seedUser(t, db, false)
	admin := seedUser(t, db, true)
	crs := seedCourse(t, db, false)

	enrollment, err := Create(db, usr.ID, crs)
	require.NoError(t, err)

	approved, err := Transition(db, enrollment.ID, types.EnrollmentApproved, &admin.ID)
	require.NoError(t, err)

	assert.Equal(t, types.EnrollmentApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
}

func TestTransition_RejectClearsAuditFields(t *testing.T) {
	db := openTestDB(t)
	usr := seedUser(t, db, false)
	admin := seedUser(t, db, true)
	crs := seedCourse(t, db, false)

	enrollment, err := Create(db, usr.ID, crs)
	require.NoError(t, err)

	_, err = Transition(db, enrollment.ID, types.EnrollmentApproved, &admin.ID)
	require.NoError(t, err)

	rejected, err := Transition(db, enrollment.ID, types.EnrollmentRejected, &admin.ID)
	require.NoError(t, err)

	assert.Equal(t, types.EnrollmentRejected, rejected.Status)
	assert.Nil(t, rejected.ApprovedAt)
	assert.Nil(t, rejected.ApprovedBy)
}

func TestTransition_PendingIsNotAnAdminAction(t *testing.T) {
	db := openTestDB(t)
	usr := seedUser(t, db, false)
	admin := seedUser(t, db, true)
	crs := seedCourse(t, db, false)

	enrollment, err := Create(db, usr.ID, crs)
	require.NoError(t, err)

	approved, err := Transition(db, enrollment.ID, types.EnrollmentApproved, &admin.ID)
	require.NoError(t, err)

	_, err = Transition(db, enrollment.ID, types.EnrollmentPending, &admin.ID)
	require.ErrorIs(t, err, ErrInvalidStatus)

	// The rejected transition must not have touched the row.
	reloaded, err := Get(db, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, types.EnrollmentApproved, reloaded.Status)
	require.NotNil(t, reloaded.ApprovedAt)
	assert.Equal(t, approved.ApprovedBy, reloaded.ApprovedBy)
}

func TestTransition_UnknownStatusRejected(t *testing.T) {
	db := openTestDB(t)

	_, err := Transition(db, uuid.New(), types.EnrollmentStatus("archived"), nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransition_ApproveIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	usr := seedUser(t, db, false)
	admin := seedUser(t, db, true)
	crs := seedCourse(t, db, false)

	enrollment, err := Create(db, usr.ID, crs)
	require.NoError(t, err)

	first, err := Transition(db, enrollment.ID, types.EnrollmentApproved, &admin.ID)
	require.NoError(t, err)

	second, err := Transition(db, enrollment.ID, types.EnrollmentApproved, &admin.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.ApprovedBy, second.ApprovedBy)
	require.NotNil(t, second.ApprovedAt)
}

func TestTransition_FallsBackToAnyAdmin(t *testing.T) {
	db := openTestDB(t)
	usr := seedUser(t, db, false)
	admin := seedUser(t, db, true)
	crs := seedCourse(t, db, false)

	enrollment, err := Create(db, usr.ID, crs)
	require.NoError(t, err)

	approved, err := Transition(db, enrollment.ID, types.EnrollmentApproved, nil)
	require.NoError(t, err)

	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
}

func TestCountByStatus_TalliesAllStates(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, true)
	paid := seedCourse(t, db, false)
	free := seedCourse(t, db, true)

	pendingUser := seedUser(t, db, false)
	_, err := Create(db, pendingUser.ID, paid)
	require.NoError(t, err)

	rejectedUser := seedUser(t, db, false)
	rejected, err := Create(db, rejectedUser.ID, paid)
	require.NoError(t, err)
	_, err = Transition(db, rejected.ID, types.EnrollmentRejected, &admin.ID)
	require.NoError(t, err)

	approvedUser := seedUser(t, db, false)
	_, err = Create(db, approvedUser.ID, free)
	require.NoError(t, err)

	stats, err := CountByStatus(db)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 1, stats.Pending)
	assert.EqualValues(t, 1, stats.Approved)
	assert.EqualValues(t, 1, stats.Rejected)
}

func newStatusRouter(db *gorm.DB, usr user.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(db, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	router.GET("/api/enrollments/status/:courseId", func(c *gin.Context) {
		c.Set("user", &middleware.User{ID: usr.ID, Email: usr.Email, Name: usr.Name})
	}, handler.Status)
	return router
}

func statusResponse(t *testing.T, router *gin.Engine, courseID uuid.UUID) map[string]interface{} {
	t.Helper()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/enrollments/status/"+courseID.String(), nil)
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestStatusEndpoint_NullWhenNotEnrolled(t *testing.T) {
	db := openTestDB(t)
	usr := seedUser(t, db, false)
	crs := seedCourse(t, db, false)

	data := statusResponse(t, newStatusRouter(db, usr), crs.ID)

	status, present := data["status"]
	require.True(t, present, "status key must be present even when absent from the table")
	assert.Nil(t, status)
}

func TestStatusEndpoint_ReportsEnrollmentFields(t *testing.T) {
	db := openTestDB(t)
	usr := seedUser(t, db, false)
	crs := seedCourse(t, db, true)

	_, err := Create(db, usr.ID, crs)
	require.NoError(t, err)

	data := statusResponse(t, newStatusRouter(db, usr), crs.ID)

	assert.Equal(t, string(types.EnrollmentApproved), data["status"])
	assert.NotEmpty(t, data["enrolled_at"])
	assert.NotEmpty(t, data["approved_at"])
}
