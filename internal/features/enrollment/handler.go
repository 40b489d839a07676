package enrollment

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/features/course"
	"github.com/nomuacademy/academy-server-go/internal/middleware"
	"github.com/nomuacademy/academy-server-go/pkg/response"
	"github.com/nomuacademy/academy-server-go/pkg/validation"
)

// Handler processes member-facing enrollment HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs an enrollment handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Create applies the caller to a course.
func (h *Handler) Create(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	var req struct {
		CourseID string `json:"course_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid enrollment payload", err)
		return
	}

	courseID, err := validation.ParseUUID(req.CourseID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	crs, err := course.GetPublished(db, courseID)
	if err != nil {
		h.respondError(c, err, "failed to load course")
		return
	}

	enrollment, err := Create(db, usr.ID, crs)
	if err != nil {
		h.respondError(c, err, "failed to create enrollment")
		return
	}

	message := "수강 신청이 완료되었습니다. 승인을 기다려주세요."
	if crs.IsFree {
		message = "무료 강의 수강 신청이 승인되었습니다."
	}

	response.Created(c, enrollment, message)
}

// Status reports the caller's enrollment state for one course.
func (h *Handler) Status(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	courseID, err := validation.ParseUUID(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	enrollment, err := GetForUserAndCourse(h.db.WithContext(c.Request.Context()), usr.ID, courseID)
	if err != nil {
		if errors.Is(err, ErrEnrollmentNotFound) {
			// Absence is a valid answer, not an error.
			response.Success(c, http.StatusOK, gin.H{"status": nil}, "", nil)
			return
		}
		h.respondError(c, err, "failed to load enrollment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":      enrollment.Status,
		"enrolled_at": enrollment.EnrolledAt,
		"approved_at": enrollment.ApprovedAt,
	}, "", nil)
}

// List returns the caller's enrollments, newest first.
func (h *Handler) List(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	enrollments, err := ListForUser(h.db.WithContext(c.Request.Context()), usr.ID)
	if err != nil {
		h.respondError(c, err, "failed to list enrollments")
		return
	}

	response.Success(c, http.StatusOK, enrollments, "", nil)
}

// Access evaluates whether the caller may open a course's content. Anonymous
// callers get a definitive no rather than an authentication error.
func (h *Handler) Access(c *gin.Context) {
	courseID, err := validation.ParseUUID(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	crs, err := course.GetPublished(db, courseID)
	if err != nil {
		h.respondError(c, err, "failed to load course")
		return
	}

	var userID *uuid.UUID
	if usr, ok := middleware.GetUserFromContext(c); ok {
		userID = &usr.ID
	}

	decision, err := CheckAccess(db, userID, crs)
	if err != nil {
		h.respondError(c, err, "failed to evaluate access")
		return
	}

	response.Success(c, http.StatusOK, decision, "", nil)
}

// AddWishlist saves a course to the caller's wishlist.
func (h *Handler) AddWishlist(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	var req struct {
		CourseID string `json:"course_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid wishlist payload", err)
		return
	}

	courseID, err := validation.ParseUUID(req.CourseID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	if _, err := course.GetPublished(db, courseID); err != nil {
		h.respondError(c, err, "failed to load course")
		return
	}

	entry, err := AddToWishlist(db, usr.ID, courseID)
	if err != nil {
		h.respondError(c, err, "failed to add to wishlist")
		return
	}

	response.Created(c, entry, "찜 목록에 추가되었습니다.")
}

// ListWishlist returns the caller's wishlist.
func (h *Handler) ListWishlist(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	entries, err := ListWishlist(h.db.WithContext(c.Request.Context()), usr.ID)
	if err != nil {
		h.respondError(c, err, "failed to list wishlist")
		return
	}

	response.Success(c, http.StatusOK, entries, "", nil)
}

// RemoveWishlist deletes a course from the caller's wishlist.
func (h *Handler) RemoveWishlist(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	courseID, err := validation.ParseUUID(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	if err := RemoveFromWishlist(h.db.WithContext(c.Request.Context()), usr.ID, courseID); err != nil {
		h.respondError(c, err, "failed to remove from wishlist")
		return
	}

	response.Success(c, http.StatusOK, true, "찜 목록에서 삭제되었습니다.", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	var dupErr *AlreadyEnrolledError

	switch {
	case errors.As(err, &dupErr):
		status = http.StatusBadRequest
		message = "이미 신청한 강의입니다. (현재 상태: " + dupErr.Status.Label() + ")"
	case errors.Is(err, ErrEnrollmentNotFound):
		status = http.StatusNotFound
		message = "Enrollment not found."
	case errors.Is(err, course.ErrCourseNotFound):
		status = http.StatusNotFound
		message = "Course not found."
	case errors.Is(err, ErrInvalidStatus):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, ErrAlreadyWishlisted):
		status = http.StatusBadRequest
		message = "이미 찜한 강의입니다."
	case errors.Is(err, ErrWishlistNotFound):
		status = http.StatusNotFound
		message = "Wishlist entry not found."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
