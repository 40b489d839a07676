package user

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/middleware"
	"github.com/nomuacademy/academy-server-go/pkg/response"
)

// Handler processes user profile HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a user handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Profile returns the authenticated user's profile.
func (h *Handler) Profile(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	response.Success(c, http.StatusOK, usr, "", nil)
}

// UpdateProfile modifies the authenticated user's profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	var req struct {
		Name           *string  `json:"name"`
		Experience     *int     `json:"experience"`
		Specialization []string `json:"specialization"`
		ProfileImage   *string  `json:"profile_image"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid profile payload", err)
		return
	}

	updated, err := UpdateProfile(h.db, usr.ID, UpdateInput{
		Name:           req.Name,
		Experience:     req.Experience,
		Specialization: req.Specialization,
		ProfileImage:   req.ProfileImage,
	})
	if err != nil {
		h.respondError(c, err, "failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, updated, "프로필이 수정되었습니다.", nil)
}

type activityStats struct {
	TotalEnrollments    int64 `json:"total_enrollments"`
	ApprovedEnrollments int64 `json:"approved_enrollments"`
	PendingEnrollments  int64 `json:"pending_enrollments"`
	WishlistCount       int64 `json:"wishlist_count"`
}

// Stats summarizes the authenticated user's enrollment activity.
func (h *Handler) Stats(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var stats activityStats
	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalEnrollments, db.Table("user_enrollments").Where("user_id = ?", usr.ID)},
		{&stats.ApprovedEnrollments, db.Table("user_enrollments").Where("user_id = ? AND status = ?", usr.ID, "approved")},
		{&stats.PendingEnrollments, db.Table("user_enrollments").Where("user_id = ? AND status = ?", usr.ID, "pending")},
		{&stats.WishlistCount, db.Table("user_wishlists").Where("user_id = ?", usr.ID)},
	}

	for _, count := range counts {
		if err := count.query.Count(count.dest).Error; err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load stats", err)
			return
		}
	}

	response.Success(c, http.StatusOK, stats, "", nil)
}

// ListUsers returns every registered user (admin surface).
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := ListAll(h.db.WithContext(c.Request.Context()))
	if err != nil {
		h.respondError(c, err, "failed to list users")
		return
	}

	response.Success(c, http.StatusOK, users, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found."
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrInvalidExperience), errors.Is(err, ErrWeakPassword):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, ErrEmailTaken):
		status = http.StatusBadRequest
		message = "이미 등록된 이메일입니다."
	case errors.Is(err, ErrLicenseTaken):
		status = http.StatusBadRequest
		message = "이미 등록된 노무사 등록번호입니다."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
