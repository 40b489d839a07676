package enrollment

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/middleware"
	"github.com/nomuacademy/academy-server-go/pkg/email"
	"github.com/nomuacademy/academy-server-go/pkg/response"
	"github.com/nomuacademy/academy-server-go/pkg/types"
	"github.com/nomuacademy/academy-server-go/pkg/validation"
)

// AdminHandler processes enrollment review requests behind the admin gate.
type AdminHandler struct {
	*Handler
	emailClient *email.Client
}

// NewAdminHandler constructs an admin enrollment handler instance.
func NewAdminHandler(db *gorm.DB, logger *slog.Logger, emailClient *email.Client) *AdminHandler {
	return &AdminHandler{
		Handler:     NewHandler(db, logger),
		emailClient: emailClient,
	}
}

// ListAll returns every enrollment, optionally filtered by status.
func (h *AdminHandler) ListAll(c *gin.Context) {
	enrollments, err := ListAll(h.db.WithContext(c.Request.Context()), c.Query("status"))
	if err != nil {
		h.respondError(c, err, "failed to list enrollments")
		return
	}

	response.Success(c, http.StatusOK, enrollments, "", nil)
}

// UpdateStatus moves an enrollment through the review workflow.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := validation.ParseUUID(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid enrollment id", err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "status is required", err)
		return
	}

	// The approver is the authenticated admin when a bearer token
	// accompanied the shared secret.
	var actingAdmin *uuid.UUID
	if usr, ok := middleware.GetUserFromContext(c); ok && usr.IsAdmin {
		actingAdmin = &usr.ID
	}

	enrollment, err := Transition(h.db.WithContext(c.Request.Context()), id, types.EnrollmentStatus(req.Status), actingAdmin)
	if err != nil {
		h.respondError(c, err, "failed to update enrollment")
		return
	}

	h.notifyDecision(enrollment)

	response.Success(c, http.StatusOK, enrollment, "수강 신청 상태가 변경되었습니다.", nil)
}

// Stats tallies enrollments per review state for the dashboard.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := CountByStatus(h.db.WithContext(c.Request.Context()))
	if err != nil {
		h.respondError(c, err, "failed to load enrollment stats")
		return
	}

	response.Success(c, http.StatusOK, stats, "", nil)
}

func (h *AdminHandler) notifyDecision(enrollment Enrollment) {
	if enrollment.User == nil || enrollment.Course == nil {
		return
	}

	to := enrollment.User.Email
	name := enrollment.User.Name
	title := enrollment.Course.Title
	label := enrollment.Status.Label()

	go func() {
		if err := h.emailClient.SendEnrollmentDecision(to, name, title, label); err != nil {
			h.logger.Error("failed to send enrollment decision email",
				slog.String("email", to),
				slog.String("error", err.Error()))
		}
	}()
}
