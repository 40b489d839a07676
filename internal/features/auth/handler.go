package auth

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/features/user"
	"github.com/nomuacademy/academy-server-go/internal/middleware"
	"github.com/nomuacademy/academy-server-go/pkg/config"
	"github.com/nomuacademy/academy-server-go/pkg/email"
	"github.com/nomuacademy/academy-server-go/pkg/response"
)

// Handler processes authentication HTTP requests.
type Handler struct {
	db          *gorm.DB
	logger      *slog.Logger
	cfg         *config.Config
	emailClient *email.Client
}

// NewHandler constructs an auth handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, cfg *config.Config, emailClient *email.Client) *Handler {
	return &Handler{
		db:          db,
		logger:      logger,
		cfg:         cfg,
		emailClient: emailClient,
	}
}

// Register creates a new member account.
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Name           string   `json:"name" binding:"required"`
		Email          string   `json:"email" binding:"required,email"`
		Password       string   `json:"password" binding:"required"`
		LicenseNumber  string   `json:"license_number" binding:"required"`
		Experience     int      `json:"experience"`
		Specialization []string `json:"specialization"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid registration payload", err)
		return
	}

	authResp, err := Register(h.db.WithContext(c.Request.Context()), RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		LicenseNumber:  req.LicenseNumber,
		Experience:     req.Experience,
		Specialization: req.Specialization,
	}, h.getTokenConfig())

	if err != nil {
		h.respondError(c, err, "registration failed")
		return
	}

	// Send welcome email asynchronously
	go func() {
		if err := h.emailClient.SendWelcome(authResp.User.Email, authResp.User.Name); err != nil {
			h.logger.Error("failed to send welcome email",
				slog.String("email", authResp.User.Email),
				slog.String("error", err.Error()))
		}
	}()

	response.Created(c, authResp, "회원가입이 완료되었습니다.")
}

// Login authenticates a member and returns a JWT token.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid login payload", err)
		return
	}

	authResp, err := Login(h.db.WithContext(c.Request.Context()), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, h.getTokenConfig())

	if err != nil {
		h.respondError(c, err, "login failed")
		return
	}

	response.Success(c, http.StatusOK, authResp, "로그인되었습니다.", nil)
}

// Me returns the account behind the presented token.
func (h *Handler) Me(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	response.Success(c, http.StatusOK, usr, "", nil)
}

func (h *Handler) getTokenConfig() TokenConfig {
	return TokenConfig{
		JWTSecret:   h.cfg.JWTSecret,
		TokenExpiry: h.cfg.TokenExpiry,
	}
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "이메일 또는 비밀번호가 올바르지 않습니다."
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidEmail), errors.Is(err, user.ErrWeakPassword):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, user.ErrEmailTaken):
		status = http.StatusBadRequest
		message = "이미 등록된 이메일입니다."
	case errors.Is(err, user.ErrLicenseTaken):
		status = http.StatusBadRequest
		message = "이미 등록된 노무사 등록번호입니다."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
