package aitool

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/pkg/response"
	"github.com/nomuacademy/academy-server-go/pkg/storage"
	"github.com/nomuacademy/academy-server-go/pkg/validation"
)

// Handler processes AI tool directory HTTP requests.
type Handler struct {
	db            *gorm.DB
	logger        *slog.Logger
	storageClient *storage.Client
	imageBucket   string
}

// NewHandler constructs an AI tool handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, storageClient *storage.Client, imageBucket string) *Handler {
	return &Handler{db: db, logger: logger, storageClient: storageClient, imageBucket: imageBucket}
}

// List returns the tool directory.
func (h *Handler) List(c *gin.Context) {
	tools, err := List(h.db.WithContext(c.Request.Context()), c.Query("category"))
	if err != nil {
		h.respondError(c, err, "failed to list tools")
		return
	}

	// The directory changes rarely; let clients cache it briefly.
	response.SuccessWithCache(c, http.StatusOK, tools, "", 300)
}

// GetByID fetches a single tool.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := validation.ParseUUID(c.Param("toolId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid tool id", err)
		return
	}

	tool, err := Get(h.db.WithContext(c.Request.Context()), id)
	if err != nil {
		h.respondError(c, err, "failed to load tool")
		return
	}

	response.Success(c, http.StatusOK, tool, "", nil)
}

type toolPayload struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	PracticalUsage string   `json:"practical_usage"`
	URL            string   `json:"url"`
	ImageURL       *string  `json:"image_url"`
	Advantages     []string `json:"advantages"`
	Disadvantages  []string `json:"disadvantages"`
}

// Create inserts a new tool entry (admin surface).
func (h *Handler) Create(c *gin.Context) {
	var req toolPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid tool payload", err)
		return
	}

	tool, err := Create(h.db.WithContext(c.Request.Context()), CreateInput{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		PracticalUsage: req.PracticalUsage,
		URL:            req.URL,
		ImageURL:       req.ImageURL,
		Advantages:     req.Advantages,
		Disadvantages:  req.Disadvantages,
	})
	if err != nil {
		h.respondError(c, err, "failed to create tool")
		return
	}

	response.Created(c, tool, "AI 도구가 등록되었습니다.")
}

// Update modifies a tool entry (admin surface).
func (h *Handler) Update(c *gin.Context) {
	id, err := validation.ParseUUID(c.Param("toolId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid tool id", err)
		return
	}

	var req struct {
		Name           *string  `json:"name"`
		Description    *string  `json:"description"`
		Category       *string  `json:"category"`
		PracticalUsage *string  `json:"practical_usage"`
		URL            *string  `json:"url"`
		ImageURL       *string  `json:"image_url"`
		Advantages     []string `json:"advantages"`
		Disadvantages  []string `json:"disadvantages"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid tool payload", err)
		return
	}

	input := UpdateInput{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		PracticalUsage: req.PracticalUsage,
		URL:            req.URL,
		Advantages:     req.Advantages,
		Disadvantages:  req.Disadvantages,
	}
	if req.ImageURL != nil {
		input.ImageProvided = true
		input.ImageURL = req.ImageURL
	}

	tool, err := Update(h.db.WithContext(c.Request.Context()), id, input)
	if err != nil {
		h.respondError(c, err, "failed to update tool")
		return
	}

	response.Success(c, http.StatusOK, tool, "AI 도구가 수정되었습니다.", nil)
}

// Delete removes a tool entry (admin surface).
func (h *Handler) Delete(c *gin.Context) {
	id, err := validation.ParseUUID(c.Param("toolId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid tool id", err)
		return
	}

	if err := Delete(h.db.WithContext(c.Request.Context()), id); err != nil {
		h.respondError(c, err, "failed to delete tool")
		return
	}

	response.Success(c, http.StatusOK, true, "AI 도구가 삭제되었습니다.", nil)
}

// UploadImage streams a tool image to object storage and attaches its public
// URL to the entry.
func (h *Handler) UploadImage(c *gin.Context) {
	id, err := validation.ParseUUID(c.Param("toolId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid tool id", err)
		return
	}

	if !h.storageClient.Enabled() {
		response.ErrorWithLog(h.logger, c, http.StatusServiceUnavailable, "file storage is not configured", nil)
		return
	}

	if _, err := Get(h.db.WithContext(c.Request.Context()), id); err != nil {
		h.respondError(c, err, "failed to load tool")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "file is required", err)
		return
	}
	defer file.Close()

	objectPath := storage.ObjectPath("tools", header.Filename)
	publicURL, err := h.storageClient.UploadStream(c.Request.Context(), h.imageBucket, objectPath, file, header.Header.Get("Content-Type"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to upload file", err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&AITool{}).Where("id = ?", id).
		Update("image_url", publicURL).Error; err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to attach image to tool", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": publicURL}, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrToolNotFound):
		status = http.StatusNotFound
		message = "AI tool not found."
	case errors.Is(err, ErrNameRequired):
		status = http.StatusBadRequest
		message = err.Error()
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
