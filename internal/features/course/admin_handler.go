package course

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/pkg/cache"
	"github.com/nomuacademy/academy-server-go/pkg/pagination"
	"github.com/nomuacademy/academy-server-go/pkg/response"
	"github.com/nomuacademy/academy-server-go/pkg/storage"
	"github.com/nomuacademy/academy-server-go/pkg/types"
	"github.com/nomuacademy/academy-server-go/pkg/validation"
)

// AdminHandler processes course management requests behind the admin gate.
type AdminHandler struct {
	*Handler
	storageClient *storage.Client
	videoBucket   string
	imageBucket   string
}

// NewAdminHandler constructs an admin course handler instance.
func NewAdminHandler(db *gorm.DB, logger *slog.Logger, cacheClient cache.Client, storageClient *storage.Client, videoBucket, imageBucket string) *AdminHandler {
	return &AdminHandler{
		Handler:       NewHandler(db, logger, cacheClient),
		storageClient: storageClient,
		videoBucket:   videoBucket,
		imageBucket:   imageBucket,
	}
}

// ListAll returns every course including unpublished ones.
func (h *AdminHandler) ListAll(c *gin.Context) {
	params := pagination.Extract(c)

	courses, total, err := ListAll(h.db.WithContext(c.Request.Context()), params)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list courses", err)
		return
	}

	response.Success(c, http.StatusOK, courses, "", pagination.MetadataFrom(total, params))
}

// GetByID fetches a course regardless of publication state.
func (h *AdminHandler) GetByID(c *gin.Context) {
	id, err := validation.ParseUUID(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	crs, err := Get(h.db.WithContext(c.Request.Context()), id)
	if err != nil {
		h.respondError(c, err, "failed to load course")
		return
	}

	response.Success(c, http.StatusOK, crs, "", nil)
}

type coursePayload struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Difficulty         string   `json:"difficulty" binding:"required"`
	Duration           int      `json:"duration"`
	Price              float64  `json:"price"`
	IsFree             bool     `json:"is_free"`
	VideoURL           *string  `json:"video_url"`
	ThumbnailURL       *string  `json:"thumbnail"`
	LearningObjectives []string `json:"learning_objectives"`
}

// Create inserts a new course.
func (h *AdminHandler) Create(c *gin.Context) {
	var req coursePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course payload", err)
		return
	}

	crs, err := Create(h.db.WithContext(c.Request.Context()), CreateInput{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Difficulty:         types.Difficulty(req.Difficulty),
		Duration:           req.Duration,
		Price:              types.NewMoney(req.Price),
		IsFree:             req.IsFree,
		VideoURL:           req.VideoURL,
		ThumbnailURL:       req.ThumbnailURL,
		LearningObjectives: req.LearningObjectives,
	})
	if err != nil {
		h.respondError(c, err, "failed to create course")
		return
	}

	h.invalidateCatalog(c)
	response.Created(c, crs, "강의가 등록되었습니다.")
}

// Update modifies an existing course.
func (h *AdminHandler) Update(c *gin.Context) {
	id, err := validation.ParseUUID(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	var req struct {
		Title              *string  `json:"title"`
		Description        *string  `json:"description"`
		Category           *string  `json:"category"`
		Difficulty         *string  `json:"difficulty"`
		Duration           *int     `json:"duration"`
		Price              *float64 `json:"price"`
		IsFree             *bool    `json:"is_free"`
		VideoURL           *string  `json:"video_url"`
		ThumbnailURL       *string  `json:"thumbnail"`
		LearningObjectives []string `json:"learning_objectives"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course payload", err)
		return
	}

	input := UpdateInput{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Duration:           req.Duration,
		IsFree:             req.IsFree,
		LearningObjectives: req.LearningObjectives,
	}

	if req.Difficulty != nil {
		difficulty := types.Difficulty(*req.Difficulty)
		input.Difficulty = &difficulty
	}
	if req.Price != nil {
		price := types.NewMoney(*req.Price)
		input.Price = &price
	}
	if req.VideoURL != nil {
		input.VideoProvided = true
		input.VideoURL = req.VideoURL
	}
	if req.ThumbnailURL != nil {
		input.ThumbnailProvided = true
		input.ThumbnailURL = req.ThumbnailURL
	}

	crs, err := Update(h.db.WithContext(c.Request.Context()), id, input)
	if err != nil {
		h.respondError(c, err, "failed to update course")
		return
	}

	h.invalidateCatalog(c)
	response.Success(c, http.StatusOK, crs, "강의가 수정되었습니다.", nil)
}

// Publish toggles a course's publication state.
func (h *AdminHandler) Publish(c *gin.Context) {
	id, err := validation.ParseUUID(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	var req struct {
		IsPublished *bool `json:"is_published" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "is_published is required", err)
		return
	}

	crs, err := SetPublished(h.db.WithContext(c.Request.Context()), id, *req.IsPublished)
	if err != nil {
		h.respondError(c, err, "failed to update publication state")
		return
	}

	h.invalidateCatalog(c)
	response.Success(c, http.StatusOK, crs, "", nil)
}

// Delete removes a course.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := validation.ParseUUID(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	if err := Delete(h.db.WithContext(c.Request.Context()), id); err != nil {
		h.respondError(c, err, "failed to delete course")
		return
	}

	h.invalidateCatalog(c)
	response.Success(c, http.StatusOK, true, "강의가 삭제되었습니다.", nil)
}

// UploadVideo streams a lecture video to object storage and attaches its
// public URL to the course.
func (h *AdminHandler) UploadVideo(c *gin.Context) {
	h.upload(c, h.videoBucket, "videos", "video_url")
}

// UploadThumbnail streams a thumbnail image to object storage and attaches
// its public URL to the course.
func (h *AdminHandler) UploadThumbnail(c *gin.Context) {
	h.upload(c, h.imageBucket, "thumbnails", "thumbnail")
}

func (h *AdminHandler) upload(c *gin.Context, bucket, folder, column string) {
	id, err := validation.ParseUUID(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	if !h.storageClient.Enabled() {
		response.ErrorWithLog(h.logger, c, http.StatusServiceUnavailable, "file storage is not configured", nil)
		return
	}

	if _, err := Get(h.db.WithContext(c.Request.Context()), id); err != nil {
		h.respondError(c, err, "failed to load course")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "file is required", err)
		return
	}
	defer file.Close()

	objectPath := storage.ObjectPath(folder, header.Filename)
	publicURL, err := h.storageClient.UploadStream(c.Request.Context(), bucket, objectPath, file, header.Header.Get("Content-Type"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to upload file", err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&Course{}).Where("id = ?", id).
		Update(column, publicURL).Error; err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to attach file to course", err)
		return
	}

	h.invalidateCatalog(c)
	response.Success(c, http.StatusOK, gin.H{"url": publicURL}, "", nil)
}
