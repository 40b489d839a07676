package course

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/pkg/cache"
	"github.com/nomuacademy/academy-server-go/pkg/pagination"
	"github.com/nomuacademy/academy-server-go/pkg/response"
	"github.com/nomuacademy/academy-server-go/pkg/validation"
)

const (
	catalogCacheKey = "courses:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// Handler processes public course HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
	cache  cache.Client
}

// NewHandler constructs a course handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, cacheClient cache.Client) *Handler {
	return &Handler{db: db, logger: logger, cache: cacheClient}
}

type catalogPage struct {
	Courses    []Course            `json:"courses"`
	Pagination pagination.Metadata `json:"pagination"`
}

// List returns published courses. The unfiltered first page is served from
// cache when available.
func (h *Handler) List(c *gin.Context) {
	params := pagination.Extract(c)
	filters := ListFilters{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
	}

	cacheable := filters.Category == "" && filters.Difficulty == "" &&
		params.Page == pagination.DefaultPage && params.Limit == pagination.DefaultLimit

	if cacheable {
		if raw, err := h.cache.Get(c.Request.Context(), catalogCacheKey); err == nil {
			var page catalogPage
			if json.Unmarshal([]byte(raw), &page) == nil {
				response.Success(c, http.StatusOK, page.Courses, "", page.Pagination)
				return
			}
		}
	}

	courses, total, err := ListPublished(h.db.WithContext(c.Request.Context()), filters, params)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list courses", err)
		return
	}

	meta := pagination.MetadataFrom(total, params)

	if cacheable {
		if raw, err := json.Marshal(catalogPage{Courses: courses, Pagination: meta}); err == nil {
			if err := h.cache.Set(c.Request.Context(), catalogCacheKey, string(raw), catalogCacheTTL); err != nil {
				h.logger.Warn("failed to cache course catalog", slog.String("error", err.Error()))
			}
		}
	}

	response.Success(c, http.StatusOK, courses, "", meta)
}

// GetByID fetches a single published course. The identifier's shape is
// checked before touching storage.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := validation.ParseUUID(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	crs, err := GetPublished(h.db.WithContext(c.Request.Context()), id)
	if err != nil {
		h.respondError(c, err, "failed to load course")
		return
	}

	response.Success(c, http.StatusOK, crs, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrCourseNotFound):
		status = http.StatusNotFound
		message = "Course not found."
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrInvalidDifficulty), errors.Is(err, ErrInvalidPrice):
		status = http.StatusBadRequest
		message = err.Error()
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}

// invalidateCatalog drops the cached catalog page after a mutation.
func (h *Handler) invalidateCatalog(c *gin.Context) {
	if err := h.cache.Delete(c.Request.Context(), catalogCacheKey); err != nil {
		h.logger.Warn("failed to invalidate course catalog cache", slog.String("error", err.Error()))
	}
}
