package course

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/pkg/pagination"
	"github.com/nomuacademy/academy-server-go/pkg/types"
)

// Course is a unit of the catalog. Unpublished courses exist only for the
// admin surface; public reads never see them.
type Course struct {
	types.BaseModel

	Title              string           `gorm:"type:varchar(255);not null" json:"title"`
	Description        string           `gorm:"type:text;not null" json:"description"`
	Category           string           `gorm:"type:varchar(100);not null" json:"category"`
	Difficulty         types.Difficulty `gorm:"type:varchar(20);not null" json:"difficulty"`
	Duration           int              `gorm:"type:int;not null;default:0" json:"duration"`
	Price              types.Money      `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	IsFree             bool             `gorm:"type:boolean;not null;default:false;column:is_free" json:"is_free"`
	IsPublished        bool             `gorm:"type:boolean;not null;default:false;column:is_published" json:"is_published"`
	VideoURL           *string          `gorm:"type:text;column:video_url" json:"video_url,omitempty"`
	ThumbnailURL       *string          `gorm:"type:text;column:thumbnail" json:"thumbnail,omitempty"`
	LearningObjectives pq.StringArray   `gorm:"type:text[];not null;default:'{}';column:learning_objectives" json:"learning_objectives"`
}

// TableName overrides the default table name.
func (Course) TableName() string { return "courses" }

// ListFilters narrows the public catalog listing.
type ListFilters struct {
	Category   string
	Difficulty string
}

// CreateInput carries data for creating a course.
type CreateInput struct {
	Title              string
	Description        string
	Category           string
	Difficulty         types.Difficulty
	Duration           int
	Price              types.Money
	IsFree             bool
	VideoURL           *string
	ThumbnailURL       *string
	LearningObjectives []string
}

// UpdateInput captures mutable course fields. Nil means not provided.
type UpdateInput struct {
	Title              *string
	Description        *string
	Category           *string
	Difficulty         *types.Difficulty
	Duration           *int
	Price              *types.Money
	IsFree             *bool
	VideoURL           *string
	VideoProvided      bool
	ThumbnailURL       *string
	ThumbnailProvided  bool
	LearningObjectives []string
}

// ListPublished returns published courses, newest first.
func ListPublished(db *gorm.DB, filters ListFilters, params pagination.Params) ([]Course, int64, error) {
	query := db.Model(&Course{}).Where("is_published = ?", true)

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []Course
	err := query.
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&courses).Error

	return courses, total, err
}

// GetPublished retrieves a single published course. Unpublished courses look
// identical to missing ones from the outside.
func GetPublished(db *gorm.DB, id uuid.UUID) (Course, error) {
	var crs Course
	if err := db.First(&crs, "id = ? AND is_published = ?", id, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return crs, ErrCourseNotFound
		}
		return crs, err
	}
	return crs, nil
}

// Get retrieves a course regardless of publication state (admin surface).
func Get(db *gorm.DB, id uuid.UUID) (Course, error) {
	var crs Course
	if err := db.First(&crs, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return crs, ErrCourseNotFound
		}
		return crs, err
	}
	return crs, nil
}

// ListAll retrieves every course, newest first (admin surface).
func ListAll(db *gorm.DB, params pagination.Params) ([]Course, int64, error) {
	var total int64
	if err := db.Model(&Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []Course
	err := db.
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&courses).Error

	return courses, total, err
}

// Create inserts a new course. Free courses are stored with a zero price so
// the enrollment flow never has to consult both fields.
func Create(db *gorm.DB, input CreateInput) (Course, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Course{}, ErrTitleRequired
	}
	if !input.Difficulty.Valid() {
		return Course{}, ErrInvalidDifficulty
	}
	if input.Price.IsNegative() {
		return Course{}, ErrInvalidPrice
	}

	price := input.Price
	if input.IsFree {
		price = types.NewMoney(0)
	}

	objectives := input.LearningObjectives
	if objectives == nil {
		objectives = []string{}
	}

	crs := Course{
		Title:              strings.TrimSpace(input.Title),
		Description:        input.Description,
		Category:           input.Category,
		Difficulty:         input.Difficulty,
		Duration:           input.Duration,
		Price:              price,
		IsFree:             input.IsFree,
		VideoURL:           input.VideoURL,
		ThumbnailURL:       input.ThumbnailURL,
		LearningObjectives: objectives,
	}

	if err := db.Create(&crs).Error; err != nil {
		return crs, err
	}

	return crs, nil
}

// Update modifies an existing course.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (Course, error) {
	crs, err := Get(db, id)
	if err != nil {
		return crs, err
	}

	updates := map[string]interface{}{}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return crs, ErrTitleRequired
		}
		updates["title"] = trimmed
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Difficulty != nil {
		if !input.Difficulty.Valid() {
			return crs, ErrInvalidDifficulty
		}
		updates["difficulty"] = *input.Difficulty
	}
	if input.Duration != nil {
		updates["duration"] = *input.Duration
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return crs, ErrInvalidPrice
		}
		updates["price"] = *input.Price
	}
	if input.IsFree != nil {
		updates["is_free"] = *input.IsFree
		if *input.IsFree {
			updates["price"] = types.NewMoney(0)
		}
	}
	if input.VideoProvided {
		updates["video_url"] = input.VideoURL
	}
	if input.ThumbnailProvided {
		updates["thumbnail"] = input.ThumbnailURL
	}
	if input.LearningObjectives != nil {
		updates["learning_objectives"] = pq.StringArray(input.LearningObjectives)
	}

	if len(updates) > 0 {
		if err := db.Model(&Course{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return crs, err
		}
	}

	return Get(db, id)
}

// SetPublished toggles the publication flag.
func SetPublished(db *gorm.DB, id uuid.UUID, published bool) (Course, error) {
	crs, err := Get(db, id)
	if err != nil {
		return crs, err
	}

	if err := db.Model(&Course{}).Where("id = ?", id).Update("is_published", published).Error; err != nil {
		return crs, err
	}

	return Get(db, id)
}

// Delete removes a course.
func Delete(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&Course{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}
