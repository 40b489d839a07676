package aitool

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/pkg/types"
)

// AITool is a directory entry describing an AI service relevant to labor
// consulting practice.
type AITool struct {
	types.BaseModel

	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Category       string         `gorm:"type:varchar(100);not null" json:"category"`
	PracticalUsage string         `gorm:"type:text;column:practical_usage" json:"practical_usage"`
	URL            string         `gorm:"type:text" json:"url"`
	ImageURL       *string        `gorm:"type:text;column:image_url" json:"image_url,omitempty"`
	Advantages     pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"advantages"`
	Disadvantages  pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"disadvantages"`
}

// TableName overrides the default table name.
func (AITool) TableName() string { return "ai_tools" }

// CreateInput carries data for creating a tool entry.
type CreateInput struct {
	Name           string
	Description    string
	Category       string
	PracticalUsage string
	URL            string
	ImageURL       *string
	Advantages     []string
	Disadvantages  []string
}

// UpdateInput captures mutable tool fields. Nil means not provided.
type UpdateInput struct {
	Name           *string
	Description    *string
	Category       *string
	PracticalUsage *string
	URL            *string
	ImageURL       *string
	ImageProvided  bool
	Advantages     []string
	Disadvantages  []string
}

// List returns all tools, optionally filtered by category, newest first.
func List(db *gorm.DB, category string) ([]AITool, error) {
	query := db.Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var tools []AITool
	err := query.Find(&tools).Error
	return tools, err
}

// Get retrieves a single tool.
func Get(db *gorm.DB, id uuid.UUID) (AITool, error) {
	var tool AITool
	if err := db.First(&tool, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return tool, ErrToolNotFound
		}
		return tool, err
	}
	return tool, nil
}

// Create inserts a new tool entry.
func Create(db *gorm.DB, input CreateInput) (AITool, error) {
	if strings.TrimSpace(input.Name) == "" {
		return AITool{}, ErrNameRequired
	}

	advantages := input.Advantages
	if advantages == nil {
		advantages = []string{}
	}
	disadvantages := input.Disadvantages
	if disadvantages == nil {
		disadvantages = []string{}
	}

	tool := AITool{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Category:       input.Category,
		PracticalUsage: input.PracticalUsage,
		URL:            input.URL,
		ImageURL:       input.ImageURL,
		Advantages:     advantages,
		Disadvantages:  disadvantages,
	}

	if err := db.Create(&tool).Error; err != nil {
		return tool, err
	}

	return tool, nil
}

// Update modifies an existing tool entry.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (AITool, error) {
	tool, err := Get(db, id)
	if err != nil {
		return tool, err
	}

	updates := map[string]interface{}{}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return tool, ErrNameRequired
		}
		updates["name"] = trimmed
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.PracticalUsage != nil {
		updates["practical_usage"] = *input.PracticalUsage
	}
	if input.URL != nil {
		updates["url"] = *input.URL
	}
	if input.ImageProvided {
		updates["image_url"] = input.ImageURL
	}
	if input.Advantages != nil {
		updates["advantages"] = pq.StringArray(input.Advantages)
	}
	if input.Disadvantages != nil {
		updates["disadvantages"] = pq.StringArray(input.Disadvantages)
	}

	if len(updates) > 0 {
		if err := db.Model(&AITool{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return tool, err
		}
	}

	return Get(db, id)
}

// Delete removes a tool entry.
func Delete(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&AITool{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrToolNotFound
	}
	return nil
}
