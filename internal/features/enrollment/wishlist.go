package enrollment

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/features/course"
	"github.com/nomuacademy/academy-server-go/pkg/types"
)

// Wishlist marks a course a user wants to come back to. One row per
// (user, course) pair.
type Wishlist struct {
	types.BaseModel

	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_wishlist;column:user_id" json:"user_id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_wishlist;column:course_id" json:"course_id"`

	Course *course.Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// TableName overrides the default table name.
func (Wishlist) TableName() string { return "user_wishlists" }

// AddToWishlist saves a course to the user's wishlist.
func AddToWishlist(db *gorm.DB, userID, courseID uuid.UUID) (Wishlist, error) {
	var existing Wishlist
	err := db.First(&existing, "user_id = ? AND course_id = ?", userID, courseID).Error
	if err == nil {
		return existing, ErrAlreadyWishlisted
	}
	if err != gorm.ErrRecordNotFound {
		return Wishlist{}, err
	}

	entry := Wishlist{UserID: userID, CourseID: courseID}
	if err := db.Create(&entry).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entry, ErrAlreadyWishlisted
		}
		return entry, err
	}

	return entry, nil
}

// ListWishlist returns the user's wishlist newest first, with courses
// attached.
func ListWishlist(db *gorm.DB, userID uuid.UUID) ([]Wishlist, error) {
	var entries []Wishlist
	err := db.
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// RemoveFromWishlist deletes a wishlist entry by course.
func RemoveFromWishlist(db *gorm.DB, userID, courseID uuid.UUID) error {
	result := db.Delete(&Wishlist{}, "user_id = ? AND course_id = ?", userID, courseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWishlistNotFound
	}
	return nil
}
