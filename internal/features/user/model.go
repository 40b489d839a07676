package user

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/pkg/types"
)

// User represents a registered member: a certified labor attorney identified
// by a unique license number, optionally flagged as a platform admin.
type User struct {
	types.BaseModel

	Name           string         `gorm:"type:varchar(100);not null" json:"name"`
	Email          string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash   string         `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	LicenseNumber  string         `gorm:"type:varchar(50);not null;uniqueIndex;column:license_number" json:"license_number"`
	Experience     int            `gorm:"type:int;not null;default:0" json:"experience"`
	Specialization pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"specialization"`
	ProfileImage   *string        `gorm:"type:text;column:profile_image" json:"profile_image,omitempty"`
	IsAdmin        bool           `gorm:"type:boolean;not null;default:false;column:is_admin" json:"is_admin"`
}

// TableName overrides the default table name.
func (User) TableName() string { return "users" }

// CreateInput carries data for creating a new user.
type CreateInput struct {
	Name           string
	Email          string
	Password       string
	LicenseNumber  string
	Experience     int
	Specialization []string
	IsAdmin        bool
}

// UpdateInput captures mutable profile fields.
type UpdateInput struct {
	Name           *string
	Experience     *int
	Specialization []string
	ProfileImage   *string
}

// Get retrieves a user by ID.
func Get(db *gorm.DB, id uuid.UUID) (User, error) {
	var usr User
	if err := db.First(&usr, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return usr, ErrUserNotFound
		}
		return usr, err
	}
	return usr, nil
}

// GetByEmail retrieves a user by email.
func GetByEmail(db *gorm.DB, email string) (User, error) {
	var usr User
	if err := db.First(&usr, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return usr, ErrUserNotFound
		}
		return usr, err
	}
	return usr, nil
}

// Create inserts a new user with a hashed password.
func Create(db *gorm.DB, input CreateInput) (User, error) {
	if len(input.Password) < 6 {
		return User{}, ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		return User{}, err
	}

	specialization := input.Specialization
	if specialization == nil {
		specialization = []string{}
	}

	usr := User{
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:   string(hashedPassword),
		LicenseNumber:  strings.TrimSpace(input.LicenseNumber),
		Experience:     input.Experience,
		Specialization: specialization,
		IsAdmin:        input.IsAdmin,
	}

	if err := db.Create(&usr).Error; err != nil {
		switch {
		case strings.Contains(err.Error(), "users_email"):
			return usr, ErrEmailTaken
		case strings.Contains(err.Error(), "users_license"):
			return usr, ErrLicenseTaken
		}
		return usr, err
	}

	return usr, nil
}

// UpdateProfile modifies the caller's own profile fields.
func UpdateProfile(db *gorm.DB, id uuid.UUID, input UpdateInput) (User, error) {
	usr, err := Get(db, id)
	if err != nil {
		return usr, err
	}

	updates := map[string]interface{}{}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return usr, ErrNameRequired
		}
		updates["name"] = trimmed
	}

	if input.Experience != nil {
		if *input.Experience < 0 {
			return usr, ErrInvalidExperience
		}
		updates["experience"] = *input.Experience
	}

	if input.Specialization != nil {
		updates["specialization"] = pq.StringArray(input.Specialization)
	}

	if input.ProfileImage != nil {
		updates["profile_image"] = *input.ProfileImage
	}

	if len(updates) > 0 {
		if err := db.Model(&User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return usr, err
		}
	}

	return Get(db, id)
}

// ListAll retrieves every user, newest first (admin view).
func ListAll(db *gorm.DB) ([]User, error) {
	var users []User
	err := db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// FindAnyAdmin returns an arbitrary admin-flagged user. The legacy approval
// flow resolves the approver this way when the caller's own identity is not
// available; see Enrollment.Transition.
func FindAnyAdmin(db *gorm.DB) (User, error) {
	var usr User
	if err := db.First(&usr, "is_admin = ?", true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return usr, ErrUserNotFound
		}
		return usr, err
	}
	return usr, nil
}

// ComparePassword checks a candidate password against the stored hash.
func (u *User) ComparePassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
