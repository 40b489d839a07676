package auth

import (
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/features/user"
	"github.com/nomuacademy/academy-server-go/internal/utils/jwt"
)

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	LicenseNumber  string
	Experience     int
	Specialization []string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResponse carries the signed token alongside the account it represents.
type AuthResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

type TokenConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register creates a new member account and signs a session token for it.
func Register(db *gorm.DB, input RegisterInput, cfg TokenConfig) (*AuthResponse, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.LicenseNumber == "" {
		return nil, ErrMissingFields
	}

	if !emailRegex.MatchString(input.Email) {
		return nil, ErrInvalidEmail
	}

	newUser, err := user.Create(db, user.CreateInput{
		Name:           input.Name,
		Email:          input.Email,
		Password:       input.Password,
		LicenseNumber:  input.LicenseNumber,
		Experience:     input.Experience,
		Specialization: input.Specialization,
	})
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(newUser.ID, newUser.Email, cfg.JWTSecret, cfg.TokenExpiry)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: &newUser, Token: token}, nil
}

// Login authenticates a member and returns a fresh token. Lookup and
// password failures collapse into one error so callers cannot probe which
// emails exist.
func Login(db *gorm.DB, input LoginInput, cfg TokenConfig) (*AuthResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	usr, err := user.GetByEmail(db, input.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !usr.ComparePassword(input.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(usr.ID, usr.Email, cfg.JWTSecret, cfg.TokenExpiry)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: &usr, Token: token}, nil
}
