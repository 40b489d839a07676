package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrLicenseTaken      = errors.New("license number already registered")
	ErrWeakPassword      = errors.New("password must be at least 6 characters")
	ErrNameRequired      = errors.New("name cannot be empty")
	ErrInvalidExperience = errors.New("experience must be zero or greater")
)
