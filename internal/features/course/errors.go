package course

import "errors"

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrTitleRequired     = errors.New("course title is required")
	ErrInvalidDifficulty = errors.New("invalid difficulty level")
	ErrInvalidPrice      = errors.New("price cannot be negative")
)
