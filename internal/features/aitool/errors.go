package aitool

import "errors"

var (
	ErrToolNotFound = errors.New("ai tool not found")
	ErrNameRequired = errors.New("tool name is required")
)
