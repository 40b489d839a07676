package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// ParseUUID validates that value is a UUID-shaped string and parses it.
// The shape check runs before any storage lookup so malformed IDs are
// rejected without touching the database.
func ParseUUID(value string) (uuid.UUID, error) {
	normalized := strings.TrimSpace(strings.ToLower(value))
	if !uuidRegex.MatchString(normalized) {
		return uuid.Nil, fmt.Errorf("invalid id format: %q", value)
	}
	return uuid.Parse(normalized)
}

// IsUUID reports whether value is a UUID-shaped string.
func IsUUID(value string) bool {
	return uuidRegex.MatchString(strings.TrimSpace(strings.ToLower(value)))
}
