package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUUID(t *testing.T) {
	id, err := ParseUUID("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	require.NoError(t, err)
	assert.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", id.String())
}

func TestParseUUID_RejectsBadShapes(t *testing.T) {
	bad := []string{
		"",
		"undefined",
		"123",
		"f47ac10b-58cc-4372-a567",                 // truncated
		"g47ac10b-58cc-4372-a567-0e02b2c3d479",    // non-hex
		"f47ac10b58cc4372a5670e02b2c3d479",        // no dashes
		"f47ac10b-58cc-6372-a567-0e02b2c3d479",    // bad version nibble
		"f47ac10b-58cc-4372-c567-0e02b2c3d479",    // bad variant nibble
		"'; DROP TABLE courses; --",               // injection attempt
		"../f47ac10b-58cc-4372-a567-0e02b2c3d479", // path segment
	}

	for _, value := range bad {
		_, err := ParseUUID(value)
		assert.Errorf(t, err, "expected %q to be rejected", value)
		assert.False(t, IsUUID(value))
	}
}

func TestParseUUID_NormalizesCaseAndWhitespace(t *testing.T) {
	id, err := ParseUUID("  F47AC10B-58CC-4372-A567-0E02B2C3D479  ")
	require.NoError(t, err)
	assert.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", id.String())
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("f47ac10b-58cc-4372-a567-0e02b2c3d479"))
	assert.False(t, IsUUID("not-a-uuid"))
}
