package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentStatusValid(t *testing.T) {
	assert.True(t, EnrollmentPending.Valid())
	assert.True(t, EnrollmentApproved.Valid())
	assert.True(t, EnrollmentRejected.Valid())
	assert.False(t, EnrollmentStatus("cancelled").Valid())
	assert.False(t, EnrollmentStatus("").Valid())
}

func TestEnrollmentStatusLabel(t *testing.T) {
	assert.Equal(t, "대기중", EnrollmentPending.Label())
	assert.Equal(t, "승인됨", EnrollmentApproved.Label())
	assert.Equal(t, "거부됨", EnrollmentRejected.Label())
	// Unknown statuses fall through untranslated.
	assert.Equal(t, "weird", EnrollmentStatus("weird").Label())
}

func TestDifficultyValid(t *testing.T) {
	for _, d := range ValidDifficulties() {
		assert.True(t, d.Valid())
	}
	assert.False(t, Difficulty("expert").Valid())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	price := NewMoney(49000)

	raw, err := json.Marshal(price)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, price.String(), decoded.String())
}

func TestMoneyFromString(t *testing.T) {
	price, err := NewMoneyFromString("49000.50")
	require.NoError(t, err)
	assert.InDelta(t, 49000.50, price.Float64(), 0.001)

	_, err = NewMoneyFromString("not-money")
	assert.Error(t, err)
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, NewMoney(0).IsZero())
	assert.False(t, NewMoney(100).IsZero())
	assert.True(t, NewMoney(-1).IsNegative())
	assert.False(t, NewMoney(1).IsNegative())
}
