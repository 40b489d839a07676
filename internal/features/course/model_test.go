package course

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nomuacademy/academy-server-go/pkg/types"
)

func TestCreate_Validation(t *testing.T) {
	_, err := Create(nil, CreateInput{Title: "  ", Difficulty: types.DifficultyBeginner})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = Create(nil, CreateInput{Title: "노동법 기초", Difficulty: "expert"})
	assert.ErrorIs(t, err, ErrInvalidDifficulty)

	_, err = Create(nil, CreateInput{
		Title:      "노동법 기초",
		Difficulty: types.DifficultyBeginner,
		Price:      types.NewMoney(-1),
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}
