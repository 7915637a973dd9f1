package validator

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/nutri-api/pkg/errors"
)

type sample struct {
	Name  string   `json:"full_name" validate:"notblank"`
	Email *string  `json:"email" validate:"omitempty,email"`
	Time  string   `json:"time" validate:"hhmm"`
	Score *float64 `json:"score" validate:"omitempty,gt=0"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(sample{Name: "Ana", Time: "09:30"}))

	err := v.Validate(sample{Name: "   ", Time: "9:30"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "full_name is required", appErr.Message)

	details, ok := appErr.Details.([]FieldError)
	require.True(t, ok)
	require.Len(t, details, 2)
	assert.Equal(t, "time", details[1].Field)

	bad := "not-an-email"
	zero := 0.0
	err = v.Validate(&sample{Name: "Ana", Time: "23:59", Email: &bad, Score: &zero})
	appErr, _ = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Details, 2)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("birth_date", "1990-04-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("birth_date", "1990-04-12T15:04:05-05:00")
	require.NoError(t, err)
	assert.Equal(t, 12, d.Day())

	_, err = ParseDate("birth_date", "1990-02-30")
	assert.ErrorContains(t, err, "birth_date must be a valid date")
	_, err = ParseDate("birth_date", "yesterday")
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("consultation_date", "2024-05-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, ts.Hour())

	_, err = ParseTimestamp("consultation_date", "05/01/2024")
	assert.Error(t, err)
}

func TestFieldHelpers(t *testing.T) {
	name, err := RequiredText("full_name", "  Ana  ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)

	_, err = RequiredText("full_name", " \t ")
	assert.Error(t, err)

	assert.NoError(t, Positive("weight", 0.1))
	assert.ErrorContains(t, Positive("weight", 0), "weight must be greater than 0")
	assert.Error(t, Positive("height", -2))

	assert.NoError(t, Range("energy_level", 5, 1, 10))
	assert.Error(t, Range("energy_level", 11, 1, 10))

	assert.NoError(t, OneOf("mood", "good", "good", "bad"))
	assert.ErrorContains(t, OneOf("mood", "meh", "good", "bad"), "mood must be one of: good bad")

	assert.NoError(t, TimeOfDay("time", "00:00"))
	assert.Error(t, TimeOfDay("time", "24:00"))
}
