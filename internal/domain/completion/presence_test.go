package completion

import (
	"database/sql"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type customStatus string

func TestIsFilled(t *testing.T) {
	var nilString *string
	blank := "   "
	text := "striker"
	falseVal := false
	zero := 0.0

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"nil pointer", nilString, false},
		{"empty string", "", false},
		{"whitespace string", "  \t ", false},
		{"string", "forward", true},
		{"pointer to blank string", &blank, false},
		{"pointer to string", &text, true},
		{"true", true, true},
		{"false", false, false},
		{"pointer to false", &falseVal, false},
		{"zero int", 0, true},
		{"zero float", 0.0, true},
		{"pointer to zero float", &zero, true},
		{"NaN", math.NaN(), false},
		{"json number", json.Number("12.5"), true},
		{"bad json number", json.Number("abc"), false},
		{"empty slice", []string{}, false},
		{"slice", []string{"EU"}, true},
		{"empty any slice", []any{}, false},
		{"int slice", []int{1}, true},
		{"zero time", time.Time{}, true},
		{"time", time.Now(), true},
		{"empty map", map[string]any{}, false},
		{"map", map[string]any{"k": 1}, true},
		{"null string invalid", sql.NullString{}, false},
		{"null string blank", sql.NullString{String: " ", Valid: true}, false},
		{"null string", sql.NullString{String: "x", Valid: true}, true},
		{"null bool false", sql.NullBool{Bool: false, Valid: true}, false},
		{"null bool true", sql.NullBool{Bool: true, Valid: true}, true},
		{"null int", sql.NullInt32{Valid: true}, true},
		{"null float NaN", sql.NullFloat64{Float64: math.NaN(), Valid: true}, false},
		{"null time", sql.NullTime{Valid: true}, true},
		{"named string type", customStatus("approved"), true},
		{"named blank string type", customStatus(""), false},
		{"struct", struct{ A int }{1}, false},
		{"func", func() {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFilled(tt.value))
		})
	}
}

func TestCountFilled(t *testing.T) {
	c := CountFilled("a", "", nil, true, false)
	assert.Equal(t, 2, c.Filled)
	assert.Equal(t, 5, c.Total)
	assert.InDelta(t, 0.4, c.Ratio, 1e-9)

	empty := CountFilled()
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 0.0, empty.Ratio)
	assert.False(t, math.IsNaN(empty.Ratio))
}

func TestCanonicalStatus(t *testing.T) {
	tests := map[string]string{
		"Approved ":     "approved",
		"  APPROVED":    "approved",
		"In Review":     "in_review",
		"in-review":     "in_review",
		"in  -  review": "in_review",
		"needs__info":   "needs_info",
		"":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, CanonicalStatus(in), "input %q", in)
	}
}
