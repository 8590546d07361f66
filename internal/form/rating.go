package form

import (
	"strconv"
	"strings"

	"pathfinder/internal/logging"
)

const (
	RatingMin = 1
	RatingMax = 10
)

// RatingInput is the bounded integer input for the soft skills rating. The
// raw text goes to the store on every change; range checking happens only
// when the form is validated.
type RatingInput struct {
	raw     string
	invalid bool
	store   *Selections
}

// NewRatingInput binds a rating input to the store.
func NewRatingInput(store *Selections) *RatingInput {
	return &RatingInput{store: store}
}

// SetValue records a change to the input.
func (r *RatingInput) SetValue(raw string) {
	r.raw = raw
	if err := r.store.Set(FieldSoftSkillsRating, raw); err != nil {
		logging.FormWarn("Rating not stored: %v", err)
		return
	}
	logging.FormDebug("Rating input = %q", raw)
}

func (r *RatingInput) Value() string { return r.raw }
func (r *RatingInput) Invalid() bool { return r.invalid }

// Check validates the current input and updates the error styling. An empty,
// non-integer, or out of range value is invalid.
func (r *RatingInput) Check() (int, bool) {
	n, ok := ParseRating(r.raw)
	r.invalid = !ok
	return n, ok
}

// ParseRating parses a rating and reports whether it lies in [RatingMin, RatingMax].
func ParseRating(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if n < RatingMin || n > RatingMax {
		return n, false
	}
	return n, true
}
