package form

import (
	"errors"
	"fmt"
)

// Field identifies one entry in the selection store.
type Field string

const (
	FieldMajor            Field = "major"
	FieldSoftSkillsRating Field = "softSkillsRating"
	FieldTechnicalSkills  Field = "technicalSkills"
	FieldSoftSkills       Field = "softSkills"
	FieldCareerInterest   Field = "careerInterest"
)

// Fields lists every store field in display order.
var Fields = []Field{
	FieldMajor,
	FieldSoftSkillsRating,
	FieldTechnicalSkills,
	FieldSoftSkills,
	FieldCareerInterest,
}

// ErrUnknownField is returned when a field identifier is not part of the store.
var ErrUnknownField = errors.New("unknown field")

// Valid reports whether f is one of the fixed store fields.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// Selections is the per-session selection store. A field that was never
// written is unset, which is distinct from an explicit empty string.
type Selections struct {
	values map[Field]*string
}

// NewSelections returns a store with every field unset.
func NewSelections() *Selections {
	values := make(map[Field]*string, len(Fields))
	for _, f := range Fields {
		values[f] = nil
	}
	return &Selections{values: values}
}

// Set overwrites a single field.
func (s *Selections) Set(f Field, value string) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	v := value
	s.values[f] = &v
	return nil
}

// Get returns the field value and whether it has been set.
func (s *Selections) Get(f Field) (string, bool) {
	v := s.values[f]
	if v == nil {
		return "", false
	}
	return *v, true
}

// IsSet reports whether the field has been written this session.
func (s *Selections) IsSet(f Field) bool {
	return s.values[f] != nil
}

// Value returns the field value, or "" when unset.
func (s *Selections) Value(f Field) string {
	v, _ := s.Get(f)
	return v
}

// Snapshot copies the store. Unset fields map to nil.
func (s *Selections) Snapshot() map[Field]*string {
	out := make(map[Field]*string, len(s.values))
	for f, v := range s.values {
		if v == nil {
			out[f] = nil
			continue
		}
		c := *v
		out[f] = &c
	}
	return out
}
