package form

// Layout is the set of widget declarations a form session starts from.
type Layout struct {
	Dropdowns []DropdownSpec
}

// Form owns the selection store and every widget bound to it for one session.
type Form struct {
	Selections *Selections
	Dropdowns  *Dropdowns
	Rating     *RatingInput
}

// New starts a session: an all-unset store plus the widgets from layout.
func New(layout Layout) (*Form, error) {
	store := NewSelections()
	dropdowns, err := NewDropdowns(layout.Dropdowns, store)
	if err != nil {
		return nil, err
	}
	return &Form{
		Selections: store,
		Dropdowns:  dropdowns,
		Rating:     NewRatingInput(store),
	}, nil
}

// Validation is the outcome of one validation pass.
type Validation struct {
	Rating      int
	RatingValid bool
	// Missing lists the dropdown fields still showing their placeholder.
	Missing []Field
}

// OK reports whether every check passed.
func (v Validation) OK() bool {
	return v.RatingValid && len(v.Missing) == 0
}

// Validate checks every field and flags each failing widget. It never stops
// at the first failure.
func (f *Form) Validate() Validation {
	var v Validation
	v.Rating, v.RatingValid = f.Rating.Check()
	for _, w := range f.Dropdowns.Widgets() {
		if w.ShowsPlaceholder() {
			w.MarkInvalid()
			v.Missing = append(v.Missing, w.Field())
		}
	}
	return v
}
