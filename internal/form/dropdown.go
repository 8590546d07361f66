package form

import (
	"errors"
	"fmt"
	"strings"

	"pathfinder/internal/logging"
)

var (
	// ErrWidgetClosed is returned when selecting from a dropdown that is not open.
	ErrWidgetClosed = errors.New("dropdown is not open")
	// ErrNoSuchOption is returned when an option index or value does not exist.
	ErrNoSuchOption = errors.New("no such option")
	// ErrNoSuchWidget is returned for an out of range widget index or unknown field.
	ErrNoSuchWidget = errors.New("no such dropdown")
)

// Option is one entry of a dropdown's fixed option list.
type Option struct {
	Label string
	Value string
}

// DropdownSpec is the static declaration a dropdown is built from.
type DropdownSpec struct {
	Field       Field
	Placeholder string
	Options     []Option
}

// Dropdown is a custom selection widget bound to one store field.
type Dropdown struct {
	spec    DropdownSpec
	label   string
	open    bool
	invalid bool
}

func newDropdown(spec DropdownSpec) *Dropdown {
	opts := make([]Option, len(spec.Options))
	copy(opts, spec.Options)
	spec.Options = opts
	return &Dropdown{spec: spec, label: spec.Placeholder}
}

func (d *Dropdown) Field() Field        { return d.spec.Field }
func (d *Dropdown) Placeholder() string { return d.spec.Placeholder }
func (d *Dropdown) Options() []Option   { return d.spec.Options }
func (d *Dropdown) Label() string       { return d.label }
func (d *Dropdown) IsOpen() bool        { return d.open }
func (d *Dropdown) Invalid() bool       { return d.invalid }

// ShowsPlaceholder reports whether the trigger still shows its initial text.
func (d *Dropdown) ShowsPlaceholder() bool { return d.label == d.spec.Placeholder }

// MarkInvalid applies error styling to the trigger.
func (d *Dropdown) MarkInvalid() { d.invalid = true }

// OptionIndex finds an option by value, falling back to a case-insensitive
// label match.
func (d *Dropdown) OptionIndex(valueOrLabel string) (int, bool) {
	for i, o := range d.spec.Options {
		if o.Value == valueOrLabel {
			return i, true
		}
	}
	for i, o := range d.spec.Options {
		if strings.EqualFold(o.Label, valueOrLabel) {
			return i, true
		}
	}
	return -1, false
}

// Dropdowns is the controller for the whole widget set. At most one widget
// is open at any time.
type Dropdowns struct {
	widgets []*Dropdown
	store   *Selections
}

// NewDropdowns builds the widget set from its declarations. Each field may be
// declared once.
func NewDropdowns(specs []DropdownSpec, store *Selections) (*Dropdowns, error) {
	seen := make(map[Field]bool, len(specs))
	widgets := make([]*Dropdown, 0, len(specs))
	for _, spec := range specs {
		if !spec.Field.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, spec.Field)
		}
		if spec.Field == FieldSoftSkillsRating {
			return nil, fmt.Errorf("field %q is bound to the rating input", spec.Field)
		}
		if seen[spec.Field] {
			return nil, fmt.Errorf("field %q declared twice", spec.Field)
		}
		if len(spec.Options) == 0 {
			return nil, fmt.Errorf("dropdown %q has no options", spec.Field)
		}
		seen[spec.Field] = true
		widgets = append(widgets, newDropdown(spec))
	}
	return &Dropdowns{widgets: widgets, store: store}, nil
}

// Len returns the number of widgets.
func (c *Dropdowns) Len() int { return len(c.widgets) }

// At returns the widget at index i.
func (c *Dropdowns) At(i int) *Dropdown {
	if i < 0 || i >= len(c.widgets) {
		return nil
	}
	return c.widgets[i]
}

// Widgets returns the widgets in declaration order.
func (c *Dropdowns) Widgets() []*Dropdown { return c.widgets }

// Index returns the position of the widget bound to f.
func (c *Dropdowns) Index(f Field) (int, bool) {
	for i, w := range c.widgets {
		if w.spec.Field == f {
			return i, true
		}
	}
	return -1, false
}

// Open returns the index of the open widget, if any.
func (c *Dropdowns) Open() (int, bool) {
	for i, w := range c.widgets {
		if w.open {
			return i, true
		}
	}
	return -1, false
}

// Toggle flips widget i and closes every other widget.
func (c *Dropdowns) Toggle(i int) error {
	target := c.At(i)
	if target == nil {
		return fmt.Errorf("%w: index %d", ErrNoSuchWidget, i)
	}
	for _, w := range c.widgets {
		if w != target {
			w.open = false
		}
	}
	target.open = !target.open
	logging.FormDebug("Toggle %s: open=%v", target.spec.Field, target.open)
	return nil
}

// CloseAll handles a click outside every widget.
func (c *Dropdowns) CloseAll() {
	for _, w := range c.widgets {
		w.open = false
	}
}

// Select picks option opt in the open widget i: the widget closes, shows the
// option label, drops its error styling, and the option value is written to
// the store.
func (c *Dropdowns) Select(i, opt int) error {
	w := c.At(i)
	if w == nil {
		logging.FormWarn("Select on unknown dropdown %d", i)
		return fmt.Errorf("%w: index %d", ErrNoSuchWidget, i)
	}
	if !w.open {
		logging.FormWarn("Select on closed dropdown %s", w.spec.Field)
		return fmt.Errorf("%w: %s", ErrWidgetClosed, w.spec.Field)
	}
	if opt < 0 || opt >= len(w.spec.Options) {
		logging.FormWarn("Select %s: option %d out of range", w.spec.Field, opt)
		return fmt.Errorf("%w: %s[%d]", ErrNoSuchOption, w.spec.Field, opt)
	}
	o := w.spec.Options[opt]
	if err := c.store.Set(w.spec.Field, o.Value); err != nil {
		logging.FormWarn("Select %s: %v", w.spec.Field, err)
		return err
	}
	w.open = false
	w.label = o.Label
	w.invalid = false
	logging.Form("Selected %s = %q (%s)", w.spec.Field, o.Value, o.Label)
	return nil
}

// Choose opens the widget for f and selects the option matching valueOrLabel.
func (c *Dropdowns) Choose(f Field, valueOrLabel string) error {
	i, ok := c.Index(f)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchWidget, f)
	}
	opt, ok := c.widgets[i].OptionIndex(valueOrLabel)
	if !ok {
		return fmt.Errorf("%w: %s=%q", ErrNoSuchOption, f, valueOrLabel)
	}
	if !c.widgets[i].open {
		if err := c.Toggle(i); err != nil {
			return err
		}
	}
	return c.Select(i, opt)
}
