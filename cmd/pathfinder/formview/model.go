// Package formview is the interactive terminal form: dropdown widgets, the
// rating input, the submit trigger and the result panel, bound to the form
// state and submission workflow.
package formview

import (
	"context"
	"errors"

	"pathfinder/internal/form"
	"pathfinder/internal/logging"
	"pathfinder/internal/submit"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const defaultWrap = 72

// NewModel starts a form session from cfg.
func NewModel(cfg Config) (Model, error) {
	if cfg.Page == nil {
		return Model{}, errors.New("page required")
	}
	if cfg.Predictor == nil {
		return Model{}, errors.New("predictor required")
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := form.New(cfg.Page.Layout)
	if err != nil {
		return Model{}, err
	}
	notices := &noticeQueue{}
	wf := submit.New(f, cfg.Predictor, notices, submit.WithIdleLabel(cfg.Page.SubmitLabel))

	ti := textinput.New()
	ti.Placeholder = "1-10"
	ti.Prompt = ""
	ti.CharLimit = 3
	ti.Width = 6

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(cfg.Styles.Spinner))

	m := Model{
		page:     cfg.Page,
		form:     f,
		workflow: wf,
		notices:  notices,
		ctx:      ctx,
		styles:   cfg.Styles,
		rating:   ti,
		spinner:  sp,
		cursors:  make(map[int]int),
	}
	m.focus = buildFocusRing(f)

	if cfg.Markdown {
		style := "light"
		if cfg.Styles.Theme.IsDark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(defaultWrap),
		)
		if err != nil {
			logging.UIDebug("glamour unavailable, using plain results: %v", err)
		} else {
			m.renderer = r
		}
	}

	logging.UI("Form session started: %d dropdowns", f.Dropdowns.Len())
	return m, nil
}

// buildFocusRing orders controls the way the store lists its fields: the
// rating input sits where softSkillsRating appears, dropdowns keep their
// declaration order around it, the submit trigger comes last.
func buildFocusRing(f *form.Form) []focusItem {
	ring := make([]focusItem, 0, f.Dropdowns.Len()+2)
	ratingPlaced := false
	for i, d := range f.Dropdowns.Widgets() {
		if !ratingPlaced && fieldOrder(d.Field()) > fieldOrder(form.FieldSoftSkillsRating) {
			ring = append(ring, focusItem{kind: focusRating})
			ratingPlaced = true
		}
		ring = append(ring, focusItem{kind: focusDropdown, index: i})
	}
	if !ratingPlaced {
		ring = append(ring, focusItem{kind: focusRating})
	}
	return append(ring, focusItem{kind: focusSubmit})
}

func fieldOrder(f form.Field) int {
	for i, known := range form.Fields {
		if f == known {
			return i
		}
	}
	return len(form.Fields)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Form exposes the session's form state.
func (m Model) Form() *form.Form { return m.form }

// Workflow exposes the session's submission workflow.
func (m Model) Workflow() *submit.Workflow { return m.workflow }

// Notice returns the blocking notice on screen, if any.
func (m Model) Notice() string { return m.notice }

func (m Model) focused() focusItem { return m.focus[m.focusIdx] }
