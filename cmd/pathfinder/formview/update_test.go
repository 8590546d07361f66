package formview

import (
	"errors"
	"testing"

	"pathfinder/internal/form"
	"pathfinder/internal/predict"
	"pathfinder/internal/submit"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func TestFocusRingFollowsFieldOrder(t *testing.T) {
	m := newTestModel(t, &stubPredictor{})

	want := []focusItem{
		{kind: focusDropdown, index: 0},
		{kind: focusRating},
		{kind: focusDropdown, index: 1},
		{kind: focusDropdown, index: 2},
		{kind: focusDropdown, index: 3},
		{kind: focusSubmit},
	}
	if len(m.focus) != len(want) {
		t.Fatalf("focus ring length = %d, want %d", len(m.focus), len(want))
	}
	for i := range want {
		if m.focus[i] != want[i] {
			t.Errorf("focus[%d] = %+v, want %+v", i, m.focus[i], want[i])
		}
	}
}

func TestDropdownOpenSelect(t *testing.T) {
	m := newTestModel(t, &stubPredictor{})

	m, _ = send(m, keyMsg(tea.KeyEnter))
	if !m.Form().Dropdowns.At(0).IsOpen() {
		t.Fatal("enter should open the focused dropdown")
	}

	m, _ = send(m, runesMsg("j"), keyMsg(tea.KeyDown), runesMsg("k"), keyMsg(tea.KeyEnter))
	d := m.Form().Dropdowns.At(0)
	if d.IsOpen() {
		t.Error("selecting should close the dropdown")
	}
	if d.Label() != "Information Technology" {
		t.Errorf("label = %q, want Information Technology", d.Label())
	}
	if got := m.Form().Selections.Value(form.FieldMajor); got != "IT" {
		t.Errorf("store major = %q, want IT", got)
	}
}

func TestDropdownCursorStartsOnCurrentChoice(t *testing.T) {
	m := newTestModel(t, &stubPredictor{})

	m, _ = send(m, keyMsg(tea.KeyEnter), keyMsg(tea.KeyDown), keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))
	m, _ = send(m, keyMsg(tea.KeyEnter))
	if m.cursors[0] != 2 {
		t.Errorf("cursor = %d, want 2", m.cursors[0])
	}
}

func TestCursorClampsToOptions(t *testing.T) {
	m := newTestModel(t, &stubPredictor{})

	m, _ = send(m, keyMsg(tea.KeyEnter), keyMsg(tea.KeyUp))
	if m.cursors[0] != 0 {
		t.Errorf("cursor moved above first option: %d", m.cursors[0])
	}
	for i := 0; i < 10; i++ {
		m, _ = send(m, keyMsg(tea.KeyDown))
	}
	if last := len(m.Form().Dropdowns.At(0).Options()) - 1; m.cursors[0] != last {
		t.Errorf("cursor = %d, want %d", m.cursors[0], last)
	}
}

func TestEscAndFocusChangeCloseDropdowns(t *testing.T) {
	m := newTestModel(t, &stubPredictor{})

	m, _ = send(m, keyMsg(tea.KeyEnter), keyMsg(tea.KeyEsc))
	if _, open := m.Form().Dropdowns.Open(); open {
		t.Error("esc should close every dropdown")
	}

	m, _ = send(m, keyMsg(tea.KeyEnter), keyMsg(tea.KeyTab))
	if _, open := m.Form().Dropdowns.Open(); open {
		t.Error("moving focus should close every dropdown")
	}
	if m.focused().kind != focusRating {
		t.Errorf("focus = %+v, want rating", m.focused())
	}
	if m.Form().Dropdowns.At(0).Label() != "Select Major" {
		t.Error("closing without a choice must keep the placeholder")
	}
}

func TestShiftTabWraps(t *testing.T) {
	m := newTestModel(t, &stubPredictor{})

	m, _ = send(m, keyMsg(tea.KeyShiftTab))
	if m.focused().kind != focusSubmit {
		t.Errorf("focus = %+v, want submit", m.focused())
	}
	m, _ = send(m, keyMsg(tea.KeyTab))
	if m.focusIdx != 0 {
		t.Errorf("focusIdx = %d, want 0", m.focusIdx)
	}
}

func TestRatingWritesStoreVerbatim(t *testing.T) {
	m := newTestModel(t, &stubPredictor{})

	m, _ = send(m, keyMsg(tea.KeyTab), runesMsg("4"), runesMsg("2"))
	raw, ok := m.Form().Selections.Get(form.FieldSoftSkillsRating)
	if !ok || raw != "42" {
		t.Errorf("store rating = %q (set=%v), want 42", raw, ok)
	}
	if m.Form().Rating.Invalid() {
		t.Error("no live range validation expected")
	}
}

func TestSubmitIncompleteShowsNotice(t *testing.T) {
	p := &stubPredictor{}
	m := newTestModel(t, p)

	m, cmd := send(m, keyMsg(tea.KeyShiftTab), keyMsg(tea.KeyEnter))
	if cmd != nil {
		t.Error("no exchange should be scheduled")
	}
	if m.Notice() != submit.IncompleteNotice {
		t.Errorf("notice = %q", m.Notice())
	}
	if p.calls != 0 {
		t.Errorf("predictor called %d times", p.calls)
	}
	if !m.Form().Rating.Invalid() {
		t.Error("rating should be flagged")
	}
	for _, d := range m.Form().Dropdowns.Widgets() {
		if !d.Invalid() {
			t.Errorf("%s should be flagged", d.Field())
		}
	}

	// The notice blocks input until acknowledged.
	m, _ = send(m, keyMsg(tea.KeyTab))
	if m.focused().kind != focusSubmit {
		t.Error("focus moved while notice was shown")
	}
	m, _ = send(m, keyMsg(tea.KeyEnter))
	if m.Notice() != "" {
		t.Errorf("notice not dismissed: %q", m.Notice())
	}
	if !m.Workflow().Trigger().Enabled() {
		t.Error("trigger should stay enabled after a validation failure")
	}
}

func TestSubmitSuccess(t *testing.T) {
	p := &stubPredictor{resp: successResponse("Data Scientist")}
	m := fillForm(t, newTestModel(t, p), "7")

	m, cmd := send(m, keyMsg(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected an exchange command")
	}
	trig := m.Workflow().Trigger()
	if trig.State != submit.Pending || trig.Label != submit.PendingLabel {
		t.Errorf("trigger = %+v, want pending", trig)
	}

	// A second press while pending is ignored.
	if _, again := send(m, keyMsg(tea.KeyEnter)); again != nil {
		t.Error("press while pending should not start another exchange")
	}

	var done []tea.Msg
	for _, msg := range collect(cmd) {
		if _, ok := msg.(exchangeDoneMsg); ok {
			done = append(done, msg)
		}
	}
	if len(done) != 1 {
		t.Fatalf("got %d exchange completions, want 1", len(done))
	}
	if p.calls != 1 {
		t.Fatalf("predictor called %d times", p.calls)
	}
	want := predict.Request{
		SoftSkillsRating: 7,
		Major:            "CS",
		TechnicalSkills:  "Python",
		SoftSkills:       "Communication",
		CareerInterest:   "Data",
	}
	if p.got != want {
		t.Errorf("request = %+v, want %+v", p.got, want)
	}

	m, _ = send(m, done[0])
	res := m.Workflow().Result()
	if res.Kind != submit.ResultSuccess || res.Prediction != "Data Scientist" {
		t.Errorf("result = %+v", res)
	}
	trig = m.Workflow().Trigger()
	if !trig.Enabled() || trig.Label != submit.DefaultIdleLabel {
		t.Errorf("trigger not restored: %+v", trig)
	}
}

func TestSubmitTransportFailure(t *testing.T) {
	p := &stubPredictor{err: &predict.TransportError{Op: "send request", Err: errors.New("connection refused")}}
	m := fillForm(t, newTestModel(t, p), "5")

	m, cmd := send(m, keyMsg(tea.KeyEnter))
	for _, msg := range collect(cmd) {
		if _, ok := msg.(exchangeDoneMsg); ok {
			m, _ = send(m, msg)
		}
	}

	res := m.Workflow().Result()
	if res.Kind != submit.ResultTransportError {
		t.Fatalf("result kind = %s", res.Kind)
	}
	if !m.Workflow().Trigger().Enabled() {
		t.Error("trigger not restored")
	}
}

func TestSpinnerTickIgnoredWhenIdle(t *testing.T) {
	m := newTestModel(t, &stubPredictor{})

	_, cmd := send(m, spinner.TickMsg{})
	if cmd != nil {
		t.Error("idle spinner should stop ticking")
	}
}

func TestWindowSize(t *testing.T) {
	m := newTestModel(t, &stubPredictor{})

	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.width != 100 || m.height != 40 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, &stubPredictor{})

	m, cmd := send(m, keyMsg(tea.KeyCtrlC))
	if !m.quitting {
		t.Error("expected quitting")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestNewModelRequiresPageAndPredictor(t *testing.T) {
	if _, err := NewModel(Config{Predictor: &stubPredictor{}}); err == nil {
		t.Error("expected error without page")
	}
	page := newTestModel(t, &stubPredictor{}).page
	if _, err := NewModel(Config{Page: page}); err == nil {
		t.Error("expected error without predictor")
	}
}
