package formview

import (
	"context"
	"encoding/json"
	"testing"

	"pathfinder/cmd/pathfinder/ui"
	"pathfinder/internal/markup"
	"pathfinder/internal/predict"

	tea "github.com/charmbracelet/bubbletea"
)

type stubPredictor struct {
	calls int
	got   predict.Request
	resp  *predict.Response
	err   error
}

func (s *stubPredictor) Predict(_ context.Context, req predict.Request) (*predict.Response, error) {
	s.calls++
	s.got = req
	return s.resp, s.err
}

func successResponse(prediction string) *predict.Response {
	raw, _ := json.Marshal(prediction)
	return &predict.Response{Success: true, Prediction: raw}
}

func newTestModel(t *testing.T, p *stubPredictor) Model {
	t.Helper()
	page, err := markup.Default()
	if err != nil {
		t.Fatalf("default page: %v", err)
	}
	m, err := NewModel(Config{
		Page:      page,
		Predictor: p,
		Styles:    ui.NewStyles(ui.LightTheme()),
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runesMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msgs through Update and returns the model and the last command.
func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

// collect runs cmd and every command batched inside it.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// fillForm picks the first option of every dropdown and types rating.
// Focus ends on the submit trigger.
func fillForm(t *testing.T, m Model, rating string) Model {
	t.Helper()
	enter := keyMsg(tea.KeyEnter)
	tab := keyMsg(tea.KeyTab)
	m, _ = send(m, enter, enter, tab, runesMsg(rating), tab)
	for i := 0; i < 3; i++ {
		m, _ = send(m, enter, enter, tab)
	}
	if m.focused().kind != focusSubmit {
		t.Fatalf("expected focus on submit, got %+v", m.focused())
	}
	return m
}
