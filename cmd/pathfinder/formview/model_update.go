package formview

import (
	"context"
	"errors"

	"pathfinder/internal/logging"
	"pathfinder/internal/submit"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case exchangeDoneMsg:
		res := m.workflow.Complete(msg.sub, msg.out)
		logging.UIDebug("Result panel now %s", res.Kind)
		return m, nil

	case spinner.TickMsg:
		// The spinner only runs while a submission is pending.
		if m.workflow.Trigger().State != submit.Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focused().kind == focusRating {
		return m.updateRating(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// A blocking notice swallows input until acknowledged.
	if m.notice != "" {
		switch key {
		case "enter", "esc", " ":
			m.notice = m.notices.take()
		}
		return m, nil
	}

	switch key {
	case "tab", "down":
		if key == "tab" || !m.dropdownOpen() {
			return m.moveFocus(1)
		}
	case "shift+tab", "up":
		if key == "shift+tab" || !m.dropdownOpen() {
			return m.moveFocus(-1)
		}
	case "esc":
		m.form.Dropdowns.CloseAll()
		return m, nil
	}

	switch item := m.focused(); item.kind {
	case focusDropdown:
		return m.handleDropdownKey(item.index, key)
	case focusRating:
		if key == "enter" {
			return m.moveFocus(1)
		}
		return m.updateRating(msg)
	case focusSubmit:
		if key == "enter" || key == " " {
			return m.press()
		}
	}
	return m, nil
}

// dropdownOpen reports whether the focused dropdown is expanded.
func (m Model) dropdownOpen() bool {
	item := m.focused()
	return item.kind == focusDropdown && m.form.Dropdowns.At(item.index).IsOpen()
}

// moveFocus shifts focus by delta. Leaving a control counts as a click
// outside every dropdown.
func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.form.Dropdowns.CloseAll()
	n := len(m.focus)
	m.focusIdx = ((m.focusIdx+delta)%n + n) % n

	if m.focused().kind == focusRating {
		return m, m.rating.Focus()
	}
	m.rating.Blur()
	return m, nil
}

func (m Model) handleDropdownKey(i int, key string) (tea.Model, tea.Cmd) {
	d := m.form.Dropdowns.At(i)
	if !d.IsOpen() {
		switch key {
		case "enter", " ":
			if err := m.form.Dropdowns.Toggle(i); err != nil {
				logging.UIDebug("toggle %d: %v", i, err)
				return m, nil
			}
			// Start the cursor on the current choice.
			m.cursors[i] = 0
			if idx, ok := d.OptionIndex(m.form.Selections.Value(d.Field())); ok {
				m.cursors[i] = idx
			}
		}
		return m, nil
	}

	last := len(d.Options()) - 1
	switch key {
	case "down", "j":
		if m.cursors[i] < last {
			m.cursors[i]++
		}
	case "up", "k":
		if m.cursors[i] > 0 {
			m.cursors[i]--
		}
	case "enter", " ":
		if err := m.form.Dropdowns.Select(i, m.cursors[i]); err != nil {
			logging.UIDebug("select %d/%d: %v", i, m.cursors[i], err)
		}
	}
	return m, nil
}

func (m Model) updateRating(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.rating.Value()
	var cmd tea.Cmd
	m.rating, cmd = m.rating.Update(msg)
	if v := m.rating.Value(); v != before {
		m.form.Rating.SetValue(v)
	}
	return m, cmd
}

// press is a click on the submit trigger.
func (m Model) press() (tea.Model, tea.Cmd) {
	if !m.workflow.Trigger().Enabled() {
		return m, nil
	}
	m.form.Dropdowns.CloseAll()

	sub, err := m.workflow.Begin()
	if err != nil {
		if errors.Is(err, submit.ErrIncomplete) {
			m.notice = m.notices.take()
		}
		logging.UIDebug("Submission not started: %v", err)
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, exchangeCmd(m.ctx, sub))
}

func exchangeCmd(ctx context.Context, sub *submit.Submission) tea.Cmd {
	return func() tea.Msg {
		return exchangeDoneMsg{sub: sub, out: sub.Exchange(ctx)}
	}
}
