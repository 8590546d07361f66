package formview

import (
	"strings"

	"pathfinder/internal/submit"

	"github.com/charmbracelet/lipgloss"
)

const footerHelp = "tab/shift+tab move • enter open/select • esc close • ctrl+c quit"

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.styles.Header.Render(m.page.Title))

	var body []string
	for idx, item := range m.focus {
		focused := idx == m.focusIdx
		switch item.kind {
		case focusDropdown:
			body = append(body, m.renderDropdown(item.index, focused))
		case focusRating:
			body = append(body, m.renderRating(focused))
		case focusSubmit:
			body = append(body, m.renderTrigger(focused))
		}
	}
	if res := m.workflow.Result(); res.Visible() {
		body = append(body, m.styles.RenderDivider(m.width/2), m.renderResult(res))
	}
	sections = append(sections, m.styles.Body.Render(lipgloss.JoinVertical(lipgloss.Left, body...)))
	sections = append(sections, m.styles.Footer.Render(footerHelp))

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.notice == "" {
		return view
	}

	box := m.styles.Notice.Render(m.notice + "\n\n" + m.styles.Muted.Render("[enter] OK"))
	if m.width == 0 || m.height == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, view, box)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderDropdown(i int, focused bool) string {
	d := m.form.Dropdowns.At(i)

	style := m.styles.Trigger
	switch {
	case d.Invalid():
		style = m.styles.TriggerError
	case focused:
		style = m.styles.TriggerFocused
	}

	arrow := "▾"
	if d.IsOpen() {
		arrow = "▴"
	}
	label := d.Label()
	if d.ShowsPlaceholder() {
		label = m.styles.Muted.Render(label)
	}
	lines := []string{style.Render(label + " " + arrow)}

	if d.IsOpen() {
		for j, opt := range d.Options() {
			if j == m.cursors[i] {
				lines = append(lines, m.styles.OptionCursor.Render("› "+opt.Label))
				continue
			}
			lines = append(lines, m.styles.Option.Render(opt.Label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderRating(focused bool) string {
	style := m.styles.Input
	if m.form.Rating.Invalid() {
		style = m.styles.InputError
	} else if focused {
		style = style.BorderForeground(m.styles.Theme.Accent)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Label.Render(m.page.RatingLabel),
		style.Render(m.rating.View()),
	)
}

func (m Model) renderTrigger(focused bool) string {
	t := m.workflow.Trigger()
	switch {
	case !t.Enabled():
		return m.styles.ButtonDisabled.Render(m.spinner.View() + " " + t.Label)
	case focused:
		return m.styles.ButtonFocused.Render(t.Label)
	}
	return m.styles.Button.Render(t.Label)
}

func (m Model) renderResult(res submit.Result) string {
	style := m.styles.PanelError
	if res.Kind == submit.ResultSuccess {
		style = m.styles.PanelSuccess
	}

	if m.renderer != nil {
		if out, err := m.renderer.Render(res.Markdown()); err == nil {
			return style.Render(strings.TrimRight(out, "\n"))
		}
	}

	lines := res.Lines()
	if len(lines) > 0 {
		title := m.styles.Error
		if res.Kind == submit.ResultSuccess {
			title = m.styles.Success
		}
		lines[0] = title.Render(lines[0])
	}
	return style.Render(strings.Join(lines, "\n"))
}
