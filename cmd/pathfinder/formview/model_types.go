package formview

import (
	"context"

	"pathfinder/cmd/pathfinder/ui"
	"pathfinder/internal/form"
	"pathfinder/internal/markup"
	"pathfinder/internal/submit"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
)

// Config holds what a form session is started from.
type Config struct {
	Page      *markup.Page
	Predictor submit.Predictor
	Styles    ui.Styles

	// Context bounds every exchange; cancelled when the program exits.
	Context context.Context

	// Markdown renders the result panel through glamour.
	Markdown bool
}

// focusKind identifies which control holds keyboard focus.
type focusKind int

const (
	focusDropdown focusKind = iota
	focusRating
	focusSubmit
)

type focusItem struct {
	kind  focusKind
	index int // dropdown index for focusDropdown
}

// exchangeDoneMsg carries a settled exchange back into the event loop.
type exchangeDoneMsg struct {
	sub *submit.Submission
	out submit.Outcome
}

// noticeQueue receives blocking notices from the workflow. It is shared by
// pointer so every copy of the Model sees the same queue.
type noticeQueue struct {
	pending []string
}

func (q *noticeQueue) Notify(message string) {
	q.pending = append(q.pending, message)
}

// take returns the oldest pending notice.
func (q *noticeQueue) take() string {
	if len(q.pending) == 0 {
		return ""
	}
	msg := q.pending[0]
	q.pending = q.pending[1:]
	return msg
}

// Model is the Bubble Tea model of the predictor form.
type Model struct {
	page     *markup.Page
	form     *form.Form
	workflow *submit.Workflow
	notices  *noticeQueue
	ctx      context.Context

	styles   ui.Styles
	rating   textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	focus    []focusItem
	focusIdx int
	// highlighted option per dropdown index while it is open
	cursors map[int]int

	// notice is the blocking notice currently on screen
	notice string

	width    int
	height   int
	quitting bool
}
