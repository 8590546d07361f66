// Package submit drives one form submission: validate, serialize, a single
// exchange with the prediction endpoint, and the result display. The trigger
// control goes Idle -> Pending -> Idle and is restored on every exit path.
package submit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pathfinder/internal/form"
	"pathfinder/internal/logging"
	"pathfinder/internal/predict"

	"github.com/google/uuid"
)

var (
	// ErrIncomplete is returned when validation fails. No request is sent.
	ErrIncomplete = errors.New("form incomplete")
	// ErrInFlight is returned when the trigger is pressed while disabled.
	ErrInFlight = errors.New("submission already in flight")
)

const (
	DefaultIdleLabel = "Get Career Prediction"
	PendingLabel     = "Analyzing..."
)

// Predictor performs the request/response exchange.
type Predictor interface {
	Predict(ctx context.Context, req predict.Request) (*predict.Response, error)
}

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// TriggerState is the state of the submit trigger control.
type TriggerState int

const (
	Idle TriggerState = iota
	Pending
)

func (s TriggerState) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

// Trigger is the submit control as the user sees it.
type Trigger struct {
	State TriggerState
	Label string
}

// Enabled reports whether the trigger accepts a press.
func (t Trigger) Enabled() bool { return t.State == Idle }

// Workflow is the submission state machine for one form session.
type Workflow struct {
	form      *form.Form
	predictor Predictor
	notifier  Notifier
	idleLabel string

	trigger Trigger
	result  Result
	current *Submission
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithIdleLabel sets the trigger's resting label.
func WithIdleLabel(label string) Option {
	return func(w *Workflow) {
		if label != "" {
			w.idleLabel = label
		}
	}
}

// New creates a workflow over f.
func New(f *form.Form, p Predictor, n Notifier, opts ...Option) *Workflow {
	w := &Workflow{
		form:      f,
		predictor: p,
		notifier:  n,
		idleLabel: DefaultIdleLabel,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.trigger = Trigger{State: Idle, Label: w.idleLabel}
	return w
}

// Trigger returns the current trigger control state.
func (w *Workflow) Trigger() Trigger { return w.trigger }

// Result returns what the result area currently shows.
func (w *Workflow) Result() Result { return w.result }

// Submission is a validated request waiting for its exchange.
type Submission struct {
	ID      string
	Request predict.Request

	predictor Predictor
	started   time.Time
}

// Begin runs the synchronous half of a submission: validation, the blocking
// notice on failure, serialization, and the transition to Pending. Every
// successful Begin must be followed by exactly one Complete.
func (w *Workflow) Begin() (*Submission, error) {
	if w.trigger.State == Pending {
		return nil, ErrInFlight
	}

	v := w.form.Validate()
	if !v.OK() {
		return nil, w.abort(v)
	}

	req, err := Serialize(w.form.Selections)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		w.notifier.Notify(IncompleteNotice)
		logging.SubmitWarn("Serialized request rejected: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrIncomplete, err)
	}

	sub := &Submission{
		ID:        uuid.NewString(),
		Request:   req,
		predictor: w.predictor,
		started:   time.Now(),
	}
	w.current = sub
	w.trigger = Trigger{State: Pending, Label: PendingLabel}
	w.result = Result{}

	logging.SubmitDebug("Sending data: %+v", req)
	logging.Audit(logging.AuditEvent{
		Type:         logging.AuditSubmitBegin,
		SubmissionID: sub.ID,
		Fields:       map[string]interface{}{"rating": req.SoftSkillsRating},
	})
	return sub, nil
}

func (w *Workflow) abort(v form.Validation) error {
	missing := make([]string, 0, len(v.Missing)+1)
	if !v.RatingValid {
		missing = append(missing, string(form.FieldSoftSkillsRating))
	}
	for _, f := range v.Missing {
		missing = append(missing, string(f))
	}
	w.notifier.Notify(IncompleteNotice)
	logging.Submit("Validation failed: %s", strings.Join(missing, ", "))
	logging.Audit(logging.AuditEvent{
		Type:   logging.AuditSubmitAbort,
		Fields: map[string]interface{}{"invalid": missing},
	})
	return fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(missing, ", "))
}

// Exchange performs the network exchange. It never panics: a panic in the
// predictor is reported as a transport failure so the caller always gets an
// Outcome to complete with.
func (s *Submission) Exchange(ctx context.Context) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logging.SubmitError("Exchange %s panicked: %v", s.ID, r)
			out = Outcome{Err: fmt.Errorf("exchange aborted: %v", r)}
		}
	}()
	ctx = predict.WithRequestID(ctx, s.ID)
	resp, err := s.predictor.Predict(ctx, s.Request)
	return Outcome{Response: resp, Err: err}
}

// Complete renders the outcome of sub and restores the trigger.
func (w *Workflow) Complete(sub *Submission, out Outcome) Result {
	defer w.restore()

	w.result = render(sub.Request, out)
	if predict.IsTransport(out.Err) {
		logging.SubmitWarn("Submission %s could not reach the endpoint: %v", sub.ID, out.Err)
	}
	logging.Submit("Submission %s settled: %s", sub.ID, w.result.Kind)
	logging.Audit(logging.AuditEvent{
		Type:         logging.AuditSubmitOutcome,
		SubmissionID: sub.ID,
		Outcome:      w.result.Kind.String(),
		Duration:     time.Since(sub.started),
	})
	return w.result
}

func (w *Workflow) restore() {
	w.current = nil
	w.trigger = Trigger{State: Idle, Label: w.idleLabel}
}

// Submit runs a whole submission synchronously. The returned error is only
// ErrIncomplete or ErrInFlight; endpoint and transport failures are reported
// through the Result.
func (w *Workflow) Submit(ctx context.Context) (Result, error) {
	sub, err := w.Begin()
	if err != nil {
		return w.result, err
	}
	return w.Complete(sub, sub.Exchange(ctx)), nil
}

// Serialize maps the selection store onto the endpoint's request body. The
// rating is coerced to an integer.
func Serialize(s *form.Selections) (predict.Request, error) {
	raw, ok := s.Get(form.FieldSoftSkillsRating)
	if !ok {
		return predict.Request{}, fmt.Errorf("%s is unset", form.FieldSoftSkillsRating)
	}
	rating, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return predict.Request{}, fmt.Errorf("%s: %w", form.FieldSoftSkillsRating, err)
	}
	return predict.Request{
		SoftSkillsRating: rating,
		Major:            s.Value(form.FieldMajor),
		TechnicalSkills:  s.Value(form.FieldTechnicalSkills),
		SoftSkills:       s.Value(form.FieldSoftSkills),
		CareerInterest:   s.Value(form.FieldCareerInterest),
	}, nil
}
