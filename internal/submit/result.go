package submit

import (
	"fmt"
	"strings"

	"pathfinder/internal/predict"
)

const (
	// IncompleteNotice is the single blocking notice shown when validation fails.
	IncompleteNotice = "Please complete all fields before getting prediction!"
	// DefaultApplicationError is shown when the endpoint declines without a message.
	DefaultApplicationError = "An error occurred while processing your request."
	// ConnectionMessage heads every transport failure.
	ConnectionMessage = "Could not connect to the server. Please make sure the prediction backend is running."

	successTitle    = "Career Prediction Results"
	successHeading  = "Recommended Career Path:"
	errorTitle      = "Error"
	connectionTitle = "Connection Error"
)

// ResultKind is the state of the result display.
type ResultKind int

const (
	ResultHidden ResultKind = iota
	ResultSuccess
	ResultApplicationError
	ResultTransportError
)

func (k ResultKind) String() string {
	switch k {
	case ResultHidden:
		return "hidden"
	case ResultSuccess:
		return "success"
	case ResultApplicationError:
		return "application_error"
	case ResultTransportError:
		return "transport_error"
	}
	return "unknown"
}

// Result is what the result area shows.
type Result struct {
	Kind       ResultKind
	Title      string
	Prediction string
	Summary    string
	Message    string
	Detail     string
}

// Visible reports whether the result area is shown.
func (r Result) Visible() bool { return r.Kind != ResultHidden }

// Lines renders the result as plain text lines.
func (r Result) Lines() []string {
	switch r.Kind {
	case ResultSuccess:
		return []string{r.Title, successHeading, r.Prediction, r.Summary}
	case ResultApplicationError:
		return []string{r.Title, r.Message}
	case ResultTransportError:
		return []string{r.Title, r.Message, "Error details: " + r.Detail}
	}
	return nil
}

// Markdown renders the result for a markdown renderer.
func (r Result) Markdown() string {
	var sb strings.Builder
	switch r.Kind {
	case ResultSuccess:
		fmt.Fprintf(&sb, "## 🎯 %s\n\n**%s**\n\n### %s\n\n---\n\n%s\n", r.Title, successHeading, r.Prediction, r.Summary)
	case ResultApplicationError:
		fmt.Fprintf(&sb, "## ❌ %s\n\n%s\n", r.Title, r.Message)
	case ResultTransportError:
		fmt.Fprintf(&sb, "## ❌ %s\n\n%s\n\n*Error details: %s*\n", r.Title, r.Message, r.Detail)
	}
	return sb.String()
}

// Outcome is how the exchange settled: a response, or a transport failure.
type Outcome struct {
	Response *predict.Response
	Err      error
}

func render(req predict.Request, out Outcome) Result {
	if out.Err != nil || out.Response == nil {
		detail := "no response"
		if out.Err != nil {
			detail = out.Err.Error()
		}
		return Result{
			Kind:    ResultTransportError,
			Title:   connectionTitle,
			Message: ConnectionMessage,
			Detail:  detail,
		}
	}
	if out.Response.Success {
		return Result{
			Kind:       ResultSuccess,
			Title:      successTitle,
			Prediction: out.Response.PredictionText(),
			Summary: fmt.Sprintf("Based on your soft skills (%d/10), and technical expertise in %s.",
				req.SoftSkillsRating, req.TechnicalSkills),
		}
	}
	msg := out.Response.ErrorText()
	if msg == "" {
		msg = DefaultApplicationError
	}
	return Result{Kind: ResultApplicationError, Title: errorTitle, Message: msg}
}
