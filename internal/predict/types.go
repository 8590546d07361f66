package predict

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Request is the body of POST /predict. The JSON names are fixed by the
// endpoint and must not change.
type Request struct {
	SoftSkillsRating int    `json:"SoftSkillsRating" validate:"min=1,max=10"`
	Major            string `json:"Major" validate:"required"`
	TechnicalSkills  string `json:"Technical Skills" validate:"required"`
	SoftSkills       string `json:"Soft Skills" validate:"required"`
	CareerInterest   string `json:"Career Interest" validate:"required"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks the request against the endpoint's field constraints.
func (r Request) Validate() error {
	if err := requestValidator().Struct(r); err != nil {
		return &ValidationError{Fields: parseValidationErrors(err)}
	}
	return nil
}

// Response is the body returned by the endpoint. Prediction and Error are
// kept raw so a non-string value still decodes.
type Response struct {
	Success    bool            `json:"success"`
	Prediction json.RawMessage `json:"prediction,omitempty"`
	Error      json.RawMessage `json:"error,omitempty"`
}

// PredictionText renders the prediction for display. String predictions are
// unquoted; any other JSON value is shown as its JSON text.
func (r Response) PredictionText() string { return rawText(r.Prediction) }

// ErrorText renders the server's error message the same way. Empty when the
// endpoint sent none.
func (r Response) ErrorText() string { return rawText(r.Error) }

func rawText(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}
