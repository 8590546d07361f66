// Package markup reads the widget declarations of the predictor page.
//
// The page is plain HTML. Dropdowns are `.dropdown` containers holding a
// `.dropdown-btn` trigger (data-field, text = placeholder) and
// `.dropdown-content a` options (data-value, text = label). The page must also
// declare input#softSkillsRating, a `.submit-btn` and a #resultPanel.
package markup

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"pathfinder/internal/form"
	"pathfinder/internal/logging"

	"golang.org/x/net/html"
)

//go:embed pages/predictor.html
var defaultPage []byte

const (
	RatingInputID   = "softSkillsRating"
	ResultPanelID   = "resultPanel"
	defaultRating   = "Soft Skills Rating"
	defaultSubmit   = "Get Career Prediction"
	classDropdown   = "dropdown"
	classTrigger    = "dropdown-btn"
	classContent    = "dropdown-content"
	classSubmit     = "submit-btn"
	attrField       = "data-field"
	attrOptionValue = "data-value"
)

// ErrMissingElement is returned when a required element is not declared.
var ErrMissingElement = errors.New("missing element")

// Page is what a form session is built from.
type Page struct {
	Title       string
	Layout      form.Layout
	RatingLabel string
	SubmitLabel string
}

// Default parses the embedded predictor page.
func Default() (*Page, error) {
	return Parse(bytes.NewReader(defaultPage))
}

// Load parses the page at path, or the embedded page when path is empty.
func Load(path string) (*Page, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	page, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return page, nil
}

// Parse reads widget declarations from an HTML document.
func Parse(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	page := &Page{RatingLabel: defaultRating}
	var (
		haveRating, haveSubmit, haveResult bool
		parseErr                           error
	)

	walk(doc, func(n *html.Node) bool {
		if parseErr != nil {
			return false
		}
		switch {
		case n.Data == "title" && page.Title == "":
			page.Title = textOf(n)
		case hasClass(n, classDropdown):
			spec, err := parseDropdown(n)
			if err != nil {
				parseErr = err
				return false
			}
			page.Layout.Dropdowns = append(page.Layout.Dropdowns, spec)
			return false
		case n.Data == "input" && attr(n, "id") == RatingInputID:
			haveRating = true
		case n.Data == "label" && attr(n, "for") == RatingInputID:
			if t := textOf(n); t != "" {
				page.RatingLabel = t
			}
		case hasClass(n, classSubmit) && !haveSubmit:
			haveSubmit = true
			page.SubmitLabel = textOf(n)
		case attr(n, "id") == ResultPanelID:
			haveResult = true
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	switch {
	case !haveRating:
		return nil, fmt.Errorf("%w: input#%s", ErrMissingElement, RatingInputID)
	case !haveSubmit:
		return nil, fmt.Errorf("%w: .%s", ErrMissingElement, classSubmit)
	case !haveResult:
		return nil, fmt.Errorf("%w: #%s", ErrMissingElement, ResultPanelID)
	case len(page.Layout.Dropdowns) == 0:
		return nil, fmt.Errorf("%w: .%s", ErrMissingElement, classDropdown)
	}
	if page.SubmitLabel == "" {
		page.SubmitLabel = defaultSubmit
	}

	// Same checks the session will apply, surfaced at load time.
	if _, err := form.NewDropdowns(page.Layout.Dropdowns, form.NewSelections()); err != nil {
		return nil, err
	}
	if err := requireDropdowns(page.Layout.Dropdowns); err != nil {
		return nil, err
	}

	logging.FormDebug("Parsed page %q: %d dropdowns", page.Title, len(page.Layout.Dropdowns))
	return page, nil
}

// requireDropdowns checks that every choice field the request carries has a
// dropdown. The rating is declared by its own input.
func requireDropdowns(specs []form.DropdownSpec) error {
	declared := make(map[form.Field]bool, len(specs))
	for _, spec := range specs {
		declared[spec.Field] = true
	}
	for _, f := range form.Fields {
		if f == form.FieldSoftSkillsRating || declared[f] {
			continue
		}
		return fmt.Errorf("%w: .%s for %s", ErrMissingElement, classDropdown, f)
	}
	return nil
}

func parseDropdown(n *html.Node) (form.DropdownSpec, error) {
	var spec form.DropdownSpec
	trigger := find(n, func(c *html.Node) bool { return hasClass(c, classTrigger) })
	if trigger == nil {
		return spec, fmt.Errorf("%w: .%s inside .%s", ErrMissingElement, classTrigger, classDropdown)
	}
	field, ok := attrOK(trigger, attrField)
	if !ok || field == "" {
		return spec, fmt.Errorf("%w: %s on .%s", ErrMissingElement, attrField, classTrigger)
	}
	spec.Field = form.Field(field)
	spec.Placeholder = textOf(trigger)

	content := find(n, func(c *html.Node) bool { return hasClass(c, classContent) })
	if content == nil {
		return spec, fmt.Errorf("%w: .%s for %s", ErrMissingElement, classContent, field)
	}
	var optErr error
	walk(content, func(c *html.Node) bool {
		if c.Type != html.ElementNode || c.Data != "a" || optErr != nil {
			return optErr == nil
		}
		value, ok := attrOK(c, attrOptionValue)
		if !ok {
			optErr = fmt.Errorf("%w: %s on option %q of %s", ErrMissingElement, attrOptionValue, textOf(c), field)
			return false
		}
		spec.Options = append(spec.Options, form.Option{Label: textOf(c), Value: value})
		return false
	})
	return spec, optErr
}

// walk visits element nodes depth first. Returning false skips the children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if n.Type == html.ElementNode && !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if c != n && match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			sb.WriteString(" ")
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			collect(k)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
