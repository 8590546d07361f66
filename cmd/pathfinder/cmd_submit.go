package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"pathfinder/internal/form"
	"pathfinder/internal/logging"
	"pathfinder/internal/submit"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// errPredictionFailed marks a submission that settled on an error result.
var errPredictionFailed = errors.New("prediction failed")

type submitFlags struct {
	rating    string
	major     string
	technical string
	soft      string
	interest  string
	markdown  bool
}

func newSubmitCmd(c *cli) *cobra.Command {
	f := &submitFlags{}
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the form without the interactive view",
		Long: `Fills in the form from flags and runs one submission.

Dropdown flags accept an option value or its label (case-insensitive).

Example:
  pathfinder submit --rating 7 --major CS --technical Python \
    --soft Communication --interest Data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSubmit(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.rating, "rating", "", "Soft skills rating (1-10)")
	cmd.Flags().StringVar(&f.major, "major", "", "Major")
	cmd.Flags().StringVar(&f.technical, "technical", "", "Technical skills")
	cmd.Flags().StringVar(&f.soft, "soft", "", "Soft skills")
	cmd.Flags().StringVar(&f.interest, "interest", "", "Career interest")
	cmd.Flags().BoolVar(&f.markdown, "markdown", false, "Render the result with glamour")
	return cmd
}

func (c *cli) runSubmit(cmd *cobra.Command, flags *submitFlags) error {
	page, err := c.loadPage()
	if err != nil {
		return err
	}
	fm, err := form.New(page.Layout)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("rating") {
		fm.Rating.SetValue(flags.rating)
	}
	choices := []struct {
		field form.Field
		value string
	}{
		{form.FieldMajor, flags.major},
		{form.FieldTechnicalSkills, flags.technical},
		{form.FieldSoftSkills, flags.soft},
		{form.FieldCareerInterest, flags.interest},
	}
	for _, ch := range choices {
		if ch.value == "" {
			continue
		}
		if err := fm.Dropdowns.Choose(ch.field, ch.value); err != nil {
			return fmt.Errorf("%s: %w", ch.field, err)
		}
	}

	stderr := cmd.ErrOrStderr()
	notify := submit.NotifierFunc(func(msg string) { fmt.Fprintln(stderr, msg) })
	wf := submit.New(fm, c.newClient(), notify, submit.WithIdleLabel(page.SubmitLabel))

	res, err := wf.Submit(cmd.Context())
	if err != nil {
		return err
	}
	if err := printResult(cmd.OutOrStdout(), res, flags.markdown); err != nil {
		return err
	}
	if res.Kind != submit.ResultSuccess {
		logging.SubmitWarn("Headless submission settled: %s", res.Kind)
		return fmt.Errorf("%w: %s", errPredictionFailed, res.Kind)
	}
	return nil
}

func printResult(w io.Writer, res submit.Result, markdown bool) error {
	if markdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := r.Render(res.Markdown())
		if err != nil {
			return fmt.Errorf("failed to render result: %w", err)
		}
		_, err = fmt.Fprint(w, out)
		return err
	}
	_, err := fmt.Fprintln(w, strings.Join(res.Lines(), "\n"))
	return err
}
