// Command pathfinder is a terminal client for the career prediction service.
// Run without arguments to fill in the form interactively.
package main

import (
	"fmt"
	"io"
	"os"

	"pathfinder/internal/config"
	"pathfinder/internal/logging"
	"pathfinder/internal/markup"
	"pathfinder/internal/predict"

	"github.com/spf13/cobra"
)

// cli holds the state shared by the root command and its subcommands.
type cli struct {
	configPath string
	endpoint   string
	pagePath   string
	verbose    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "pathfinder",
		Short: "Career path predictor",
		Long: `pathfinder collects a major, a soft skills rating, technical skills,
soft skills and a career interest, then asks the prediction service for a
recommended career path.

Run without arguments to start the interactive form.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runForm(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultConfigPath(), "Path to config file")
	root.PersistentFlags().StringVarP(&c.endpoint, "endpoint", "e", "", "Prediction service base URL (overrides config)")
	root.PersistentFlags().StringVar(&c.pagePath, "page", "", "HTML page declaring the form widgets")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newSubmitCmd(c), newOptionsCmd(c), newInitCmd(c))
	return root
}

// setup loads config, applies flag overrides and starts logging.
func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.endpoint != "" {
		cfg.Endpoint.BaseURL = c.endpoint
	}
	if c.pagePath != "" {
		cfg.Form.Page = c.pagePath
	}
	if c.verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.Initialize(cfg.Logging.ToLogging()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	c.cfg = cfg
	logging.Boot("Config loaded from %s, endpoint %s", c.configPath, cfg.PredictURL())
	return nil
}

func (c *cli) loadPage() (*markup.Page, error) {
	page, err := markup.Load(c.cfg.Form.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to load form page: %w", err)
	}
	return page, nil
}

func (c *cli) newClient() *predict.Client {
	return predict.NewClient(c.cfg.PredictURL(),
		predict.WithUserAgent(c.cfg.Endpoint.UserAgent),
		predict.WithTimeout(c.cfg.GetTimeout()),
	)
}

// run executes the command line with args. Log files are closed on every
// exit path; cobra skips post-run hooks when a command fails.
func run(args []string, stdout, stderr io.Writer) error {
	defer logging.CloseAll()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
