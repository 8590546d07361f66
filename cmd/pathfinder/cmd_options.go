package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOptionsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the choices each dropdown offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := c.loadPage()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, d := range page.Layout.Dropdowns {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s (%s)\n", d.Field, d.Placeholder)
				for _, opt := range d.Options {
					fmt.Fprintf(w, "  %-12s %s\n", opt.Value, opt.Label)
				}
			}
			return nil
		},
	}
}
