package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFormsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the forms that can be validated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tENDPOINT\tRULES")
			for _, id := range a.orch.Forms() {
				form, _ := a.orch.Form(id)
				endpoint := form.Endpoint
				if form.Method != "" && endpoint != "" {
					endpoint = form.Method + " " + endpoint
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", id, form.Title, endpoint, len(form.Rules))
			}
			return w.Flush()
		},
	}
}
