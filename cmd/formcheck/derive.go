package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/openapi"
	"github.com/goliatone/go-formcheck/pkg/ruleset"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func newDeriveCmd(a *app) *cobra.Command {
	var (
		list      bool
		remote    bool
		timeout   time.Duration
		formID    string
		externals bool
	)

	cmd := &cobra.Command{
		Use:   "derive LOCATION [OPERATION]",
		Short: "Derive a rule document from an OpenAPI request schema",
		Long: `Derive reads an OpenAPI 3 document from a path (or an http(s) URL with
--remote) and prints a YAML rule document for the request body of OPERATION.
With --list it prints the operations instead.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var loaderOpts []openapi.LoaderOption
			if remote {
				loaderOpts = append(loaderOpts, openapi.WithHTTPFallback(timeout))
			}
			raw, err := openapi.Load(cmd.Context(), args[0], loaderOpts...)
			if err != nil {
				return err
			}

			deriveOpts := []openapi.Option{openapi.WithExternalRefs(externals)}
			ops, err := openapi.Operations(cmd.Context(), raw, deriveOpts...)
			if err != nil {
				return err
			}
			if list || len(args) < 2 {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "OPERATION\tMETHOD\tPATH\tSUMMARY")
				for _, op := range ops {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", op.ID, op.Method, op.Path, op.Summary)
				}
				return w.Flush()
			}

			opID := args[1]
			specs, err := openapi.Derive(cmd.Context(), raw, opID, deriveOpts...)
			if err != nil {
				return err
			}
			if _, err := validation.Compile(nil, specs); err != nil {
				return fmt.Errorf("derive: %s: %w", opID, err)
			}

			form := ruleset.FormDocument{Rules: specs}
			for _, op := range ops {
				if op.ID == opID {
					form.Title = op.Summary
					form.Endpoint = op.Path
					form.Method = strings.ToUpper(op.Method)
					break
				}
			}
			id := formID
			if id == "" {
				id = opID
			}
			a.log.Debugw("rules derived", "operation", opID, "form", id, "rules", len(specs))

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(ruleset.Document{Forms: map[string]ruleset.FormDocument{id: form}}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list operations instead of deriving rules")
	cmd.Flags().BoolVar(&remote, "remote", false, "allow http(s) locations")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout for remote documents")
	cmd.Flags().StringVar(&formID, "form", "", "form id of the generated document (defaults to the operation id)")
	cmd.Flags().BoolVar(&externals, "external-refs", false, "resolve external $ref files")
	return cmd
}
