package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck/pkg/prompt"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func newFillCmd(a *app) *cobra.Command {
	var (
		from     string
		attempts int
	)

	cmd := &cobra.Command{
		Use:   "fill FORM",
		Short: "Fill a form interactively with live validation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.orch.Rules(args[0], a.cfg.I18n.Locale)
			if err != nil {
				return err
			}

			var initial validation.Values
			if from != "" {
				data, err := readSource(cmd.InOrStdin(), from)
				if err != nil {
					return err
				}
				snap, err := decodeSnapshot(data)
				if err != nil {
					return fmt.Errorf("fill: %s: %w", from, err)
				}
				initial = snap.Values
			}

			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.ErrOrStderr())
			}
			session := prompt.New(
				prompt.WithDriver(driver),
				prompt.WithInitialValues(initial),
				prompt.WithMaxAttempts(attempts),
			)

			values, errs, err := session.Fill(cmd.Context(), rules)
			if err != nil {
				return err
			}
			a.log.Debugw("form filled", "form", args[0], "errors", len(errs))
			if err := writeJSON(cmd.OutOrStdout(), values); err != nil {
				return err
			}
			if !errs.Empty() {
				return fmt.Errorf("%w: %s", errInvalidSnapshot, errs.Error())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "JSON snapshot used as prompt defaults")
	cmd.Flags().IntVar(&attempts, "attempts", 3, "correction rounds before giving up")
	return cmd
}
