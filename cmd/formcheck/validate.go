package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck/pkg/inventory"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

var errInvalidSnapshot = errors.New("snapshot is invalid")

// snapshotFile accepts either a bare values object or a wrapper carrying
// values plus a server error payload.
type snapshotFile struct {
	Values       validation.Values   `json:"values"`
	ServerErrors map[string][]string `json:"serverErrors"`
}

func newValidateCmd(a *app) *cobra.Command {
	var payload bool

	cmd := &cobra.Command{
		Use:   "validate FORM [FILE]",
		Short: "Validate a JSON snapshot against a form",
		Long: `Validate reads a JSON snapshot from FILE (or stdin when FILE is "-" or
missing), prints the result and exits non-zero when the snapshot is invalid.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 2 {
				source = args[1]
			}
			data, err := readSource(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}
			snap, err := decodeSnapshot(data)
			if err != nil {
				return fmt.Errorf("validate: %s: %w", source, err)
			}

			result, err := a.orch.Validate(cmd.Context(), orchestrator.Request{
				FormID:       args[0],
				Values:       snap.Values,
				Locale:       a.cfg.I18n.Locale,
				ServerErrors: snap.ServerErrors,
			})
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("%w: %s has %d error(s)", errInvalidSnapshot, result.FormID, len(result.Errors)+len(result.FormErrors))
			}
			if !payload {
				return nil
			}
			typed, err := inventory.BindForm(result.FormID, snap.Values)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), typed)
		},
	}
	cmd.Flags().BoolVar(&payload, "payload", false, "print the typed payload of a valid snapshot")
	return cmd
}

func readSource(stdin io.Reader, source string) ([]byte, error) {
	if source == "" || source == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(source)
}

func decodeSnapshot(data []byte) (snapshotFile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return snapshotFile{}, err
	}
	values, wrapped := raw["values"].(map[string]any)
	if !wrapped {
		return snapshotFile{Values: raw}, nil
	}
	snap := snapshotFile{Values: values}
	if errs, ok := raw["serverErrors"]; ok {
		encoded, err := json.Marshal(errs)
		if err != nil {
			return snapshotFile{}, err
		}
		if err := json.Unmarshal(encoded, &snap.ServerErrors); err != nil {
			return snapshotFile{}, fmt.Errorf("serverErrors: %w", err)
		}
	}
	return snap, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
