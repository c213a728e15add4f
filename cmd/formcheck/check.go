package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Gobd/formvalidation/internal/form"
	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	var (
		sets   []string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate every field of a form document",
		Long: `Validate every field of a form document and print one line per field:
its name, its class and its first error message.

Values given with --set replace the document values before checking.
List fields take comma separated items. The exit status is 1 when any field
is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.bind(args[0])
			if err != nil {
				return err
			}
			for _, s := range sets {
				name, value, ok := strings.Cut(s, "=")
				if !ok {
					return fmt.Errorf("--set %q: want name=value", s)
				}
				if err := f.Set(name, value); err != nil {
					return fmt.Errorf("--set %s: %w", name, err)
				}
			}

			results := f.Check()
			if asJSON {
				err = writeJSON(cmd.OutOrStdout(), results)
			} else {
				err = writeResults(cmd.OutOrStdout(), results)
			}
			if err != nil {
				return err
			}

			invalid := 0
			for _, r := range results {
				if !r.Valid {
					invalid++
				}
			}
			if invalid > 0 {
				a.logger.Info("form is invalid", "form", f.Name(), "invalid", invalid)
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "set a field value before checking (name=value, repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the results as JSON")
	return cmd
}

func writeResults(w io.Writer, results []form.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range results {
		msg := ""
		if len(r.Errors) > 0 {
			msg = r.Errors[0]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Field, r.Class, msg)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
