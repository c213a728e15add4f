package main

import (
	"fmt"

	"github.com/Gobd/formvalidation/openapi"
	"github.com/spf13/cobra"
)

func newSchemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file>",
		Short: "Print an OpenAPI document for a form",
		Long: `Print an OpenAPI 3 document, as JSON, with a POST /forms/<name> operation
whose request and response bodies are the schema of the form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.bind(args[0])
			if err != nil {
				return err
			}
			ref, err := f.Schema()
			if err != nil {
				return err
			}

			doc := openapi.DocBase(f.Name(), fmt.Sprintf("Submission of the %s form.", f.Name()), version)
			err = openapi.Post(doc, "/forms/"+f.Name(), f.Name(), openapi.Endpoint{
				Summary:  "Submit " + f.Name(),
				Request:  ref,
				Response: ref,
			})
			if err != nil {
				return err
			}
			if err := doc.Validate(cmd.Context()); err != nil {
				return fmt.Errorf("invalid document: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
}
