package main

import (
	"fmt"
	"log/slog"

	fv "github.com/Gobd/formvalidation"
	"github.com/Gobd/formvalidation/internal/form"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// app is the state shared by the subcommands.
type app struct {
	logLevel string
	logger   *log.Logger
	opts     fv.Options
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "formcheck",
		Short: "Check form documents against their validation rules",
		Long: `formcheck loads a YAML form document, attaches the rules of every field
and reports which fields are valid.

Class names come from FORMVALIDATION_VALID_CLASS and
FORMVALIDATION_ERROR_CLASS, or a .env file in the working directory.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.init(cmd) },
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newCheckCommand(a))
	root.AddCommand(newSchemaCommand(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	level, err := log.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "formcheck",
		Level:  level,
	})
	fv.SetLogger(slog.New(a.logger))

	a.opts, err = fv.LoadOptions()
	return err
}

// bind loads the document at path and binds it with the default registry.
func (a *app) bind(path string) (*form.Form, error) {
	doc, err := form.Load(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded form", "file", path, "name", doc.Name, "fields", len(doc.Fields))
	return doc.Bind(fv.Default(), a.opts)
}
