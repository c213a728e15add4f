// Command formcheck validates YAML form documents and publishes their
// schemas.
//
//	formcheck check signup.yaml --set email=ada@example.com --set age=7
//	formcheck schema signup.yaml > signup.openapi.json
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// version is set via -ldflags.
var version = "dev"

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			if exit.err != nil {
				fmt.Fprintln(os.Stderr, "formcheck:", exit.err)
			}
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "formcheck:", err)
		os.Exit(2)
	}
}

// exitError ends the process with code without forcing os.Exit in RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}
