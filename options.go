package formvalidation

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Options configures the class names binding adapters toggle.
type Options struct {
	// ValidClass marks an element whose holder passed.
	ValidClass string `env:"VALID_CLASS" envDefault:"valid" yaml:"validClass"`
	// ErrorClass marks an element whose holder failed.
	ErrorClass string `env:"ERROR_CLASS" envDefault:"error" yaml:"errorClass"`
}

// DefaultOptions returns the "valid" and "error" class names.
func DefaultOptions() Options {
	return Options{ValidClass: "valid", ErrorClass: "error"}
}

var dotenvLoaded sync.Once

// LoadOptions reads Options from FORMVALIDATION_VALID_CLASS and
// FORMVALIDATION_ERROR_CLASS, loading a .env file from the working
// directory first if there is one.
func LoadOptions() (Options, error) {
	dotenvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var o Options
	if err := env.ParseWithOptions(&o, env.Options{Prefix: "FORMVALIDATION_"}); err != nil {
		return DefaultOptions(), fmt.Errorf("load options: %w", err)
	}
	return o.WithDefaults(), nil
}

// WithDefaults returns o with empty class names set to their defaults.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.ValidClass == "" {
		o.ValidClass = d.ValidClass
	}
	if o.ErrorClass == "" {
		o.ErrorClass = d.ErrorClass
	}
	return o
}
