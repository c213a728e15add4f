// Package form reads declarative form documents and binds their fields to
// validated observables.
package form

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	fv "github.com/Gobd/formvalidation"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is wrapped by every structural problem of a document.
var ErrInvalidDocument = errors.New("invalid form document")

// Document is a form as written in YAML:
//
//	name: signup
//	fields:
//	  - name: email
//	    rules: {required: true, email: true}
//	  - name: age
//	    value: "3"
//	    attributes: {min: "5", data-val-min: "At least {0}"}
//	  - name: tags
//	    items: ["a", ""]
//	    rules: {required: true}
type Document struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Field is one input of a Document. A field with items is a list whose rules
// apply to every item.
type Field struct {
	Name       string            `yaml:"name"`
	Value      any               `yaml:"value"`
	Items      []any             `yaml:"items"`
	Rules      *fv.RuleSet       `yaml:"rules"`
	Attributes map[string]string `yaml:"attributes"`
}

// IsList reports whether the field holds items.
func (f *Field) IsList() bool {
	return f.Items != nil
}

// Parse decodes and checks a YAML document.
func Parse(b []byte) (*Document, error) {
	return Decode(bytes.NewReader(b))
}

// Decode reads and checks a YAML document from r. Unknown keys are errors.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := doc.check(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (d *Document) check() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDocument)
	}
	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		switch {
		case f.Name == "":
			return fmt.Errorf("%w: field %d has no name", ErrInvalidDocument, i)
		case seen[f.Name]:
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidDocument, f.Name)
		case f.Value != nil && f.IsList():
			return fmt.Errorf("%w: field %q has both value and items", ErrInvalidDocument, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
