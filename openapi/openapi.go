package openapi

import (
	"errors"
	"net/http"

	fv "github.com/Gobd/formvalidation"
	"github.com/getkin/kin-openapi/openapi3"
)

const jsonContent = "application/json"

// Endpoint describes a single API operation for [Get] and [Post].
type Endpoint struct {
	Summary     string
	Description string
	Request     any // request body: view model, *openapi3.Schema or *openapi3.SchemaRef
	Response    any // 200 response body, same kinds as Request
}

// NewSchemaRefForValue returns v when it already is a schema and otherwise
// describes v as a view model.
func NewSchemaRefForValue(v any) (*openapi3.SchemaRef, error) {
	switch s := v.(type) {
	case *openapi3.SchemaRef:
		return s, nil
	case *openapi3.Schema:
		return openapi3.NewSchemaRef("", s), nil
	}
	return fv.NewSchemaRefForValue(v)
}

// NewRequest builds a JSON request body from the given values. More than one
// value gives a oneOf schema.
func NewRequest(vs ...any) (*openapi3.RequestBodyRef, error) {
	schema, err := bodySchema(vs)
	if err != nil {
		return nil, err
	}
	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithContent(openapi3.NewContentWithSchemaRef(schema, []string{jsonContent}))
	return &openapi3.RequestBodyRef{Value: body}, nil
}

// NewResponse builds a response with a JSON body from the given values.
func NewResponse(desc string, vs ...any) (*openapi3.ResponseRef, error) {
	schema, err := bodySchema(vs)
	if err != nil {
		return nil, err
	}
	resp := openapi3.NewResponse().
		WithDescription(desc).
		WithContent(openapi3.NewContentWithSchemaRef(schema, []string{jsonContent}))
	return &openapi3.ResponseRef{Value: resp}, nil
}

func bodySchema(vs []any) (*openapi3.SchemaRef, error) {
	if len(vs) == 0 {
		return nil, errors.New("no values given")
	}
	refs := make(openapi3.SchemaRefs, 0, len(vs))
	for _, v := range vs {
		ref, err := NewSchemaRefForValue(v)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if len(refs) == 1 {
		return refs[0], nil
	}
	return openapi3.NewSchemaRef("", &openapi3.Schema{OneOf: refs}), nil
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}
}

// AddPath adds an operation to the document at the given path and method.
func AddPath(path, method string, doc *openapi3.T, op *openapi3.Operation) {
	p := doc.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}
	p.SetOperation(method, op)
	doc.Paths.Set(path, p)
}

func addEndpoint(doc *openapi3.T, path, method, operationID string, ep Endpoint) error {
	op := openapi3.NewOperation()
	op.OperationID = operationID
	op.Summary = ep.Summary
	op.Description = ep.Description

	if ep.Request != nil {
		body, err := NewRequest(ep.Request)
		if err != nil {
			return err
		}
		op.RequestBody = body
	}

	op.Responses = openapi3.NewResponses()
	if ep.Response != nil {
		resp, err := NewResponse("OK", ep.Response)
		if err != nil {
			return err
		}
		op.Responses = openapi3.NewResponses(openapi3.WithStatus(http.StatusOK, resp))
	}

	AddPath(path, method, doc, op)
	return nil
}

// Get registers a GET endpoint on doc.
func Get(doc *openapi3.T, path, operationID string, ep Endpoint) error {
	return addEndpoint(doc, path, http.MethodGet, operationID, ep)
}

// Post registers a POST endpoint on doc.
func Post(doc *openapi3.T, path, operationID string, ep Endpoint) error {
	return addEndpoint(doc, path, http.MethodPost, operationID, ep)
}
