// Package openapi publishes the schemas of validated view models as OpenAPI
// 3 documents.
//
// Use [DocBase] to create a base document and register endpoints with [Get]
// or [Post]. Request and response bodies are view models, described by
// [formvalidation.NewSchemaRefForValue], or ready-made schemas:
//
//	doc := openapi.DocBase("signup", "Signup form", "1.0")
//	openapi.Post(doc, "/forms/signup", "submitSignup", openapi.Endpoint{
//	    Request: &signup,
//	})
package openapi
