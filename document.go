package ho

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Document is the document-mode input structure: paths keyed by URL path,
// each mapping HTTP methods to operations.
type Document map[string]PathOperations

// PathOperations maps an HTTP method (any casing) to its operation entry.
type PathOperations map[string]DocOperation

// DocOperation is one (path, method) entry of a Document.
type DocOperation struct {
	Description string          `yaml:"description" json:"description,omitempty"`
	Parameters  []DocParameter  `yaml:"parameters" json:"parameters,omitempty"`
	RequestBody *DocRequestBody `yaml:"requestBody" json:"requestBody,omitempty"`
}

// DocParameter declares one parameter of a document-mode operation.
type DocParameter struct {
	Name     string `yaml:"name" json:"name" validate:"required"`
	In       string `yaml:"in" json:"in" validate:"required,oneof=path query body"`
	Required bool   `yaml:"required" json:"required"`
	Default  any    `yaml:"default" json:"default,omitempty"`
	Type     string `yaml:"type" json:"type,omitempty" validate:"omitempty,oneof=string number integer boolean any"`
}

// DocRequestBody is an optional request body schema hint.
type DocRequestBody struct {
	ContentType string         `yaml:"contentType" json:"contentType,omitempty"`
	Schema      map[string]any `yaml:"schema" json:"schema,omitempty"`
}

var validate = validator.New()

// ParseDocument unmarshals the native YAML (or JSON, which YAML accepts)
// document format. Shape validation happens per entry during synthesis,
// not here.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// validateShape checks a document entry's parameter list against the
// minimal required shape, wrapping failures with the offending path and
// method.
func (op DocOperation) validateShape(path, method string) error {
	for i, p := range op.Parameters {
		if err := validate.Struct(p); err != nil {
			return &SpecValidationError{
				Path:   path,
				Method: method,
				Reason: fmt.Sprintf("parameter %d: %s", i, formatFieldErrors(err)),
				Err:    err,
			}
		}
	}
	return nil
}

// formatFieldErrors flattens validator failures into a short message.
func formatFieldErrors(err error) string {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		switch ve.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(ve.Field())))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", strings.ToLower(ve.Field()), ve.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(ve.Field()), ve.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
