package ho

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoadDocument parses an OpenAPI 3 document (JSON or YAML bytes) and
// converts it to the document-mode structure. The document is not
// validated against the full OpenAPI schema; only the pieces the engine
// consumes are read.
func LoadDocument(data []byte) (Document, error) {
	loader := openapi3.NewLoader()
	t, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	return FromOpenAPI(t)
}

// FromOpenAPI converts a parsed OpenAPI 3 model to a Document. Operation
// parameters map directly; a JSON request body with an object schema is
// flattened into body-location parameters, one per property, required
// per the schema's required list.
func FromOpenAPI(t *openapi3.T) (Document, error) {
	doc := make(Document)
	if t.Paths == nil {
		return doc, nil
	}

	for path, item := range t.Paths.Map() {
		if item == nil {
			continue
		}
		ops := make(PathOperations)
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			entry, err := convertOperation(path, method, op)
			if err != nil {
				return nil, err
			}
			ops[method] = entry
		}
		if len(ops) > 0 {
			doc[path] = ops
		}
	}
	return doc, nil
}

func convertOperation(path, method string, op *openapi3.Operation) (DocOperation, error) {
	entry := DocOperation{Description: op.Description}
	if entry.Description == "" {
		entry.Description = op.Summary
	}

	for _, ref := range op.Parameters {
		p := ref.Value
		if p == nil {
			return DocOperation{}, &SpecValidationError{
				Path:   path,
				Method: method,
				Reason: "unresolved parameter reference",
			}
		}
		entry.Parameters = append(entry.Parameters, DocParameter{
			Name:     p.Name,
			In:       p.In,
			Required: p.Required || p.In == string(LocationPath),
			Default:  schemaDefault(p.Schema),
			Type:     schemaType(p.Schema),
		})
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		body, hint := convertRequestBody(op.RequestBody.Value)
		entry.Parameters = append(entry.Parameters, body...)
		entry.RequestBody = hint
	}
	return entry, nil
}

// convertRequestBody flattens a JSON object request body into body
// parameters, one per schema property.
func convertRequestBody(rb *openapi3.RequestBody) ([]DocParameter, *DocRequestBody) {
	media := rb.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, nil
	}
	schema := media.Schema.Value

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]DocParameter, 0, len(names))
	for _, name := range names {
		params = append(params, DocParameter{
			Name:     name,
			In:       string(LocationBody),
			Required: rb.Required && required[name],
			Default:  schemaDefault(schema.Properties[name]),
			Type:     schemaType(schema.Properties[name]),
		})
	}
	return params, &DocRequestBody{ContentType: "application/json"}
}

// schemaType maps an OpenAPI schema type to a ParamType name. Schemas the
// engine has no scalar mapping for become "any".
func schemaType(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil || ref.Value.Type == nil {
		return string(TypeAny)
	}
	t := ref.Value.Type
	switch {
	case t.Is(openapi3.TypeString):
		return string(TypeString)
	case t.Is(openapi3.TypeInteger):
		return string(TypeInteger)
	case t.Is(openapi3.TypeNumber):
		return string(TypeNumber)
	case t.Is(openapi3.TypeBoolean):
		return string(TypeBoolean)
	default:
		return string(TypeAny)
	}
}

func schemaDefault(ref *openapi3.SchemaRef) any {
	if ref == nil || ref.Value == nil {
		return nil
	}
	return ref.Value.Default
}
