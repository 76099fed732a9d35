package ho

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// canonicalMethod upper-cases m and checks it against the standard verbs.
// An empty method defaults to GET.
func canonicalMethod(m string) (string, bool) {
	if m == "" {
		return http.MethodGet, true
	}
	upper := strings.ToUpper(m)
	return upper, knownMethods[upper]
}

// methodCarriesBody reports whether body-location parameters are
// serialized into a JSON request body for this verb.
func methodCarriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// synthesizeTemplate builds an OperationDescriptor from a parsed template
// and compile options (single-route mode).
func synthesizeTemplate(pt *parsedTemplate, cfg *config) (*OperationDescriptor, error) {
	method, ok := canonicalMethod(cfg.method)
	if !ok {
		return nil, fmt.Errorf("unsupported method %q", cfg.method)
	}

	params := make([]ParameterSpec, len(pt.params))
	copy(params, pt.params)

	if err := applyTypes(params, cfg.paramTypes); err != nil {
		return nil, err
	}
	if err := coerceDefaults(params); err != nil {
		return nil, err
	}

	d := &OperationDescriptor{
		method:       method,
		rawTemplate:  pt.raw,
		description:  cfg.description,
		pathTokens:   pt.path,
		params:       normalizeParams(params),
		headers:      cfg.headers,
		egress:       cfg.egress,
		errorHook:    cfg.errorHook,
		omitDefaults: cfg.omitDefaults,
	}
	for _, qp := range pt.query {
		if qp.param == "" {
			d.queryLiterals = append(d.queryLiterals, qp)
		} else {
			d.queryOrder = append(d.queryOrder, qp.param)
		}
	}
	return d, nil
}

// synthesizeDocEntry builds an OperationDescriptor from one (path, method)
// entry of a Document (document mode). Placeholders in the path that have
// no matching parameter entry become required untyped path parameters.
func synthesizeDocEntry(path, method string, op DocOperation, baseURL string, cfg *config) (*OperationDescriptor, error) {
	canonical, ok := canonicalMethod(method)
	if !ok {
		return nil, &SpecValidationError{Path: path, Method: method, Reason: fmt.Sprintf("unsupported method %q", method)}
	}
	if strings.ContainsRune(path, '?') {
		return nil, &SpecValidationError{Path: path, Method: canonical, Reason: "path must not contain a query string"}
	}

	pt, err := parseTemplate(path)
	if err != nil {
		return nil, &SpecValidationError{Path: path, Method: canonical, Reason: "invalid path template", Err: err}
	}
	if err := op.validateShape(path, canonical); err != nil {
		return nil, err
	}

	// Start from the placeholder-derived path params, then overlay and
	// extend with the declared parameter list.
	params := make([]ParameterSpec, len(pt.params))
	copy(params, pt.params)
	index := make(map[string]int, len(params))
	for i, p := range params {
		index[p.Name] = i
	}

	var queryOrder []string
	for _, dp := range op.Parameters {
		declared := ParamType(dp.Type)
		if dp.Type == "" {
			declared = TypeAny
		}

		switch Location(dp.In) {
		case LocationPath:
			i, ok := index[dp.Name]
			if !ok {
				return nil, &SpecValidationError{
					Path:   path,
					Method: canonical,
					Reason: fmt.Sprintf("path parameter %q has no placeholder in the path", dp.Name),
				}
			}
			params[i].Type = declared
			if dp.Default != nil {
				params[i].Required = false
				params[i].Default = dp.Default
			}
		case LocationQuery, LocationBody:
			if _, dup := index[dp.Name]; dup {
				return nil, &SpecValidationError{
					Path:   path,
					Method: canonical,
					Reason: fmt.Sprintf("duplicate parameter %q", dp.Name),
				}
			}
			spec := ParameterSpec{
				Name:     dp.Name,
				Key:      dp.Name,
				Location: Location(dp.In),
				Type:     declared,
				Required: dp.Required,
			}
			if !dp.Required {
				spec.Default = dp.Default
			}
			index[dp.Name] = len(params)
			params = append(params, spec)
			if spec.Location == LocationQuery {
				queryOrder = append(queryOrder, spec.Name)
			}
		}
	}

	if err := coerceDefaults(params); err != nil {
		return nil, &SpecValidationError{Path: path, Method: canonical, Reason: "invalid default", Err: err}
	}

	headers := cfg.headers
	if op.RequestBody != nil && op.RequestBody.ContentType != "" {
		headers = make(map[string]string, len(cfg.headers)+1)
		for k, v := range cfg.headers {
			headers[k] = v
		}
		if _, set := headers["Content-Type"]; !set {
			headers["Content-Type"] = op.RequestBody.ContentType
		}
	}

	return &OperationDescriptor{
		method:       canonical,
		baseURL:      strings.TrimRight(baseURL, "/"),
		rawTemplate:  path,
		description:  op.Description,
		pathTokens:   pt.path,
		queryOrder:   queryOrder,
		params:       normalizeParams(params),
		headers:      headers,
		egress:       cfg.egress,
		errorHook:    cfg.errorHook,
		omitDefaults: cfg.omitDefaults,
	}, nil
}

// applyTypes overlays declared types from compile options onto parsed
// parameters. Naming a parameter the template does not declare is an
// error, never silently ignored.
func applyTypes(params []ParameterSpec, types map[string]ParamType) error {
	if len(types) == 0 {
		return nil
	}
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := types[name]
		if !t.valid() {
			return fmt.Errorf("parameter %q: unknown type %q", name, t)
		}
		found := false
		for i := range params {
			if params[i].Name == name {
				params[i].Type = t
				found = true
				break
			}
		}
		if !found {
			return &UnknownParameterError{Name: name}
		}
	}
	return nil
}

// coerceDefaults converts raw default values to their declared types so
// type mismatches surface at compile time, not on first call.
func coerceDefaults(params []ParameterSpec) error {
	for i := range params {
		p := &params[i]
		if p.Required || p.Default == nil {
			continue
		}
		v, err := coerce(p.Name, p.Type, p.Default)
		if err != nil {
			return err
		}
		p.Default = v
	}
	return nil
}

// normalizeParams orders parameters required-first, preserving declaration
// order within each group.
func normalizeParams(params []ParameterSpec) []ParameterSpec {
	out := make([]ParameterSpec, 0, len(params))
	for _, p := range params {
		if p.Required {
			out = append(out, p)
		}
	}
	for _, p := range params {
		if !p.Required {
			out = append(out, p)
		}
	}
	return out
}
