package ho

// OperationDescriptor is the normalized, immutable model of one
// (method, path) endpoint: its parameters, static headers, and hooks.
// Descriptors are built by the synthesizer and never mutated afterwards;
// accessors return copies of internal slices.
type OperationDescriptor struct {
	method      string
	baseURL     string
	rawTemplate string
	description string

	// pathTokens and queryLiterals/queryOrder drive request assembly:
	// the path is rebuilt token by token, the query starts with the
	// fixed literal pairs and then emits parameters in declaration
	// order.
	pathTokens    []pathToken
	queryLiterals []queryPair
	queryOrder    []string

	// params is ordered required-first, preserving declaration order
	// within each group.
	params []ParameterSpec

	headers      map[string]string
	egress       EgressHook
	errorHook    ErrorHook
	omitDefaults bool
}

// Method returns the HTTP method, upper-cased.
func (d *OperationDescriptor) Method() string { return d.method }

// PathTemplate returns the original template or document path string.
func (d *OperationDescriptor) PathTemplate() string { return d.rawTemplate }

// BaseURL returns the base URL the path is resolved against.
func (d *OperationDescriptor) BaseURL() string { return d.baseURL }

// Description returns the human-readable operation description.
func (d *OperationDescriptor) Description() string { return d.description }

// Params returns a copy of the parameter specs, required-first.
func (d *OperationDescriptor) Params() []ParameterSpec {
	out := make([]ParameterSpec, len(d.params))
	copy(out, d.params)
	return out
}

// Headers returns a copy of the static custom headers.
func (d *OperationDescriptor) Headers() map[string]string {
	out := make(map[string]string, len(d.headers))
	for k, v := range d.headers {
		out[k] = v
	}
	return out
}

// lookup finds a parameter spec by name.
func (d *OperationDescriptor) lookup(name string) (*ParameterSpec, bool) {
	for i := range d.params {
		if d.params[i].Name == name {
			return &d.params[i], true
		}
	}
	return nil, false
}
