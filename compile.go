package ho

import (
	"context"
	"sort"
)

// Args is the named-argument set passed to a compiled function's Call.
type Args map[string]any

// omitted is the sentinel type behind Omit.
type omitted struct{}

// Omit, passed as an argument value, drops an optional parameter from the
// request entirely instead of sending its default.
var Omit = omitted{}

// CompiledFunction is a callable compiled from one OperationDescriptor.
// It is stateless between calls and safe for concurrent use as long as
// its transport is.
type CompiledFunction struct {
	desc      *OperationDescriptor
	transport Transport
}

// CompileTemplate parses a URL template and compiles it into a callable
// (single-route mode):
//
//	fn, err := ho.CompileTemplate(
//	    "https://restcountries.com/v3.1/name/{country_name}?fullText={full_text:false}",
//	    ho.WithParamTypes(map[string]ho.ParamType{"full_text": ho.TypeBoolean}),
//	)
//	out, err := fn.Call(ctx, ho.Args{"country_name": "germany"})
func CompileTemplate(tmpl string, opts ...Option) (*CompiledFunction, error) {
	cfg := newConfig(opts)
	pt, err := parseTemplate(tmpl)
	if err != nil {
		return nil, err
	}
	desc, err := synthesizeTemplate(pt, cfg)
	if err != nil {
		return nil, err
	}
	return compile(desc, cfg), nil
}

// compile pairs a descriptor with its transport chain. The descriptor is
// immutable from here on.
func compile(desc *OperationDescriptor, cfg *config) *CompiledFunction {
	t := cfg.transport
	if t == nil {
		t = DefaultTransport
	}
	if cfg.rateLimit > 0 {
		t = RateLimitedTransport(t, cfg.rateLimit, cfg.rateBurst)
	}
	return &CompiledFunction{desc: desc, transport: t}
}

// Call binds args against the descriptor, performs one request, and
// returns the processed response. Each call is independent; nothing is
// cached between invocations.
func (f *CompiledFunction) Call(ctx context.Context, args Args) (any, error) {
	bound, err := f.bind(args)
	if err != nil {
		return nil, err
	}
	req, err := buildRequest(f.desc, bound)
	if err != nil {
		return nil, err
	}
	resp, err := f.transport.Send(ctx, req)
	return handleResponse(f.desc, resp, err)
}

// Descriptor returns the operation descriptor for introspection.
func (f *CompiledFunction) Descriptor() *OperationDescriptor { return f.desc }

// bind validates args against the parameter specs and produces the bound
// value set: required params must be present, optional params fall back
// to their default, and every value is coerced to its declared type.
// A name absent from bound means the parameter is omitted from the
// request.
func (f *CompiledFunction) bind(args Args) (map[string]any, error) {
	if unknown := f.unknownArgs(args); unknown != "" {
		return nil, &UnknownParameterError{Name: unknown}
	}

	bound := make(map[string]any, len(f.desc.params))
	for _, p := range f.desc.params {
		v, supplied := args[p.Name]
		if _, omit := v.(omitted); supplied && omit {
			if p.Required {
				return nil, &MissingParameterError{Name: p.Name}
			}
			continue
		}
		if !supplied {
			if p.Required {
				return nil, &MissingParameterError{Name: p.Name}
			}
			if f.desc.omitDefaults || p.Default == nil {
				continue
			}
			bound[p.Name] = p.Default
			continue
		}
		coerced, err := coerce(p.Name, p.Type, v)
		if err != nil {
			return nil, err
		}
		bound[p.Name] = coerced
	}
	return bound, nil
}

// unknownArgs returns the first (alphabetically) argument name not
// declared by the descriptor, or "".
func (f *CompiledFunction) unknownArgs(args Args) string {
	var unknown []string
	for name := range args {
		if _, ok := f.desc.lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return ""
	}
	sort.Strings(unknown)
	return unknown[0]
}
