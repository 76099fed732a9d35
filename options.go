package ho

// EgressHook transforms a successful raw response into the final return
// value, replacing the default JSON/text decoding.
type EgressHook func(resp *RawResponse) (any, error)

// ErrorHook handles transport failures and HTTP error statuses, replacing
// the default raise behavior. Exactly one of resp and err is set: resp for
// an HTTP status >= 400, err for a transport failure.
type ErrorHook func(resp *RawResponse, err error) (any, error)

// config collects compile-time settings before they are frozen into an
// OperationDescriptor.
type config struct {
	method       string
	description  string
	paramTypes   map[string]ParamType
	headers      map[string]string
	egress       EgressHook
	errorHook    ErrorHook
	transport    Transport
	omitDefaults bool
	strict       bool
	rateLimit    float64
	rateBurst    int
}

// Option configures compilation of an operation or registry.
type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithMethod sets the HTTP method for a single-route compilation.
// The default is GET.
func WithMethod(method string) Option {
	return func(c *config) {
		c.method = method
	}
}

// WithDescription sets the human-readable operation description.
func WithDescription(desc string) Option {
	return func(c *config) {
		c.description = desc
	}
}

// WithParamTypes declares types for named parameters, overriding the
// parser's inferred "any". Supplied and default values are coerced to the
// declared type.
func WithParamTypes(types map[string]ParamType) Option {
	return func(c *config) {
		if c.paramTypes == nil {
			c.paramTypes = make(map[string]ParamType, len(types))
		}
		for name, t := range types {
			c.paramTypes[name] = t
		}
	}
}

// WithHeaders adds static headers sent with every request for the
// operation. Headers are fixed at compile time.
func WithHeaders(headers map[string]string) Option {
	return func(c *config) {
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithEgress installs a hook that replaces default response decoding.
func WithEgress(hook EgressHook) Option {
	return func(c *config) {
		c.egress = hook
	}
}

// WithErrorHandler installs a hook that replaces the default error
// behavior for transport failures and HTTP error statuses.
func WithErrorHandler(hook ErrorHook) Option {
	return func(c *config) {
		c.errorHook = hook
	}
}

// WithTransport injects the transport used to send requests. The default
// is DefaultTransport.
func WithTransport(t Transport) Option {
	return func(c *config) {
		c.transport = t
	}
}

// WithOmitDefaults omits optional query parameters that the caller did
// not supply, instead of including them with their default value.
func WithOmitDefaults() Option {
	return func(c *config) {
		c.omitDefaults = true
	}
}

// WithStrict makes registry construction all-or-nothing: the first
// malformed document entry aborts the build instead of being skipped.
func WithStrict() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithRateLimit wraps the transport with a client-side rate limiter of
// rps requests per second and the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *config) {
		c.rateLimit = rps
		c.rateBurst = burst
	}
}
