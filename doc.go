// Package ho compiles URL templates and OpenAPI documents into callable
// HTTP operations. A template's placeholders become a checked parameter
// list — required/optional split, declared types, defaults — and the
// compiled function runs a full request/response pipeline over an
// injected transport.
//
// Single-route mode compiles one template into one callable:
//
//	fn, err := ho.CompileTemplate(
//	    "https://restcountries.com/v3.1/name/{country_name}?fullText={full_text:false}",
//	    ho.WithParamTypes(map[string]ho.ParamType{"full_text": ho.TypeBoolean}),
//	)
//	out, err := fn.Call(ctx, ho.Args{"country_name": "germany"})
//
// Document mode compiles every (path, method) pair of a specification
// into a registry and an identifier namespace:
//
//	doc, err := ho.LoadDocument(openapiBytes) // or ho.ParseDocument for the native format
//	reg, err := ho.BuildRegistry(doc, "https://api.example.com")
//	ns, err := reg.Namespace()
//	out, err := ns.Call(ctx, "get_users_id_", ho.Args{"id": 42})
//
// Response handling is pluggable through two hook slots: WithEgress
// replaces default decoding of successful responses, WithErrorHandler
// replaces the default error behavior for transport failures and HTTP
// error statuses. The engine performs no logging, retries, or caching of
// its own; transports are composable decorators (LoggedTransport,
// RateLimitedTransport) around the injected Send capability.
package ho
