package ho

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// buildRequest assembles the outgoing request from a descriptor and the
// bound parameter values produced by bind. Path values are substituted
// with percent-encoding, the query string starts with the template's
// literal pairs and then emits parameters in declaration order, headers
// come from the descriptor only, and body parameters are serialized as a
// JSON object for body-carrying methods.
func buildRequest(d *OperationDescriptor, bound map[string]any) (*Request, error) {
	var path strings.Builder
	for _, tok := range d.pathTokens {
		if tok.param == "" {
			path.WriteString(tok.literal)
			continue
		}
		v, ok := bound[tok.param]
		if !ok {
			// Optional path param omitted via Omit or WithOmitDefaults:
			// the URL would have a hole in it.
			return nil, &MissingParameterError{Name: tok.param}
		}
		path.WriteString(url.PathEscape(formatValue(v)))
	}

	var query strings.Builder
	appendPair := func(key, value string) {
		if query.Len() > 0 {
			query.WriteByte('&')
		}
		query.WriteString(url.QueryEscape(key))
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(value))
	}
	for _, qp := range d.queryLiterals {
		appendPair(qp.key, qp.value)
	}
	for _, name := range d.queryOrder {
		v, ok := bound[name]
		if !ok {
			continue
		}
		p, _ := d.lookup(name)
		appendPair(p.Key, formatValue(v))
	}

	full := d.baseURL + path.String()
	if query.Len() > 0 {
		full += "?" + query.String()
	}

	header := make(http.Header, len(d.headers)+1)
	for k, v := range d.headers {
		header.Set(k, v)
	}

	req := &Request{Method: d.method, URL: full, Header: header}

	if methodCarriesBody(d.method) {
		body, err := encodeBody(d, bound)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Body = body
			if header.Get("Content-Type") == "" {
				header.Set("Content-Type", "application/json")
			}
		}
	}

	return req, nil
}

// encodeBody serializes body-location parameters into a JSON object.
// Returns nil when the operation has no bound body parameters.
func encodeBody(d *OperationDescriptor, bound map[string]any) ([]byte, error) {
	fields := make(map[string]any)
	for _, p := range d.params {
		if p.Location != LocationBody {
			continue
		}
		if v, ok := bound[p.Name]; ok {
			fields[p.Key] = v
		}
	}
	if len(fields) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return data, nil
}
