package ho

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"
)

// handleResponse routes the outcome of a send through the hook slots.
// Exactly one of resp and sendErr is set. An installed error hook fully
// replaces the default raise behavior for both failure edges; an
// installed egress hook replaces default decoding for success. Hooks run
// at most once per call and their errors propagate unwrapped.
func handleResponse(d *OperationDescriptor, resp *RawResponse, sendErr error) (any, error) {
	if sendErr != nil {
		if d.errorHook != nil {
			return d.errorHook(nil, sendErr)
		}
		return nil, &TransportError{Err: sendErr}
	}

	if resp.StatusCode >= 400 {
		if d.errorHook != nil {
			return d.errorHook(resp, nil)
		}
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	if d.egress != nil {
		return d.egress(resp)
	}
	return decodeResponse(resp)
}

// decodeResponse is the default success decoding: JSON content types are
// parsed into generic structures, everything else is returned as text.
func decodeResponse(resp *RawResponse) (any, error) {
	if !isJSON(resp.ContentType()) {
		return resp.Text(), nil
	}
	if len(resp.Body) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// isJSON matches application/json and +json suffixed media types.
func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
