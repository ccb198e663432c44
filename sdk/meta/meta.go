// Package meta holds the types shared by every GED API client, most notably
// the typed errors that API failures are translated into.
package meta

import "encoding/json"

// errorBody is the envelope the GED API wraps failures in. Some endpoints
// answer with {"message": ..., "data": {...}} and others with {"error": ...}.
type errorBody struct {
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// decodeErrorBody extracts a human readable reason and, when the API supplied
// them, field level messages from an error response body. Bodies that are not
// JSON at all are tolerated and yield an empty reason.
func decodeErrorBody(data []byte) (string, map[string]string) {
	body := errorBody{}
	if err := json.Unmarshal(data, &body); err != nil {
		return "", nil
	}
	reason := body.Message
	if reason == "" {
		reason = body.Error
	}
	var details map[string]string
	if len(body.Data) > 0 {
		// Anything other than an object of strings is ignored.
		_ = json.Unmarshal(body.Data, &details) // nolint: errcheck
	}
	return reason, details
}
