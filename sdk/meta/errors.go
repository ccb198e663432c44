package meta

import (
	"fmt"
	"sort"
)

// ErrAuthentication represents an error when the API could not authenticate
// the request, either because the credentials were wrong or because the
// session credential is no longer valid.
type ErrAuthentication struct {
	Reason string `json:"reason"`
}

func (e *ErrAuthentication) Error() string {
	if e.Reason == "" {
		return "Could not authenticate the request."
	}
	return fmt.Sprintf("Could not authenticate the request: %s", e.Reason)
}

// UnmarshalJSON decodes a GED API error body into the error.
func (e *ErrAuthentication) UnmarshalJSON(data []byte) error {
	e.Reason, _ = decodeErrorBody(data)
	return nil
}

// ErrAuthorization represents an error when the authenticated principal may
// not perform the requested operation.
type ErrAuthorization struct {
	Reason string `json:"reason"`
}

func (e *ErrAuthorization) Error() string {
	return "The request is not authorized."
}

// UnmarshalJSON decodes a GED API error body into the error.
func (e *ErrAuthorization) UnmarshalJSON(data []byte) error {
	e.Reason, _ = decodeErrorBody(data)
	return nil
}

// ErrBadRequest represents an error when the request was rejected as
// invalid. Details maps form fields to the server's messages about them.
type ErrBadRequest struct {
	Reason  string            `json:"reason"`
	Details map[string]string `json:"details"`
}

func (e *ErrBadRequest) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("Bad request: %s", e.Reason)
	}
	msg := fmt.Sprintf("Bad request: %s:", e.Reason)
	for i, field := range e.Fields() {
		msg = fmt.Sprintf("%s\n  %d. %s: %s", msg, i, field, e.Details[field])
	}
	return msg
}

// Fields returns the names of the fields the server complained about, in
// a stable order.
func (e *ErrBadRequest) Fields() []string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// UnmarshalJSON decodes a GED API error body into the error.
func (e *ErrBadRequest) UnmarshalJSON(data []byte) error {
	e.Reason, e.Details = decodeErrorBody(data)
	return nil
}

// ErrNotFound represents an error when a requested resource does not exist.
type ErrNotFound struct {
	Reason string `json:"reason"`
}

func (e *ErrNotFound) Error() string {
	if e.Reason == "" {
		return "The requested resource was not found."
	}
	return fmt.Sprintf("Not found: %s", e.Reason)
}

// UnmarshalJSON decodes a GED API error body into the error.
func (e *ErrNotFound) UnmarshalJSON(data []byte) error {
	e.Reason, _ = decodeErrorBody(data)
	return nil
}

// ErrConflict represents an error when the request conflicts with the
// current state of a resource.
type ErrConflict struct {
	Reason string `json:"reason"`
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("Conflict: %s", e.Reason)
}

// UnmarshalJSON decodes a GED API error body into the error.
func (e *ErrConflict) UnmarshalJSON(data []byte) error {
	e.Reason, _ = decodeErrorBody(data)
	return nil
}

// ErrInternalServer represents a failure on the API side.
type ErrInternalServer struct {
	Reason string `json:"reason"`
}

func (e *ErrInternalServer) Error() string {
	return "An internal server error occurred."
}

// UnmarshalJSON decodes a GED API error body into the error.
func (e *ErrInternalServer) UnmarshalJSON(data []byte) error {
	e.Reason, _ = decodeErrorBody(data)
	return nil
}
