package forms

import (
	"github.com/adcsa/ged/sdk/meta"
	"github.com/pkg/errors"
)

// Feedback is what a form shows after the API turned it down.
type Feedback struct {
	// Message is shown above the form.
	Message string
	// Fields holds the API's messages about individual fields, verbatim.
	Fields Errors
}

// LoginFeedback explains a failed login: refused credentials are told apart
// from every other failure.
func LoginFeedback(err error) Feedback {
	if _, ok := errors.Cause(err).(*meta.ErrAuthentication); ok {
		return Feedback{Message: MsgInvalidCredentials}
	}
	return Feedback{Message: MsgLoginFailed}
}

// APIFeedback explains the failure of any other form. Bad requests surface
// the API's own messages; other failures get a generic one. The API refusing
// the session itself is handled before the form sees the error.
func APIFeedback(err error) Feedback {
	switch e := errors.Cause(err).(type) {
	case *meta.ErrBadRequest:
		f := Feedback{
			Message: e.Reason,
			Fields:  Errors{},
		}
		for field, msg := range e.Details {
			f.Fields[field] = msg
		}
		if f.Message == "" {
			f.Message = MsgGenericFailure
		}
		return f
	case *meta.ErrAuthentication:
		return Feedback{Message: MsgSessionExpired}
	case *meta.ErrAuthorization:
		return Feedback{Message: MsgInsufficientRights}
	}
	return Feedback{Message: MsgGenericFailure}
}
