// Package forms holds the rules the console's forms are checked against and
// turns API failures into what the user is shown.
package forms

import (
	"net/mail"
	"sort"
	"strings"
)

// MinPasswordLength is the shortest password the forms accept.
const MinPasswordLength = 8

// Field names shared by the forms and the API's field level errors.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmPassword"
	FieldEmail           = "email"
	FieldToken           = "token"
)

// Errors maps a field to the message shown beside it. The empty field name
// holds a message about the form as a whole.
type Errors map[string]string

// Add records msg for field unless field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Get returns the message recorded for field.
func (e Errors) Get(field string) string {
	return e[field]
}

// Except returns the messages recorded for every field but the given ones,
// ordered by field name. Forms use it to show messages about fields they have
// no input for.
func (e Errors) Except(fields ...string) []string {
	shown := map[string]bool{}
	for _, field := range fields {
		shown[field] = true
	}
	names := []string{}
	for field := range e {
		if !shown[field] {
			names = append(names, field)
		}
	}
	sort.Strings(names)
	msgs := make([]string, len(names))
	for i, field := range names {
		msgs[i] = e[field]
	}
	return msgs
}

// Valid returns true if nothing was recorded.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Login checks the login form.
func Login(username, password string) Errors {
	errs := Errors{}
	if strings.TrimSpace(username) == "" {
		errs.Add(FieldUsername, MsgUsernameRequired)
	}
	if password == "" {
		errs.Add(FieldPassword, MsgPasswordRequired)
	}
	return errs
}

// ResetRequest checks the form asking for a reset link.
func ResetRequest(email string) Errors {
	errs := Errors{}
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add(FieldEmail, MsgEmailRequired)
	} else if !ValidEmail(email) {
		errs.Add(FieldEmail, MsgEmailInvalid)
	}
	return errs
}

// NewPassword checks a new password and its confirmation.
func NewPassword(password, confirm string) Errors {
	errs := Errors{}
	switch {
	case password == "":
		errs.Add(FieldNewPassword, MsgPasswordRequired)
	case len([]rune(password)) < MinPasswordLength:
		errs.Add(FieldNewPassword, MsgPasswordTooShort)
	}
	switch {
	case confirm == "":
		errs.Add(FieldConfirmPassword, MsgConfirmRequired)
	case confirm != password:
		errs.Add(FieldConfirmPassword, MsgPasswordsMismatch)
	}
	return errs
}

// FirstPassword checks the first login form.
func FirstPassword(current, password, confirm string) Errors {
	errs := NewPassword(password, confirm)
	if current == "" {
		errs.Add(FieldCurrentPassword, MsgPasswordRequired)
	}
	return errs
}

// ResetPassword checks the form completing a reset.
func ResetPassword(token, password, confirm string) Errors {
	errs := NewPassword(password, confirm)
	if strings.TrimSpace(token) == "" {
		errs.Add(FieldToken, MsgResetTokenRequired)
	}
	return errs
}

// ValidEmail returns true for a bare address such as jean.dupont@adcsa.cm.
// Display names and angle brackets are rejected.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && addr.Name == ""
}
