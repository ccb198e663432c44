package authx

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// UserStatus represents the administrative status of a GED user account.
type UserStatus string

const (
	// UserStatusActive represents an account that may sign in.
	UserStatusActive UserStatus = "ACTIF"
	// UserStatusInactive represents an account that was deactivated.
	UserStatusInactive UserStatus = "INACTIF"
	// UserStatusLocked represents an account locked after repeated failures.
	UserStatusLocked UserStatus = "VERROUILLE"
	// UserStatusSuspended represents an account suspended by an administrator.
	UserStatusSuspended UserStatus = "SUSPENDU"
)

// User is the record the GED API returns for the signed in user.
type User struct {
	ID                  int64      `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email,omitempty"`
	LastName            string     `json:"nom,omitempty"`
	FirstName           string     `json:"prenom,omitempty"`
	Phone               string     `json:"telephone,omitempty"`
	Status              UserStatus `json:"statut,omitempty"`
	LastLogin           *LocalTime `json:"derniereConnexion,omitempty"`
	IsFirstLogin        bool       `json:"isFirstLogin,omitempty"`
	IsPasswordExpired   bool       `json:"isPasswordExpired,omitempty"`
	IsFirstLoginExpired bool       `json:"isFirstLoginExpired,omitempty"`
	FirstLoginExpiresAt *LocalTime `json:"firstLoginExpiresAt,omitempty"`
	PasswordChangedAt   *LocalTime `json:"passwordChangedAt,omitempty"`
	Roles               []string   `json:"roles,omitempty"`
}

// DisplayName returns "Prénom Nom" when the API supplied names and the
// username otherwise.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

var localTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// LocalTime is a timestamp as the GED API serializes it. Values carry no
// zone, so they are interpreted in the local zone. Both ISO-8601 strings and
// the [year, month, day, hour, minute, second, nanos] array form are
// accepted.
type LocalTime struct {
	time.Time
}

// MarshalJSON renders the timestamp in ISO-8601 without a zone.
func (l LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Format("2006-01-02T15:04:05"))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LocalTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		parts := []int{}
		if err := json.Unmarshal(data, &parts); err != nil {
			return errors.Wrap(err, "error decoding timestamp array")
		}
		for len(parts) < 7 {
			parts = append(parts, 0)
		}
		l.Time = time.Date(
			parts[0],
			time.Month(parts[1]),
			parts[2],
			parts[3],
			parts[4],
			parts[5],
			parts[6],
			time.Local,
		)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.Wrap(err, "error decoding timestamp")
	}
	for _, layout := range localTimeLayouts {
		if t, err := time.ParseInLocation(layout, str, time.Local); err == nil {
			l.Time = t
			return nil
		}
	}
	return errors.Errorf("unrecognized timestamp %q", str)
}
