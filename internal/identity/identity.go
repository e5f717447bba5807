// Package identity resolves who progress calls are made for: the user
// asserted by the host platform when it can be verified, otherwise an
// anonymous identity tied to this device.
package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// DefaultHeader carries the acting user on progress calls.
const DefaultHeader = "X-Telegram-User"

// ErrAuthUnavailable means there is no verifiable identity context.
var ErrAuthUnavailable = errors.New("identity: no verifiable platform context")

// UserID is a platform user id. Platform ids are numeric; anonymous ids are
// strings, so both forms are accepted and kept.
type UserID string

// MarshalJSON emits numeric ids as JSON numbers.
func (id UserID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number or string.
func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// User is the platform user as sent to the backend.
type User struct {
	ID           UserID `json:"id"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Identity is the acting identity for backend calls.
type Identity struct {
	User      User
	Anonymous bool

	// Set after a successful handshake.
	AccountID int
	Token     string

	// HeaderName overrides DefaultHeader.
	HeaderName string
}

// Header returns the header that carries the identity.
func (id Identity) Header() (name, value string) {
	name = id.HeaderName
	if name == "" {
		name = DefaultHeader
	}
	b, err := json.Marshal(id.User)
	if err != nil {
		return name, ""
	}
	return name, string(b)
}

// DisplayName is a short label for the status line.
func (id Identity) DisplayName() string {
	switch {
	case id.Anonymous:
		return "anonymous"
	case id.User.Username != "":
		return "@" + id.User.Username
	case id.User.FirstName != "":
		return id.User.FirstName
	default:
		return string(id.User.ID)
	}
}

// Anonymous returns the fallback identity for deviceID.
func Anonymous(deviceID string) Identity {
	return Identity{
		User:      User{ID: UserID("anonymous-" + deviceID), Username: "anonymous"},
		Anonymous: true,
	}
}
