package identity

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Platform is the host-supplied identity context.
type Platform interface {
	HasContext() bool
	InitData() string
	User() (User, bool)
}

// InitData is the parsed platform assertion.
type InitData struct {
	User     User
	Hash     string
	AuthDate time.Time
	Values   url.Values
}

// ParseInitData parses a query-string encoded platform assertion.
func ParseInitData(raw string) (InitData, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return InitData{}, fmt.Errorf("parse init data: %w", err)
	}

	data := InitData{Hash: values.Get("hash"), Values: values}

	userJSON := values.Get("user")
	if userJSON == "" {
		return InitData{}, fmt.Errorf("parse init data: missing user")
	}
	if err := json.Unmarshal([]byte(userJSON), &data.User); err != nil {
		return InitData{}, fmt.Errorf("parse init data user: %w", err)
	}
	if data.User.ID == "" {
		return InitData{}, fmt.Errorf("parse init data: user without id")
	}

	if s := values.Get("auth_date"); s != "" {
		secs, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return InitData{}, fmt.Errorf("parse init data auth_date: %w", err)
		}
		data.AuthDate = time.Unix(secs, 0)
	}
	return data, nil
}

// StaticPlatform is a Platform backed by a fixed init data string, such as
// one passed on the command line or in the environment.
type StaticPlatform struct {
	Raw string
}

func (p StaticPlatform) HasContext() bool { return p.Raw != "" }
func (p StaticPlatform) InitData() string { return p.Raw }

func (p StaticPlatform) User() (User, bool) {
	data, err := ParseInitData(p.Raw)
	if err != nil {
		return User{}, false
	}
	return data.User, true
}
