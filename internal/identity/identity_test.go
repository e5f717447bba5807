package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initData(user string) string {
	v := url.Values{}
	v.Set("user", user)
	v.Set("hash", "abc123")
	v.Set("auth_date", "1700000000")
	return v.Encode()
}

type stubAuth struct {
	resp AuthResponse
	err  error
	got  AuthRequest
}

func (s *stubAuth) Authenticate(_ context.Context, req AuthRequest) (AuthResponse, error) {
	s.got = req
	return s.resp, s.err
}

func device(context.Context) (string, error) { return "dev-1", nil }

func newResolver(t *testing.T, p Platform, a Authenticator) *Resolver {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewResolver(p, a, device, "", logger)
}

func TestParseInitData(t *testing.T) {
	data, err := ParseInitData(initData(`{"id":42,"username":"ana","first_name":"Ana"}`))
	require.NoError(t, err)
	assert.Equal(t, UserID("42"), data.User.ID)
	assert.Equal(t, "ana", data.User.Username)
	assert.Equal(t, "abc123", data.Hash)
	assert.Equal(t, int64(1700000000), data.AuthDate.Unix())

	_, err = ParseInitData("hash=x")
	assert.Error(t, err)
	_, err = ParseInitData(initData(`{"username":"x"}`))
	assert.Error(t, err)
	_, err = ParseInitData(initData(`not json`))
	assert.Error(t, err)
}

func TestUserIDJSON(t *testing.T) {
	b, err := json.Marshal(User{ID: "42"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42}`, string(b))

	b, err = json.Marshal(User{ID: "anonymous-x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"anonymous-x"}`, string(b))

	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc"}`), &u))
	assert.Equal(t, UserID("abc"), u.ID)
}

func TestResolve_Authenticated(t *testing.T) {
	auth := &stubAuth{resp: AuthResponse{UserID: 7, TelegramID: "42", Token: "tok"}}
	r := newResolver(t, StaticPlatform{Raw: initData(`{"id":42,"username":"ana"}`)}, auth)

	id, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.False(t, id.Anonymous)
	assert.Equal(t, 7, id.AccountID)
	assert.Equal(t, "tok", id.Token)
	assert.Equal(t, "abc123", auth.got.Hash)
	assert.Equal(t, "@ana", id.DisplayName())

	name, value := id.Header()
	assert.Equal(t, DefaultHeader, name)
	assert.JSONEq(t, `{"id":42,"username":"ana"}`, value)
}

func TestResolve_FallsBackToAnonymous(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		auth     *stubAuth
	}{
		{"no platform", nil, &stubAuth{}},
		{"empty context", StaticPlatform{}, &stubAuth{}},
		{"bad init data", StaticPlatform{Raw: "user=%7B"}, &stubAuth{}},
		{"handshake rejected", StaticPlatform{Raw: initData(`{"id":1}`)}, &stubAuth{err: errors.New("HTTP 401")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(t, tt.platform, tt.auth)
			id, err := r.Resolve(context.Background())

			assert.ErrorIs(t, err, ErrAuthUnavailable)
			assert.True(t, id.Anonymous)
			assert.Equal(t, UserID("anonymous-dev-1"), id.User.ID)

			_, value := id.Header()
			assert.JSONEq(t, `{"id":"anonymous-dev-1","username":"anonymous"}`, value)
		})
	}
}

func TestResolve_HeaderOverride(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := NewResolver(nil, nil, nil, "X-User", logger)
	id, _ := r.Resolve(context.Background())

	name, _ := id.Header()
	assert.Equal(t, "X-User", name)
	assert.Equal(t, UserID("anonymous-local"), id.User.ID)
}
