package identity

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// AuthRequest is the handshake body.
type AuthRequest struct {
	User User   `json:"user"`
	Hash string `json:"hash"`
}

// AuthResponse maps the platform user to an application account.
type AuthResponse struct {
	UserID     int    `json:"user_id"`
	TelegramID string `json:"telegram_id"`
	Username   string `json:"username"`
	Token      string `json:"token"`
}

// Authenticator performs the identity handshake with the backend.
type Authenticator interface {
	Authenticate(ctx context.Context, req AuthRequest) (AuthResponse, error)
}

// Resolver picks the acting identity once at startup.
type Resolver struct {
	platform   Platform
	auth       Authenticator
	deviceID   func(ctx context.Context) (string, error)
	headerName string
	log        logrus.FieldLogger
}

// NewResolver creates a Resolver. deviceID supplies the stable id used for
// the anonymous fallback.
func NewResolver(platform Platform, auth Authenticator, deviceID func(ctx context.Context) (string, error), headerName string, log logrus.FieldLogger) *Resolver {
	return &Resolver{
		platform:   platform,
		auth:       auth,
		deviceID:   deviceID,
		headerName: headerName,
		log:        log,
	}
}

// Resolve returns the authenticated identity, or the anonymous one along
// with the reason authentication was not possible. It never fails.
func (r *Resolver) Resolve(ctx context.Context) (Identity, error) {
	id, err := r.authenticate(ctx)
	if err == nil {
		id.HeaderName = r.headerName
		r.log.WithField("user", id.DisplayName()).Info("authenticated")
		return id, nil
	}

	anon := r.anonymous(ctx)
	r.log.WithError(err).Info("using anonymous identity")
	return anon, err
}

func (r *Resolver) authenticate(ctx context.Context) (Identity, error) {
	if r.platform == nil || !r.platform.HasContext() {
		return Identity{}, ErrAuthUnavailable
	}

	data, err := ParseInitData(r.platform.InitData())
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrAuthUnavailable, err)
	}

	resp, err := r.auth.Authenticate(ctx, AuthRequest{User: data.User, Hash: data.Hash})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrAuthUnavailable, err)
	}

	return Identity{
		User:      data.User,
		AccountID: resp.UserID,
		Token:     resp.Token,
	}, nil
}

func (r *Resolver) anonymous(ctx context.Context) Identity {
	device := "local"
	if r.deviceID != nil {
		if id, err := r.deviceID(ctx); err != nil {
			r.log.WithError(err).Warn("read device id")
		} else {
			device = id
		}
	}
	anon := Anonymous(device)
	anon.HeaderName = r.headerName
	return anon
}
