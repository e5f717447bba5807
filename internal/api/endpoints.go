package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/identity"
	"github.com/vodila/vodila/internal/progress"
)

// FetchCards implements cards.Fetcher.
func (c *Client) FetchCards(ctx context.Context, q cards.Query) ([]cards.Card, error) {
	query := url.Values{}
	query.Set("mode", string(q.Mode))
	query.Set("known_ids", joinIDs(q.KnownIDs))
	query.Set("unknown_ids", joinIDs(q.UnknownIDs))

	var out []cards.Card
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "/cards", query: query, schema: cardsSchema}, &out)
	return out, err
}

type modeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FetchModes returns the backend's mode catalogue.
func (c *Client) FetchModes(ctx context.Context) ([]cards.ModeInfo, error) {
	var raw []modeInfo
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "/modes", schema: modesSchema}, &raw); err != nil {
		return nil, err
	}
	return lo.Map(raw, func(m modeInfo, _ int) cards.ModeInfo {
		return cards.ModeInfo{Mode: cards.Mode(m.ID), Name: m.Name, Description: m.Description}
	}), nil
}

// FetchProgress returns the acting identity's progress.
func (c *Client) FetchProgress(ctx context.Context) (progress.Snapshot, error) {
	var out progress.Snapshot
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "/progress", identify: true, schema: progressSchema}, &out)
	if err != nil {
		return progress.Snapshot{}, err
	}
	out.TotalKnown = len(out.Known)
	out.TotalUnknown = len(out.Unknown)
	return out, nil
}

type progressUpdate struct {
	RuleID int    `json:"rule_id"`
	Status string `json:"status"`
}

// SaveProgress records one classification for the acting identity.
func (c *Client) SaveProgress(ctx context.Context, cardID int, status cards.Direction) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "/progress",
		body:     progressUpdate{RuleID: cardID, Status: string(status)},
		identify: true,
	}, nil)
}

// ResetProgress deletes the acting identity's progress.
func (c *Client) ResetProgress(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodDelete, endpoint: "/progress/reset", identify: true}, nil)
}

// FetchStats returns the community stats.
func (c *Client) FetchStats(ctx context.Context) (progress.Stats, error) {
	var out progress.Stats
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "/stats", schema: statsSchema}, &out)
	return out, err
}

// FetchAudioCards returns every card annotated with its audio asset.
func (c *Client) FetchAudioCards(ctx context.Context) ([]cards.Card, error) {
	var out []cards.Card
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "/audio/cards", schema: cardsSchema}, &out)
	return out, err
}

// Authenticate implements identity.Authenticator.
func (c *Client) Authenticate(ctx context.Context, req identity.AuthRequest) (identity.AuthResponse, error) {
	var out identity.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, endpoint: "/auth/telegram", body: req, schema: authSchema}, &out)
	return out, err
}

// OpenAudio implements audio.Source. Relative references resolve against
// the backend host.
func (c *Client) OpenAudio(ctx context.Context, ref string) (io.ReadCloser, error) {
	target, err := c.base.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("audio ref %q: %w", ref, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("audio ref %q: %w", ref, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: ref, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{Endpoint: ref, Status: resp.StatusCode, Body: truncate(body)}
	}
	return resp.Body, nil
}

func joinIDs(ids []int) string {
	return strings.Join(lo.Map(ids, func(id int, _ int) string { return strconv.Itoa(id) }), ",")
}
