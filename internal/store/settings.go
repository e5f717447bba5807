package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vodila/vodila/ent"
	"github.com/vodila/vodila/ent/setting"
)

const deviceIDKey = "device_id"

// DeviceID returns the persistent anonymous device id, creating it on first
// use.
func (s *Store) DeviceID(ctx context.Context) (string, error) {
	id, err := s.setting(ctx, deviceIDKey)
	if err == nil {
		return id, nil
	}
	if !ent.IsNotFound(err) {
		return "", fmt.Errorf("read device id: %w", err)
	}

	_, err = s.client.Setting.Create().
		SetKey(deviceIDKey).
		SetData(uuid.NewString()).
		Save(ctx)
	if err != nil && !ent.IsConstraintError(err) {
		return "", fmt.Errorf("save device id: %w", err)
	}

	// Another process may have won the insert.
	id, err = s.setting(ctx, deviceIDKey)
	if err != nil {
		return "", fmt.Errorf("read device id: %w", err)
	}
	return id, nil
}

func (s *Store) setting(ctx context.Context, key string) (string, error) {
	row, err := s.client.Setting.Query().
		Where(setting.Key(key)).
		Only(ctx)
	if err != nil {
		return "", err
	}
	return row.Data, nil
}
