// Package redisstore keeps short-lived onboarding and login state in Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix    = "session:"
	oauthStatePrefix = "oauth_state:"
	draftPrefix      = "onboarding_draft:"
	submitLockPrefix = "onboarding_submit:"
)

func setJSON(ctx context.Context, client redis.Cmdable, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return client.Set(ctx, key, data, ttl).Err()
}

// getJSON decodes the value at key into v. missing is returned when the key
// does not exist.
func getJSON(ctx context.Context, client redis.Cmdable, key string, v any, missing error) error {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return missing
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}
