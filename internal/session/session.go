// Package session keeps per-browser-session state in one Redis hash per
// session id.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 24 * time.Hour

// Keys stored in a session.
const (
	KeyUploadedPhoto       = "uploadedPhotoUrl"
	KeySelectedDestination = "selectedDestination"
	KeyGenerated           = "generatedVisualization"
	KeyDestinations        = "destinations"
	KeyContinents          = "continents"
	KeyVisualizations      = "visualizations"
	KeyLastRecommendations = "lastRecommendations"
)

// PhotoRef is the uploaded photo the session is working with.
type PhotoRef struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// Store reads and writes session values as JSON hash fields.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore constructs a Store. A ttl <= 0 uses 24 hours.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

func key(sid string) string {
	return "session:" + sid
}

// Get decodes the value at field into dst.
// Returns false, nil when the field is absent.
func (s *Store) Get(ctx context.Context, sid, field string, dst any) (bool, error) {
	val, err := s.client.HGet(ctx, key(sid), field).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("session get %s: %w", field, err)
	}

	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("unmarshaling session field %s: %w", field, err)
	}
	return true, nil
}

// Set stores v at field and refreshes the session TTL.
func (s *Store) Set(ctx context.Context, sid, field string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling session field %s: %w", field, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key(sid), field, b)
		pipe.Expire(ctx, key(sid), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session set %s: %w", field, err)
	}
	return nil
}

// Delete removes fields from the session.
func (s *Store) Delete(ctx context.Context, sid string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, key(sid), fields...).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// Clear drops the whole session.
func (s *Store) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, key(sid)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
