// Package activity appends page views and UI events to capped per-client
// Redis lists.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Kind selects a log.
type Kind string

const (
	Analytics Kind = "analytics"
	Events    Kind = "events"
)

// Caps keep the newest entries only.
const (
	AnalyticsCap = 100
	EventsCap    = 200
)

func (k Kind) cap() int64 {
	if k == Events {
		return EventsCap
	}
	return AnalyticsCap
}

// Valid reports whether k names a known log.
func (k Kind) Valid() bool { return k == Analytics || k == Events }

// Entry is one logged page view or event.
type Entry struct {
	Name      string            `json:"name"`
	Page      string            `json:"page,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Log stores entries per client id.
type Log struct {
	client *redis.Client
}

// NewLog constructs a Log.
func NewLog(client *redis.Client) *Log {
	return &Log{client: client}
}

func key(cid string, k Kind) string {
	return "activity:" + cid + ":" + string(k)
}

// Append adds e and trims the list to its cap, evicting the oldest entries.
func (l *Log) Append(ctx context.Context, cid string, k Kind, e Entry) error {
	if !k.Valid() {
		return fmt.Errorf("unknown activity log %q", k)
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling %s entry: %w", k, err)
	}

	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key(cid, k), b)
		pipe.LTrim(ctx, key(cid, k), -k.cap(), -1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("appending %s entry: %w", k, err)
	}
	return nil
}

// List returns the log oldest first.
func (l *Log) List(ctx context.Context, cid string, k Kind) ([]Entry, error) {
	vals, err := l.client.LRange(ctx, key(cid, k), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", k, err)
	}

	out := make([]Entry, 0, len(vals))
	for _, v := range vals {
		var e Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return nil, fmt.Errorf("unmarshaling %s entry: %w", k, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Clear removes both logs of a client.
func (l *Log) Clear(ctx context.Context, cid string) error {
	if err := l.client.Del(ctx, key(cid, Analytics), key(cid, Events)).Err(); err != nil {
		return fmt.Errorf("clearing activity: %w", err)
	}
	return nil
}
