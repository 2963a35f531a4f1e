package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LastUpload is the most recent photo a client uploaded.
type LastUpload struct {
	PhotoURL  string    `json:"photoUrl"`
	FileName  string    `json:"fileName"`
	Timestamp time.Time `json:"timestamp"`
}

// Preferences are the settings remembered per client across sessions.
type Preferences struct {
	ClientID   string      `json:"clientId"`
	Theme      string      `json:"theme"`
	Language   string      `json:"language"`
	LastUpload *LastUpload `json:"lastUpload,omitempty"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Repository provides database access for client preferences.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// GetPreferences retrieves the preferences of a client.
// Returns nil, nil when the client has none stored.
func (r *Repository) GetPreferences(ctx context.Context, clientID string) (*Preferences, error) {
	const q = `
		SELECT client_id, theme, language, last_upload, updated_at
		FROM client_preferences
		WHERE client_id = $1
	`

	var p Preferences
	var uploadJSON []byte

	err := r.q.QueryRow(ctx, q, clientID).Scan(
		&p.ClientID,
		&p.Theme,
		&p.Language,
		&uploadJSON,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying preferences for client %s: %w", clientID, err)
	}

	if len(uploadJSON) > 0 {
		var lu LastUpload
		if err := json.Unmarshal(uploadJSON, &lu); err != nil {
			return nil, fmt.Errorf("unmarshaling last upload for client %s: %w", clientID, err)
		}
		p.LastUpload = &lu
	}

	return &p, nil
}

// UpsertDisplay stores theme and language. An empty value keeps what is stored.
func (r *Repository) UpsertDisplay(ctx context.Context, clientID, theme, language string) error {
	const q = `
		INSERT INTO client_preferences (client_id, theme, language, updated_at)
		VALUES ($1, COALESCE(NULLIF($2, ''), 'light'), COALESCE(NULLIF($3, ''), 'en'), NOW())
		ON CONFLICT (client_id) DO UPDATE
		SET theme      = COALESCE(NULLIF($2, ''), client_preferences.theme),
		    language   = COALESCE(NULLIF($3, ''), client_preferences.language),
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, q, clientID, theme, language); err != nil {
		return fmt.Errorf("upserting display preferences for client %s: %w", clientID, err)
	}

	return nil
}

// SaveLastUpload remembers the client's latest upload.
func (r *Repository) SaveLastUpload(ctx context.Context, clientID string, lu LastUpload) error {
	uploadJSON, err := json.Marshal(lu)
	if err != nil {
		return fmt.Errorf("marshaling last upload for client %s: %w", clientID, err)
	}

	const q = `
		INSERT INTO client_preferences (client_id, last_upload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (client_id) DO UPDATE
		SET last_upload = EXCLUDED.last_upload,
		    updated_at  = EXCLUDED.updated_at
	`

	if _, err := r.q.Exec(ctx, q, clientID, uploadJSON); err != nil {
		return fmt.Errorf("saving last upload for client %s: %w", clientID, err)
	}

	return nil
}
