// Package sqlite provides the draft store backed by a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/educonsult/site/internal/lead"
	sqlitemigrate "github.com/educonsult/site/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/educonsult/site/internal/services/web/storage"
	"github.com/educonsult/site/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for drafts.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a draft SQLite store.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetDraft loads a live draft by id.
func (s *Store) GetDraft(ctx context.Context, id string) (lead.Draft, bool, error) {
	if s == nil || s.sqlDB == nil {
		return lead.Draft{}, false, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return lead.Draft{}, false, fmt.Errorf("draft id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload_json FROM drafts WHERE id = ? AND (expires_at = 0 OR expires_at > ?)`,
		id, timeToUnixMillis(s.now()),
	)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lead.Draft{}, false, nil
		}
		return lead.Draft{}, false, fmt.Errorf("get draft: %w", err)
	}
	draft, err := webstorage.DecodeDraft(payload)
	if err != nil {
		return lead.Draft{}, false, err
	}
	return draft, true, nil
}

// PutDraft upserts a draft and prunes expired rows.
func (s *Store) PutDraft(ctx context.Context, draft lead.Draft, ttl time.Duration) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	draft.ID = strings.TrimSpace(draft.ID)
	if draft.ID == "" {
		return fmt.Errorf("draft id is required")
	}
	payload, err := webstorage.EncodeDraft(draft)
	if err != nil {
		return err
	}

	now := s.now()
	var expiresAt int64
	if ttl > 0 {
		expiresAt = timeToUnixMillis(now.Add(ttl))
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO drafts (id, payload_json, step, locale, updated_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    payload_json = excluded.payload_json,
		    step = excluded.step,
		    locale = excluded.locale,
		    updated_at = excluded.updated_at,
		    expires_at = excluded.expires_at`,
		draft.ID,
		payload,
		int64(draft.Step),
		draft.Locale,
		timeToUnixMillis(now),
		expiresAt,
	)
	if err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	if _, err := s.PruneExpired(ctx); err != nil {
		return err
	}
	return nil
}

// DeleteDraft removes a draft by id.
func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// PruneExpired deletes expired drafts and returns how many were removed.
func (s *Store) PruneExpired(ctx context.Context) (int64, error) {
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM drafts WHERE expires_at > 0 AND expires_at <= ?`,
		timeToUnixMillis(s.now()),
	)
	if err != nil {
		return 0, fmt.Errorf("prune drafts: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune drafts: %w", err)
	}
	return removed, nil
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

var _ webstorage.DraftStore = (*Store)(nil)
