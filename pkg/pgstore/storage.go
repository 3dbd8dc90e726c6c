package pgstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopstack/notifykit/pkg/notifier"
)

// Storage is a PostgreSQL implementation of notifier.Storage and
// notifier.PreferenceStorage on a pgx connection pool. Schema lives in the
// migrations directory of this package.
type Storage struct {
	pool *pgxpool.Pool
}

// New creates a Storage on an existing pool.
func New(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func (s *Storage) Create(ctx context.Context, identity string, n notifier.Notification) error {
	if identity == "" {
		return notifier.ErrMissingIdentity
	}
	if n.ID == "" {
		return notifier.ErrMissingID
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (id, identity, type, category, priority, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, identity, n.Type, n.Category, n.Priority, n.Title, n.Message, n.Read, n.CreatedAt,
	)
	return err
}

func (s *Storage) List(ctx context.Context, identity string, opts notifier.ListOptions) ([]notifier.Notification, error) {
	query := `
		SELECT id, type, category, priority, title, message, is_read, created_at
		FROM notifications
		WHERE identity = $1`
	if opts.OnlyUnread {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	args := []any{identity}
	if opts.Limit > 0 {
		query += ` LIMIT $2`
		args = append(args, opts.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notifier.Notification
	for rows.Next() {
		var n notifier.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Category, &n.Priority, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Storage) MarkRead(ctx context.Context, identity string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE identity = $1 AND id = ANY($2)`,
		identity, ids,
	)
	return err
}

func (s *Storage) MarkAllRead(ctx context.Context, identity string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE identity = $1 AND is_read = FALSE`,
		identity,
	)
	return err
}

func (s *Storage) Delete(ctx context.Context, identity string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		DELETE FROM notifications
		WHERE identity = $1 AND id = ANY($2)`,
		identity, ids,
	)
	return err
}

func (s *Storage) DeleteAll(ctx context.Context, identity string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM notifications WHERE identity = $1`, identity)
	return err
}

func (s *Storage) CountUnread(ctx context.Context, identity string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE identity = $1 AND is_read = FALSE`,
		identity,
	).Scan(&count)
	return count, err
}

func (s *Storage) LoadPreferences(ctx context.Context, identity string) (notifier.Preferences, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT prefs FROM notification_preferences
		WHERE identity = $1`,
		identity,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return notifier.Preferences{}, false, nil
	}
	if err != nil {
		return notifier.Preferences{}, false, err
	}

	var prefs notifier.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return notifier.Preferences{}, false, err
	}
	return prefs, true, nil
}

func (s *Storage) SavePreferences(ctx context.Context, identity string, prefs notifier.Preferences) error {
	if identity == "" {
		return notifier.ErrMissingIdentity
	}

	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO notification_preferences (identity, prefs, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (identity) DO UPDATE SET prefs = EXCLUDED.prefs, updated_at = now()`,
		identity, raw,
	)
	return err
}
