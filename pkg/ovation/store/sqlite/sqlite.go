// Package sqlite implements the corpus archive on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ovationhq/ovation/pkg/ovation/corpus"
	"github.com/ovationhq/ovation/pkg/ovation/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite corpus archive with WAL mode
// enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id INTEGER,
	text TEXT NOT NULL,
	user_id INTEGER,
	screen_name TEXT,
	timestamp_ms TEXT
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init archive schema: %w", err)
	}
	return nil
}

// SaveMessages appends the messages in a single transaction.
func (s *sqliteStore) SaveMessages(ctx context.Context, msgs []corpus.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save messages: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO messages (message_id, text, user_id, screen_name, timestamp_ms) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save messages: %w", err)
	}
	defer stmt.Close()

	for _, m := range msgs {
		var userID int64
		var screenName string
		if m.User != nil {
			userID = m.User.ID
			screenName = m.User.ScreenName
		}
		if _, err := stmt.ExecContext(ctx, m.ID, m.Text, userID, screenName, m.TimestampMS); err != nil {
			return fmt.Errorf("save message %d: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

// LoadMessages returns the archived corpus in insertion order.
func (s *sqliteStore) LoadMessages(ctx context.Context) ([]corpus.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, text, user_id, screen_name, timestamp_ms FROM messages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	var msgs []corpus.Message
	for rows.Next() {
		var m corpus.Message
		var userID int64
		var screenName string
		if err := rows.Scan(&m.ID, &m.Text, &userID, &screenName, &m.TimestampMS); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if userID != 0 || screenName != "" {
			m.User = &corpus.User{ID: userID, ScreenName: screenName}
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return msgs, nil
}

func (s *sqliteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
