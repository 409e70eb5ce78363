// Package sqlite provides a SQLite-backed item store.
//
// SQLite is the lightweight local option: a single database file, schema
// created on first connect. Suitable for development and single-machine use.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/michal-ai/orchestrator-go/pkg/storage"
	"github.com/michal-ai/orchestrator-go/pkg/storage/sqlutil"
)

// Config contains configuration for the SQLite store.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string
}

// Client implements storage.Store on top of a SQLite file.
type Client struct {
	*sqlutil.Store
}

// NewClient opens (creating if necessary) the database file and initializes
// the schema.
func NewClient(cfg *Config) (*Client, error) {
	dbDir := filepath.Dir(cfg.DBPath)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_foreign_keys=1&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}

	client := &Client{Store: sqlutil.New(db, sqlutil.QuestionMark)}
	if err := client.initTables(context.Background()); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *Client) initTables(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY,
			project TEXT NOT NULL,
			client TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			progress INTEGER NOT NULL DEFAULT 0,
			deadline TEXT,
			currency TEXT,
			value REAL,
			priority TEXT NOT NULL DEFAULT '',
			action TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS debts (
			id INTEGER PRIMARY KEY,
			creditor TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			amount REAL NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT '',
			case_number TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			deadline TEXT,
			action TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS bureaucracy (
			id INTEGER PRIMARY KEY,
			task TEXT NOT NULL,
			authority TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			deadline TEXT,
			action TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			university TEXT NOT NULL DEFAULT '',
			field TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS chat_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			message_type TEXT NOT NULL,
			message TEXT NOT NULL,
			ai_model TEXT,
			tokens_used INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_history_user ON chat_history(user_id, created_at)`,
	}
	for _, stmt := range statements {
		if _, err := c.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: initTables: %w", err)
		}
	}
	return nil
}

// SaveChatMessage appends a message to a user's chat history.
func (c *Client) SaveChatMessage(ctx context.Context, userID, role, content string, meta storage.ChatMeta) error {
	return c.Store.SaveChatMessage(ctx, userID, role, content, meta.Model, meta.TokensUsed)
}
