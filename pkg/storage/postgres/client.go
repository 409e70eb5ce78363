// Package postgres provides a PostgreSQL-backed item store.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/michal-ai/orchestrator-go/pkg/storage"
	"github.com/michal-ai/orchestrator-go/pkg/storage/sqlutil"
)

// Config contains configuration for the PostgreSQL store.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Client implements storage.Store on top of PostgreSQL.
type Client struct {
	*sqlutil.Store
}

// NewClient connects to PostgreSQL and initializes the schema.
func NewClient(cfg *Config) (*Client, error) {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	client := &Client{Store: sqlutil.New(db, sqlutil.Dollar)}
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
			value DOUBLE PRECISION,
			priority TEXT NOT NULL DEFAULT '',
			action TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS debts (
			id INTEGER PRIMARY KEY,
			creditor TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			amount DOUBLE PRECISION NOT NULL DEFAULT 0,
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
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			message_type TEXT NOT NULL,
			message TEXT NOT NULL,
			ai_model TEXT,
			tokens_used INTEGER,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_history_user ON chat_history(user_id, created_at)`,
	}
	for _, stmt := range statements {
		if _, err := c.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: initTables: %w", err)
		}
	}
	return nil
}

// SaveChatMessage appends a message to a user's chat history.
func (c *Client) SaveChatMessage(ctx context.Context, userID, role, content string, meta storage.ChatMeta) error {
	return c.Store.SaveChatMessage(ctx, userID, role, content, meta.Model, meta.TokensUsed)
}
