// Package mysql provides a MySQL-backed item store.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/michal-ai/orchestrator-go/pkg/storage"
	"github.com/michal-ai/orchestrator-go/pkg/storage/sqlutil"
)

// Config contains configuration for the MySQL store.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// Client implements storage.Store on top of MySQL.
type Client struct {
	*sqlutil.Store
}

// NewClient connects to MySQL and initializes the schema.
func NewClient(cfg *Config) (*Client, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
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
			id INT PRIMARY KEY,
			project VARCHAR(512) NOT NULL,
			client VARCHAR(255) NOT NULL DEFAULT '',
			type VARCHAR(128) NOT NULL DEFAULT '',
			status VARCHAR(128) NOT NULL DEFAULT '',
			progress INT NOT NULL DEFAULT 0,
			deadline VARCHAR(32),
			currency VARCHAR(8),
			value DOUBLE,
			priority VARCHAR(64) NOT NULL DEFAULT '',
			action VARCHAR(512) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS debts (
			id INT PRIMARY KEY,
			creditor VARCHAR(255) NOT NULL,
			company VARCHAR(255) NOT NULL DEFAULT '',
			amount DOUBLE NOT NULL DEFAULT 0,
			currency VARCHAR(8) NOT NULL DEFAULT '',
			case_number VARCHAR(64) NOT NULL DEFAULT '',
			status VARCHAR(128) NOT NULL DEFAULT '',
			deadline VARCHAR(32),
			action VARCHAR(512) NOT NULL DEFAULT '',
			priority VARCHAR(64) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS bureaucracy (
			id INT PRIMARY KEY,
			task VARCHAR(512) NOT NULL,
			authority VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(128) NOT NULL DEFAULT '',
			deadline VARCHAR(32),
			action VARCHAR(512) NOT NULL DEFAULT '',
			priority VARCHAR(64) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id INT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(64) NOT NULL DEFAULT '',
			type VARCHAR(128) NOT NULL DEFAULT '',
			university VARCHAR(255) NOT NULL DEFAULT '',
			field VARCHAR(255) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS chat_history (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			user_id VARCHAR(255) NOT NULL,
			message_type VARCHAR(32) NOT NULL,
			message TEXT NOT NULL,
			ai_model VARCHAR(128),
			tokens_used INT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_chat_history_user (user_id, created_at)
		)`,
	}
	for _, stmt := range statements {
		if _, err := c.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("mysql: initTables: %w", err)
		}
	}
	return nil
}

// SaveChatMessage appends a message to a user's chat history.
func (c *Client) SaveChatMessage(ctx context.Context, userID, role, content string, meta storage.ChatMeta) error {
	return c.Store.SaveChatMessage(ctx, userID, role, content, meta.Model, meta.TokensUsed)
}
