// Package sqlutil implements the storage.Store query surface over a
// database/sql connection.
//
// The SQLite, PostgreSQL and MySQL backends all share this implementation;
// they differ only in DSN construction, schema DDL and placeholder syntax.
package sqlutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/michal-ai/orchestrator-go/pkg/storage"
)

// Placeholder renders the n-th (1-based) query parameter for a dialect.
type Placeholder func(n int) string

// QuestionMark is the placeholder style used by SQLite and MySQL.
func QuestionMark(int) string { return "?" }

// Dollar is the placeholder style used by PostgreSQL.
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

// Store runs the shared item/chat queries against a SQL database.
type Store struct {
	db          *sql.DB
	placeholder Placeholder
}

// New wraps an open database connection.
func New(db *sql.DB, placeholder Placeholder) *Store {
	return &Store{db: db, placeholder: placeholder}
}

// DB exposes the underlying connection for backend-specific setup.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// ListTasks returns all academic tasks ordered by id.
func (s *Store) ListTasks(ctx context.Context) ([]storage.AcademicTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project, client, type, status, progress, deadline, currency, value, priority, action
		FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ListTasks: %w", err)
	}
	defer rows.Close()

	var tasks []storage.AcademicTask
	for rows.Next() {
		var t storage.AcademicTask
		var deadline, currency sql.NullString
		var value sql.NullFloat64
		if err := rows.Scan(&t.ID, &t.Project, &t.Client, &t.Type, &t.Status, &t.Progress,
			&deadline, &currency, &value, &t.Priority, &t.Action); err != nil {
			return nil, fmt.Errorf("ListTasks: %w", err)
		}
		t.Deadline = deadline.String
		t.Currency = currency.String
		t.Value = value.Float64
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListDebts returns all debt cases ordered by id.
func (s *Store) ListDebts(ctx context.Context) ([]storage.Debt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, creditor, company, amount, currency, case_number, status, deadline, action, priority
		FROM debts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ListDebts: %w", err)
	}
	defer rows.Close()

	var debts []storage.Debt
	for rows.Next() {
		var d storage.Debt
		var deadline sql.NullString
		if err := rows.Scan(&d.ID, &d.Creditor, &d.Company, &d.Amount, &d.Currency,
			&d.CaseNumber, &d.Status, &deadline, &d.Action, &d.Priority); err != nil {
			return nil, fmt.Errorf("ListDebts: %w", err)
		}
		d.Deadline = deadline.String
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

// ListBureaucracy returns all bureaucracy items ordered by id.
func (s *Store) ListBureaucracy(ctx context.Context) ([]storage.BureaucracyItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task, authority, status, deadline, action, priority
		FROM bureaucracy ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ListBureaucracy: %w", err)
	}
	defer rows.Close()

	var items []storage.BureaucracyItem
	for rows.Next() {
		var b storage.BureaucracyItem
		var deadline sql.NullString
		if err := rows.Scan(&b.ID, &b.Task, &b.Authority, &b.Status, &deadline, &b.Action, &b.Priority); err != nil {
			return nil, fmt.Errorf("ListBureaucracy: %w", err)
		}
		b.Deadline = deadline.String
		items = append(items, b)
	}
	return items, rows.Err()
}

// ListClients returns all clients ordered by id.
func (s *Store) ListClients(ctx context.Context) ([]storage.Client, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, phone, type, university, field
		FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ListClients: %w", err)
	}
	defer rows.Close()

	var clients []storage.Client
	for rows.Next() {
		var c storage.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Type, &c.University, &c.Field); err != nil {
			return nil, fmt.Errorf("ListClients: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// SaveChatMessage appends a chat message for a user.
func (s *Store) SaveChatMessage(ctx context.Context, userID, role, content, model string, tokens int) error {
	query := fmt.Sprintf(`
		INSERT INTO chat_history (user_id, message_type, message, ai_model, tokens_used)
		VALUES (%s, %s, %s, %s, %s)`,
		s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4), s.placeholder(5))
	if _, err := s.db.ExecContext(ctx, query, userID, role, content, model, tokens); err != nil {
		return fmt.Errorf("SaveChatMessage: %w", err)
	}
	return nil
}

// ChatHistory returns the most recent messages for a user, oldest first.
func (s *Store) ChatHistory(ctx context.Context, userID string, limit int) ([]storage.ChatMessage, error) {
	query := fmt.Sprintf(`
		SELECT message_type, message, created_at
		FROM chat_history WHERE user_id = %s
		ORDER BY created_at DESC, id DESC LIMIT %s`,
		s.placeholder(1), s.placeholder(2))
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ChatHistory: %w", err)
	}
	defer rows.Close()

	var messages []storage.ChatMessage
	for rows.Next() {
		var m storage.ChatMessage
		if err := rows.Scan(&m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("ChatHistory: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse to oldest-first for prompt assembly.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
