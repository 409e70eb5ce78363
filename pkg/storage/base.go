// Package storage defines the item store interface and the record shapes
// shared by all backends.
//
// A Store serves the three source collections (academic tasks, debts,
// bureaucracy items) plus the chat history. Backends exist for static
// fixture data, SQLite, PostgreSQL and MySQL; all SQL backends share the
// same schema and differ only in DSNs and placeholder syntax.
package storage

import (
	"context"
	"time"
)

// AcademicTask is one academic writing/research engagement.
type AcademicTask struct {
	ID       int     `json:"id"`
	Project  string  `json:"project"`
	Client   string  `json:"client"`
	Type     string  `json:"type"`
	Status   string  `json:"status"`
	Progress int     `json:"progress"`
	Deadline string  `json:"deadline"`
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
	Priority string  `json:"priority"`
	Action   string  `json:"action"`
}

// Debt is one debt collection case.
type Debt struct {
	ID         int     `json:"id"`
	Creditor   string  `json:"creditor"`
	Company    string  `json:"company"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	CaseNumber string  `json:"case_number"`
	Status     string  `json:"status"`
	Deadline   string  `json:"deadline"`
	Action     string  `json:"action"`
	Priority   string  `json:"priority"`
}

// BureaucracyItem is one pending dealing with an authority.
type BureaucracyItem struct {
	ID        int    `json:"id"`
	Task      string `json:"task"`
	Authority string `json:"authority"`
	Status    string `json:"status"`
	Deadline  string `json:"deadline"`
	Action    string `json:"action"`
	Priority  string `json:"priority"`
}

// Client is a person or institution the academic work is done for.
type Client struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Type       string `json:"type"`
	University string `json:"university"`
	Field      string `json:"field"`
}

// ChatMessage is one entry in the per-user chat history.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMeta carries optional bookkeeping for an AI reply.
type ChatMeta struct {
	Model      string `json:"model,omitempty"`
	TokensUsed int    `json:"tokens_used,omitempty"`
}

// Store is the backend interface for the source collections and the chat
// history.
type Store interface {
	// ListTasks returns all academic tasks.
	ListTasks(ctx context.Context) ([]AcademicTask, error)

	// ListDebts returns all debt cases.
	ListDebts(ctx context.Context) ([]Debt, error)

	// ListBureaucracy returns all bureaucracy items.
	ListBureaucracy(ctx context.Context) ([]BureaucracyItem, error)

	// ListClients returns all known clients.
	ListClients(ctx context.Context) ([]Client, error)

	// SaveChatMessage appends a message to a user's chat history.
	SaveChatMessage(ctx context.Context, userID, role, content string, meta ChatMeta) error

	// ChatHistory returns the most recent messages for a user, oldest
	// first, up to limit.
	ChatHistory(ctx context.Context, userID string, limit int) ([]ChatMessage, error)

	// Close releases backend resources.
	Close() error
}
