package core

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/michal-ai/orchestrator-go/pkg/graph"
	"github.com/michal-ai/orchestrator-go/pkg/memory"
	"github.com/michal-ai/orchestrator-go/pkg/scoring"
	"github.com/michal-ai/orchestrator-go/pkg/storage"
)

// Client is the orchestrator agent: it loads items from the store, keeps the
// knowledge graph and memory up to date, and serves scored listings and
// derived views.
//
// A Client is constructed explicitly and injected into request handlers;
// there is no package-level instance. It is safe for concurrent use.
type Client struct {
	store  storage.Store
	graph  *graph.Graph
	memory *memory.Store
	node   *snowflake.Node

	clock      func() time.Time
	rng        *rand.Rand
	memoryPath string

	mu       sync.Mutex
	state    State
	ingested bool
}

// Option configures a Client.
type Option func(*Client)

// WithClock overrides the reference time source. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// WithRandSource overrides the randomness used by sync simulation.
// Intended for tests.
func WithRandSource(src rand.Source) Option {
	return func(c *Client) {
		c.rng = rand.New(src)
	}
}

// WithMemoryPath enables memory persistence to the given JSON file. Any
// existing file is loaded opportunistically at construction.
func WithMemoryPath(path string) Option {
	return func(c *Client) {
		c.memoryPath = path
	}
}

// NewClient creates an orchestrator agent on top of an item store.
func NewClient(store storage.Store, opts ...Option) (*Client, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, NewAgentError("NewClient", err)
	}

	c := &Client{
		store:  store,
		graph:  graph.New(),
		memory: memory.NewStore(),
		node:   node,
		clock:  time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		state: State{
			ActiveProcesses:  []ActiveProcess{},
			PendingDecisions: []string{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.memoryPath != "" {
		// Best effort: a missing or corrupt memory file must not prevent
		// startup.
		_ = c.memory.Load(c.memoryPath)
	}
	return c, nil
}

// Store returns the underlying item store.
func (c *Client) Store() storage.Store { return c.store }

// NewID returns a fresh unique identifier, e.g. for follow-up tasks created
// by smart actions.
func (c *Client) NewID() string { return c.node.Generate().String() }

// LoadSnapshot reads all three collections from the store.
func (c *Client) LoadSnapshot(ctx context.Context) (AppData, error) {
	tasks, err := c.store.ListTasks(ctx)
	if err != nil {
		return AppData{}, NewAgentError("LoadSnapshot", fmt.Errorf("%w: %v", ErrStorageOperation, err))
	}
	debts, err := c.store.ListDebts(ctx)
	if err != nil {
		return AppData{}, NewAgentError("LoadSnapshot", fmt.Errorf("%w: %v", ErrStorageOperation, err))
	}
	bureaucracy, err := c.store.ListBureaucracy(ctx)
	if err != nil {
		return AppData{}, NewAgentError("LoadSnapshot", fmt.Errorf("%w: %v", ErrStorageOperation, err))
	}
	return AppData{Tasks: tasks, Debts: debts, Bureaucracy: bureaucracy}, nil
}

// Overview loads the current snapshot and returns the scored listing.
func (c *Client) Overview(ctx context.Context) (Overview, error) {
	data, err := c.LoadSnapshot(ctx)
	if err != nil {
		return Overview{}, err
	}
	items := UnifyItems(data)
	scored, stats := scoring.ScoreAndRank(items, c.clock())
	return Overview{Items: scored, Stats: stats, TotalItems: len(scored)}, nil
}

// Ingest feeds a snapshot into the knowledge graph and memory. Items whose
// status marks them completed are not tracked as active processes.
// Ingestion is idempotent: repeating it with the same snapshot neither
// duplicates nodes nor edges nor active processes.
func (c *Client) Ingest(data AppData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ingestLocked(data)
}

// EnsureIngested performs the initial ingest exactly once.
func (c *Client) EnsureIngested(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ingested {
		return nil
	}
	data, err := c.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	c.ingestLocked(data)
	return nil
}

func (c *Client) ingestLocked(data AppData) {
	now := c.clock()
	active := make(map[string]bool, len(c.state.ActiveProcesses))
	for _, p := range c.state.ActiveProcesses {
		active[p.ID] = true
	}

	for _, item := range UnifyItems(data) {
		nodeID := c.graph.AddNode(string(item.Domain), nodeData(item))
		c.memory.Remember(nodeID, itemValue(item), memory.TierShort)

		if item.Status != "" && item.Status != "completed" && item.Status != "הושלם" && !active[nodeID] {
			active[nodeID] = true
			c.state.ActiveProcesses = append(c.state.ActiveProcesses, ActiveProcess{
				ID:         nodeID,
				Type:       string(item.Domain),
				Item:       item,
				IngestedAt: now,
			})
		}
	}
	c.ingested = true
}

// PersistMemory writes agent memory to the configured path, if any.
func (c *Client) PersistMemory() error {
	if c.memoryPath == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memory.Persist(c.memoryPath)
}

// nodeData projects an item onto the attributes relationship detection
// inspects.
func nodeData(item scoring.DomainItem) graph.NodeData {
	return graph.NodeData{
		ID:        item.ID,
		Client:    item.Client,
		Authority: item.Authority,
		Creditor:  item.Creditor,
		Deadline:  item.Deadline,
		Payload:   item,
	}
}

// itemValue projects an item onto the fields importance calculation reads.
func itemValue(item scoring.DomainItem) map[string]interface{} {
	value := map[string]interface{}{
		"id":       item.ID,
		"title":    item.Title,
		"priority": item.Priority,
		"status":   item.Status,
	}
	if item.Deadline != "" {
		value["deadline"] = item.Deadline
	}
	if item.Value != 0 {
		value["amount"] = item.Value
	}
	return value
}
