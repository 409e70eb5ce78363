package core

import (
	"time"

	"github.com/michal-ai/orchestrator-go/pkg/graph"
	"github.com/michal-ai/orchestrator-go/pkg/memory"
	"github.com/michal-ai/orchestrator-go/pkg/scoring"
	"github.com/michal-ai/orchestrator-go/pkg/storage"
)

// AppData is one snapshot of all source collections, as loaded from the
// store.
type AppData struct {
	Tasks       []storage.AcademicTask    `json:"tasks"`
	Debts       []storage.Debt            `json:"debts"`
	Bureaucracy []storage.BureaucracyItem `json:"bureaucracy"`
}

// ActiveProcess tracks one not-yet-completed item the agent is watching.
type ActiveProcess struct {
	// ID is the knowledge graph node id of the item.
	ID string `json:"id"`

	// Type is the item's domain.
	Type string `json:"type"`

	// Item is the normalized item.
	Item scoring.DomainItem `json:"item"`

	// IngestedAt is when the process was registered.
	IngestedAt time.Time `json:"ingestedAt"`
}

// UserProfile accumulates per-user facts the agent learns.
type UserProfile struct {
	CurrentBalance float64 `json:"currentBalance,omitempty"`
}

// State is the agent's mutable orchestration state.
type State struct {
	CurrentFocus     string          `json:"currentFocus,omitempty"`
	ActiveProcesses  []ActiveProcess `json:"activeProcesses"`
	PendingDecisions []string        `json:"pendingDecisions"`
	UserProfile      UserProfile     `json:"userProfile"`
}

// PriorityEntry is one item in the factor-annotated priority listing. It is
// the richer cousin of scoring.ScoredItem: besides the score it carries the
// contributing factors and the item's graph neighborhood.
type PriorityEntry struct {
	scoring.DomainItem

	// PriorityScore is the computed score for this listing. Unlike the
	// smart-overview score it is not clamped.
	PriorityScore int `json:"priorityScore"`

	// Factors names the score contributions that fired (overdue,
	// due_today, due_soon, this_week, complex).
	Factors []string `json:"factors"`

	// Context is the item's graph neighborhood; omitted in minimal
	// listings.
	Context *graph.Context `json:"context,omitempty"`
}

// Question is a contextual question the agent wants answered.
type Question struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	Text    string      `json:"text"`
	Context interface{} `json:"context,omitempty"`
	Options []string    `json:"options,omitempty"`
}

// SyncResult is the fabricated outcome of syncing one source.
type SyncResult struct {
	Source   string                   `json:"source"`
	Items    int                      `json:"items"`
	Duration int                      `json:"duration"`
	Status   string                   `json:"status"`
	NewData  []map[string]interface{} `json:"newData"`
}

// SyncReport aggregates the per-source results of a simulated sync.
type SyncReport struct {
	Results []SyncResult `json:"results"`
	Summary string       `json:"summary"`
}

// SuggestedAction is one agent-proposed next step.
type SuggestedAction struct {
	Type    string             `json:"type"`
	Action  string             `json:"action"`
	Target  scoring.DomainItem `json:"target"`
	Message string             `json:"message"`
}

// MemoryStats summarizes the memory maps.
type MemoryStats struct {
	ShortTermSize int `json:"shortTermSize"`
	LongTermSize  int `json:"longTermSize"`
	EpisodicCount int `json:"episodicCount"`
}

// MemorySnapshot is the memory portion of a state snapshot.
type MemorySnapshot struct {
	ShortTerm []*memory.Record `json:"shortTerm"`
	Patterns  memory.Pattern   `json:"patterns"`
	Stats     MemoryStats      `json:"stats"`
}

// GraphSnapshot is the knowledge graph portion of a state snapshot.
type GraphSnapshot struct {
	Nodes     int      `json:"nodes"`
	Edges     int      `json:"edges"`
	NodeTypes []string `json:"nodeTypes"`
}

// Snapshot is the full observable agent state.
type Snapshot struct {
	Memory         MemorySnapshot  `json:"memory"`
	KnowledgeGraph GraphSnapshot   `json:"knowledgeGraph"`
	State          State           `json:"state"`
	Priorities     []PriorityEntry `json:"priorities"`
}

// Metrics is the lightweight operational counter set.
type Metrics struct {
	Timestamp        string         `json:"timestamp"`
	Memory           map[string]int `json:"memory"`
	Graph            map[string]int `json:"graph"`
	ActiveProcesses  int            `json:"activeProcesses"`
	PendingDecisions int            `json:"pendingDecisions"`
}

// Overview is the scored smart-overview listing.
type Overview struct {
	// Items is the full scored list, highest priority first.
	Items []scoring.ScoredItem `json:"items"`

	// Stats aggregates urgency counts over the full list.
	Stats scoring.OverviewStats `json:"stats"`

	// TotalItems is the full list length, for callers that truncate.
	TotalItems int `json:"totalItems"`
}
