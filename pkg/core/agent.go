package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/michal-ai/orchestrator-go/pkg/graph"
	"github.com/michal-ai/orchestrator-go/pkg/memory"
	"github.com/michal-ai/orchestrator-go/pkg/scoring"
)

// Factor names attached to priority entries.
const (
	FactorOverdue  = "overdue"
	FactorDueToday = "due_today"
	FactorDueSoon  = "due_soon"
	FactorThisWeek = "this_week"
	FactorBlocked  = "blocked"
	FactorWaiting  = "waiting"
	FactorComplex  = "complex"
)

// CalculatePriorities scores every item with the factor-annotated weighting
// and returns the list sorted by descending score. Unlike the smart-overview
// score this one is unbounded and records which contributions fired,
// including a graph complexity bonus for items with more than three related
// nodes.
func (c *Client) CalculatePriorities(ctx context.Context) ([]PriorityEntry, error) {
	if err := c.EnsureIngested(ctx); err != nil {
		return nil, err
	}
	data, err := c.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	items := UnifyItems(data)
	entries := make([]PriorityEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, c.scorePriorityLocked(item, now))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PriorityScore > entries[j].PriorityScore
	})
	return entries, nil
}

func (c *Client) scorePriorityLocked(item scoring.DomainItem, now time.Time) PriorityEntry {
	score := 0
	factors := []string{}

	if item.Deadline != "" {
		daysLeft := scoring.DaysLeft(item.Deadline, now)
		switch {
		case daysLeft <= 0:
			score += 100
			factors = append(factors, FactorOverdue)
		case daysLeft <= 1:
			score += 90
			factors = append(factors, FactorDueToday)
		case daysLeft <= 3:
			score += 70
			factors = append(factors, FactorDueSoon)
		case daysLeft <= 7:
			score += 50
			factors = append(factors, FactorThisWeek)
		default:
			score += 20
		}
	}

	switch item.Priority {
	case "critical", "דחוף":
		score += 50
	case "high", "גבוה":
		score += 30
	case "medium", "בינוני":
		score += 10
	}

	switch {
	case item.Value > 5000:
		score += 30
	case item.Value > 1000:
		score += 20
	case item.Value > 500:
		score += 10
	}

	switch item.Status {
	case "blocked", "חסום":
		score += 40
		factors = append(factors, FactorBlocked)
	case "waiting", "בהמתנה":
		score += 20
		factors = append(factors, FactorWaiting)
	}

	entry := PriorityEntry{DomainItem: item, Factors: factors}

	nodeID := fmt.Sprintf("%s_%s", item.Domain, item.ID)
	graphCtx := c.graph.GetContext(nodeID, 2)
	if graphCtx.Node != nil {
		entry.Context = &graphCtx
		if len(graphCtx.Related) > 3 {
			score += 15
			entry.Factors = append(entry.Factors, FactorComplex)
		}
	}

	entry.PriorityScore = score
	return entry
}

// GenerateQuestions derives contextual questions from the current
// priorities, memory patterns and agent state: completion estimates for
// undated in-progress work, blocker probes, an activity pattern
// confirmation, and a strategy choice when critical items pile up.
func (c *Client) GenerateQuestions(ctx context.Context) ([]Question, error) {
	priorities, err := c.CalculatePriorities(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	questions := []Question{}

	for _, entry := range priorities {
		if len(questions) >= 3 {
			break
		}
		switch {
		case entry.Deadline == "" && entry.Progress > 0 && entry.Progress < 100:
			questions = append(questions, Question{
				ID:      c.node.Generate().String(),
				Type:    "estimation",
				Text:    fmt.Sprintf("מתי את מעריכה שתסיימי את %s?", entry.Title),
				Context: entry.DomainItem,
			})
		case entry.Status == "blocked" || entry.Status == "חסום":
			questions = append(questions, Question{
				ID:      c.node.Generate().String(),
				Type:    "blocker",
				Text:    fmt.Sprintf("מה חוסם את %s?", entry.Title),
				Context: entry.DomainItem,
			})
		}
	}

	if pattern := memory.FindPattern(c.memory.Episodes()); pattern.MostActiveHour >= 0 && pattern.TotalEvents >= 5 {
		questions = append(questions, Question{
			ID:   c.node.Generate().String(),
			Type: "pattern",
			Text: fmt.Sprintf("שמתי לב שאת הכי פעילה בשעה %d:00. לתזמן את המשימות הקשות לשעה הזאת?", pattern.MostActiveHour),
		})
	}

	critical := 0
	for _, entry := range priorities {
		if entry.PriorityScore >= 100 {
			critical++
		}
	}
	if critical > 3 {
		questions = append(questions, Question{
			ID:   c.node.Generate().String(),
			Type: "strategy",
			Text: fmt.Sprintf("יש %d משימות קריטיות. איך לתעדף?", critical),
			Options: []string{
				"לטפל לפי דדליין",
				"לטפל לפי סכום כסף",
				"להתמקד בתחום אחד",
			},
		})
	}

	return questions, nil
}

// AnswerQuestion records the user's answer in long-term memory. Returns
// false when the question id is empty.
func (c *Client) AnswerQuestion(id, answer string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memory.AnswerQuestion(id, answer)
}

// defaultSyncSources are the sources SimulateSync polls when the caller
// passes none.
var defaultSyncSources = []string{"emails", "calendar", "documents"}

// SimulateSync fabricates a sync run against external sources. Each source
// reports one to five items; fabricated email items are ingested into the
// knowledge graph so later runs can correlate against them. The run itself
// is recorded in short-term memory under "last_sync".
func (c *Client) SimulateSync(sources []string) SyncReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(sources) == 0 {
		sources = defaultSyncSources
	}

	now := c.clock()
	total := 0
	results := make([]SyncResult, 0, len(sources))
	for _, source := range sources {
		items := c.rng.Intn(5) + 1
		total += items

		result := SyncResult{
			Source:   source,
			Items:    items,
			Duration: c.rng.Intn(700) + 300,
			Status:   "success",
			NewData:  []map[string]interface{}{},
		}

		if source == "emails" {
			for i := 0; i < items; i++ {
				id := c.node.Generate().String()
				email := map[string]interface{}{
					"id":       id,
					"subject":  fmt.Sprintf("הודעה חדשה %d", i+1),
					"received": now.Format(time.RFC3339),
				}
				c.graph.AddNode("email", graphEmailData(id, now))
				result.NewData = append(result.NewData, email)
			}
		}
		results = append(results, result)
	}

	c.memory.Remember("last_sync", map[string]interface{}{
		"at":    now.Format(time.RFC3339),
		"items": total,
	}, memory.TierShort)
	c.memory.RecordEpisode(memory.Event{
		Timestamp: now,
		Kind:      "sync",
		Data:      map[string]interface{}{"items": total},
	})

	return SyncReport{
		Results: results,
		Summary: fmt.Sprintf("Synced %d items", total),
	}
}

// Snapshot returns the full observable agent state: recent memory, the
// detected activity pattern, graph size, orchestration state, and the top
// five priorities.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	priorities, err := c.CalculatePriorities(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if len(priorities) > 5 {
		priorities = priorities[:5]
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Memory: MemorySnapshot{
			ShortTerm: c.memory.RecentShortTerm(10),
			Patterns:  memory.FindPattern(c.memory.Episodes()),
			Stats: MemoryStats{
				ShortTermSize: c.memory.ShortTermSize(),
				LongTermSize:  c.memory.LongTermSize(),
				EpisodicCount: c.memory.EpisodicCount(),
			},
		},
		KnowledgeGraph: GraphSnapshot{
			Nodes:     c.graph.NodeCount(),
			Edges:     c.graph.EdgeCount(),
			NodeTypes: c.graph.NodeTypes(),
		},
		State:      c.state,
		Priorities: priorities,
	}, nil
}

// Metrics returns the lightweight counter set for monitoring.
func (c *Client) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Metrics{
		Timestamp: c.clock().Format(time.RFC3339),
		Memory: map[string]int{
			"shortTerm": c.memory.ShortTermSize(),
			"longTerm":  c.memory.LongTermSize(),
			"episodic":  c.memory.EpisodicCount(),
		},
		Graph: map[string]int{
			"nodes": c.graph.NodeCount(),
			"edges": c.graph.EdgeCount(),
		},
		ActiveProcesses:  len(c.state.ActiveProcesses),
		PendingDecisions: len(c.state.PendingDecisions),
	}
}

// SuggestActions proposes concrete next steps from the current priorities:
// overdue items demand immediate handling, debts nearing their deadline get
// an objection draft, blocked items get a blocker check.
func (c *Client) SuggestActions(ctx context.Context) ([]SuggestedAction, error) {
	priorities, err := c.CalculatePriorities(ctx)
	if err != nil {
		return nil, err
	}

	actions := []SuggestedAction{}
	for _, entry := range priorities {
		switch {
		case hasFactor(entry.Factors, FactorOverdue):
			actions = append(actions, SuggestedAction{
				Type:    "urgent",
				Action:  "handle_now",
				Target:  entry.DomainItem,
				Message: fmt.Sprintf("⚠️ %s באיחור! צריך לטפל דחוף", entry.Title),
			})
		case entry.Domain == scoring.DomainDebt && hasFactor(entry.Factors, FactorDueSoon):
			actions = append(actions, SuggestedAction{
				Type:    "prepare",
				Action:  "prepare_objection",
				Target:  entry.DomainItem,
				Message: fmt.Sprintf("להכין התנגדות ל-%s", entry.Creditor),
			})
		case hasFactor(entry.Factors, FactorBlocked):
			actions = append(actions, SuggestedAction{
				Type:    "investigate",
				Action:  "check_blocker",
				Target:  entry.DomainItem,
				Message: fmt.Sprintf("לבדוק מה חוסם את %s", entry.Title),
			})
		}
	}
	return actions, nil
}

func hasFactor(factors []string, name string) bool {
	for _, f := range factors {
		if f == name {
			return true
		}
	}
	return false
}

// UpdateFinancialBalance records the user's current balance in both the
// orchestration state and long-term memory.
func (c *Client) UpdateFinancialBalance(balance float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.UserProfile.CurrentBalance = balance
	c.memory.Remember("current_balance", map[string]interface{}{
		"amount":  balance,
		"updated": c.clock().Format(time.RFC3339),
	}, memory.TierLong)
}

// State returns a copy of the orchestration state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.state
	state.ActiveProcesses = append([]ActiveProcess{}, c.state.ActiveProcesses...)
	state.PendingDecisions = append([]string{}, c.state.PendingDecisions...)
	return state
}

// graphEmailData builds the node attributes for a fabricated synced email.
func graphEmailData(id string, now time.Time) graph.NodeData {
	return graph.NodeData{
		ID: id,
		Payload: map[string]interface{}{
			"received": now.Format(time.RFC3339),
		},
	}
}
