package core_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michal-ai/orchestrator-go/pkg/core"
	"github.com/michal-ai/orchestrator-go/pkg/storage"
)

var now = time.Date(2025, 9, 24, 12, 0, 0, 0, time.UTC)

func deadlineIn(days int) string {
	return now.AddDate(0, 0, days).Format("2006-01-02")
}

// stubStore serves a fixed snapshot.
type stubStore struct {
	tasks       []storage.AcademicTask
	debts       []storage.Debt
	bureaucracy []storage.BureaucracyItem
}

func (s *stubStore) ListTasks(ctx context.Context) ([]storage.AcademicTask, error) {
	return s.tasks, nil
}

func (s *stubStore) ListDebts(ctx context.Context) ([]storage.Debt, error) {
	return s.debts, nil
}

func (s *stubStore) ListBureaucracy(ctx context.Context) ([]storage.BureaucracyItem, error) {
	return s.bureaucracy, nil
}

func (s *stubStore) ListClients(ctx context.Context) ([]storage.Client, error) {
	return nil, nil
}

func (s *stubStore) SaveChatMessage(ctx context.Context, userID, role, content string, meta storage.ChatMeta) error {
	return nil
}

func (s *stubStore) ChatHistory(ctx context.Context, userID string, limit int) ([]storage.ChatMessage, error) {
	return nil, nil
}

func (s *stubStore) Close() error { return nil }

func testStore() *stubStore {
	return &stubStore{
		tasks: []storage.AcademicTask{
			{ID: 1, Project: "סמינר פסיכולוגיה - כרמית", Client: "כרמית לוי", Status: "לסיום",
				Progress: 85, Deadline: deadlineIn(0), Value: 800, Priority: "דחוף"},
			{ID: 2, Project: "תזה - מרב", Client: "מרב שטרן", Status: "בעבודה",
				Progress: 65, Value: 2500, Priority: "בינוני"},
		},
		debts: []storage.Debt{
			{ID: 1, Creditor: "PAIR Finance", Company: "Vodafone", Amount: 89.12,
				CaseNumber: "PF2024-8901", Status: "פתוח", Deadline: deadlineIn(2), Priority: "דחוף"},
		},
		bureaucracy: []storage.BureaucracyItem{
			{ID: 1, Task: "ביטוח בריאות", Authority: "TK", Status: "blocked",
				Deadline: deadlineIn(4), Priority: "דחוף"},
		},
	}
}

func newAgent(t *testing.T) *core.Client {
	t.Helper()
	agent, err := core.NewClient(testStore(),
		core.WithClock(func() time.Time { return now }),
		core.WithRandSource(rand.NewSource(1)),
	)
	require.NoError(t, err)
	return agent
}

func TestOverview(t *testing.T) {
	agent := newAgent(t)

	overview, err := agent.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, overview.TotalItems)
	require.Len(t, overview.Items, 4)

	// The due-today task outranks everything else.
	assert.Equal(t, "task-1", overview.Items[0].ID)
	assert.Equal(t, 1, overview.Stats.Critical)
}

func TestIngestIdempotent(t *testing.T) {
	agent := newAgent(t)
	ctx := context.Background()

	require.NoError(t, agent.EnsureIngested(ctx))
	first := agent.Metrics()

	// Re-ingesting the same snapshot changes nothing.
	data, err := agent.LoadSnapshot(ctx)
	require.NoError(t, err)
	agent.Ingest(data)
	second := agent.Metrics()

	assert.Equal(t, first.Graph["nodes"], second.Graph["nodes"])
	assert.Equal(t, first.Graph["edges"], second.Graph["edges"])
	assert.Equal(t, first.ActiveProcesses, second.ActiveProcesses)
}

func TestIngestTracksActiveProcesses(t *testing.T) {
	agent := newAgent(t)
	require.NoError(t, agent.EnsureIngested(context.Background()))

	state := agent.State()
	// All four stub items carry a non-completed status.
	assert.Len(t, state.ActiveProcesses, 4)
}

func TestIngestSkipsCompleted(t *testing.T) {
	store := testStore()
	store.tasks[1].Status = "הושלם"

	agent, err := core.NewClient(store, core.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	require.NoError(t, agent.EnsureIngested(context.Background()))

	assert.Len(t, agent.State().ActiveProcesses, 3)
}

func TestCalculatePriorities(t *testing.T) {
	agent := newAgent(t)

	priorities, err := agent.CalculatePriorities(context.Background())
	require.NoError(t, err)
	require.Len(t, priorities, 4)

	byID := map[string]core.PriorityEntry{}
	for _, entry := range priorities {
		byID[entry.ID] = entry
	}

	// task-1: due today (100, overdue factor since daysLeft == 0) + דחוף
	// (50) + amount 800 (10).
	assert.Equal(t, 160, byID["task-1"].PriorityScore)
	assert.Contains(t, byID["task-1"].Factors, core.FactorOverdue)

	// debt-1: due in 2 days (70) + דחוף (50) = 120.
	assert.Equal(t, 120, byID["debt-1"].PriorityScore)
	assert.Contains(t, byID["debt-1"].Factors, core.FactorDueSoon)

	// bureau-1: this week (50) + דחוף (50) + blocked (40) = 140.
	assert.Equal(t, 140, byID["bureau-1"].PriorityScore)
	assert.Contains(t, byID["bureau-1"].Factors, core.FactorBlocked)

	// task-2: no deadline, בינוני (10) + amount 2500 (20) = 30.
	assert.Equal(t, 30, byID["task-2"].PriorityScore)
	assert.Empty(t, byID["task-2"].Factors)

	// Descending order.
	for i := 1; i < len(priorities); i++ {
		assert.GreaterOrEqual(t, priorities[i-1].PriorityScore, priorities[i].PriorityScore)
	}

	// Every ingested item carries its graph neighborhood.
	require.NotNil(t, byID["task-1"].Context)
}

func TestPriorityStatusAcceptsBothLanguages(t *testing.T) {
	// The source collections carry Hebrew statuses, so the blocked/waiting
	// factors match both the English and the Hebrew labels.
	store := testStore()
	store.tasks[1].Status = "בהמתנה"
	store.bureaucracy[0].Status = "חסום"

	agent, err := core.NewClient(store, core.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	priorities, err := agent.CalculatePriorities(context.Background())
	require.NoError(t, err)

	byID := map[string]core.PriorityEntry{}
	for _, entry := range priorities {
		byID[entry.ID] = entry
	}

	// task-2: בינוני (10) + amount 2500 (20) + waiting (20) = 50.
	assert.Equal(t, 50, byID["task-2"].PriorityScore)
	assert.Contains(t, byID["task-2"].Factors, core.FactorWaiting)

	// bureau-1: this week (50) + דחוף (50) + blocked (40) = 140.
	assert.Equal(t, 140, byID["bureau-1"].PriorityScore)
	assert.Contains(t, byID["bureau-1"].Factors, core.FactorBlocked)
}

func TestGenerateQuestions(t *testing.T) {
	agent := newAgent(t)

	questions, err := agent.GenerateQuestions(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, questions)

	types := map[string]int{}
	for _, q := range questions {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Text)
		types[q.Type]++
	}
	// task-2 is in progress with no deadline, bureau-1 is blocked.
	assert.Equal(t, 1, types["estimation"])
	assert.Equal(t, 1, types["blocker"])
}

func TestAnswerQuestion(t *testing.T) {
	agent := newAgent(t)
	assert.True(t, agent.AnswerQuestion("7", "לטפל לפי דדליין"))
	assert.False(t, agent.AnswerQuestion("", "x"))
}

func TestSimulateSync(t *testing.T) {
	agent := newAgent(t)

	report := agent.SimulateSync(nil)
	require.Len(t, report.Results, 3)

	total := 0
	for _, result := range report.Results {
		assert.Equal(t, "success", result.Status)
		assert.GreaterOrEqual(t, result.Items, 1)
		assert.LessOrEqual(t, result.Items, 5)
		assert.GreaterOrEqual(t, result.Duration, 300)
		assert.Less(t, result.Duration, 1000)
		total += result.Items
	}
	assert.Contains(t, report.Summary, "Synced")

	// Fabricated emails land in the graph.
	metrics := agent.Metrics()
	assert.Greater(t, metrics.Graph["nodes"], 0)

	custom := agent.SimulateSync([]string{"calendar"})
	require.Len(t, custom.Results, 1)
	assert.Equal(t, "calendar", custom.Results[0].Source)
}

func TestSnapshot(t *testing.T) {
	agent := newAgent(t)

	snapshot, err := agent.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, snapshot.KnowledgeGraph.Nodes)
	assert.Equal(t, 4, snapshot.Memory.Stats.ShortTermSize)
	assert.LessOrEqual(t, len(snapshot.Priorities), 5)
	assert.Len(t, snapshot.State.ActiveProcesses, 4)
}

func TestSuggestActions(t *testing.T) {
	agent := newAgent(t)

	actions, err := agent.SuggestActions(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, actions)

	byAction := map[string]core.SuggestedAction{}
	for _, action := range actions {
		byAction[action.Action] = action
	}

	// task-1 is due today (overdue factor), debt-1 is due soon, bureau-1 is
	// blocked.
	require.Contains(t, byAction, "handle_now")
	assert.Contains(t, byAction["handle_now"].Message, "באיחור")

	require.Contains(t, byAction, "prepare_objection")
	assert.Contains(t, byAction["prepare_objection"].Message, "PAIR Finance")

	require.Contains(t, byAction, "check_blocker")
	assert.Contains(t, byAction["check_blocker"].Message, "ביטוח בריאות")
}

func TestUpdateFinancialBalance(t *testing.T) {
	agent := newAgent(t)
	agent.UpdateFinancialBalance(1500.50)
	assert.Equal(t, 1500.50, agent.State().UserProfile.CurrentBalance)
}
