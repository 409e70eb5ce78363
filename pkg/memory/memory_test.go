package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michal-ai/orchestrator-go/pkg/memory"
)

var now = time.Date(2025, 9, 24, 12, 0, 0, 0, time.UTC)

func newStore() *memory.Store {
	s := memory.NewStore()
	s.SetClock(func() time.Time { return now })
	return s
}

func TestRememberShortTerm(t *testing.T) {
	s := newStore()
	s.Remember("task_1", map[string]interface{}{"title": "סמינר"}, memory.TierShort)

	assert.True(t, s.InShortTerm("task_1"))
	assert.False(t, s.InLongTerm("task_1"))
	assert.Equal(t, 1, s.ShortTermSize())
}

func TestRememberLongTermDirect(t *testing.T) {
	s := newStore()
	s.Remember("current_balance", map[string]interface{}{"amount": 1500.0}, memory.TierLong)

	assert.True(t, s.InLongTerm("current_balance"))
	assert.False(t, s.InShortTerm("current_balance"))
}

func TestPromotionAfterRepeatedAccess(t *testing.T) {
	s := newStore()
	value := map[string]interface{}{"title": "סמינר"}

	// Five writes stay below the threshold.
	for i := 0; i < 5; i++ {
		s.Remember("task_1", value, memory.TierShort)
	}
	assert.False(t, s.InLongTerm("task_1"))

	// The sixth pushes the access count over 5 and copies the record.
	s.Remember("task_1", value, memory.TierShort)
	assert.True(t, s.InLongTerm("task_1"))
	assert.True(t, s.InShortTerm("task_1"), "promotion copies, not moves")
}

func TestRecallBumpsAndPromotes(t *testing.T) {
	s := newStore()
	value := map[string]interface{}{"title": "סמינר"}
	s.Remember("task_1", value, memory.TierShort)

	for i := 0; i < 4; i++ {
		got := s.Recall("task_1")
		assert.Equal(t, value, got)
	}
	assert.False(t, s.InLongTerm("task_1"))

	s.Recall("task_1")
	assert.True(t, s.InLongTerm("task_1"))
}

func TestRecallUnknownKey(t *testing.T) {
	s := newStore()
	assert.Nil(t, s.Recall("missing"))
}

func TestRecallFallsBackToLongTerm(t *testing.T) {
	s := newStore()
	s.Remember("fact", map[string]interface{}{"answer": "כן"}, memory.TierLong)
	got := s.Recall("fact")
	require.NotNil(t, got)
	assert.Equal(t, "כן", got["answer"])
}

func TestRecentShortTerm(t *testing.T) {
	s := memory.NewStore()
	ts := now
	s.SetClock(func() time.Time {
		ts = ts.Add(time.Minute)
		return ts
	})

	for _, key := range []string{"a", "b", "c", "d"} {
		s.Remember(key, map[string]interface{}{"k": key}, memory.TierShort)
	}

	recent := s.RecentShortTerm(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Key)
	assert.Equal(t, "d", recent[1].Key)
}

func TestAnswerQuestion(t *testing.T) {
	s := newStore()
	assert.False(t, s.AnswerQuestion("", "תשובה"))
	assert.True(t, s.AnswerQuestion("42", "לטפל לפי דדליין"))
	assert.True(t, s.InLongTerm("question_42"))

	got := s.Recall("question_42")
	require.NotNil(t, got)
	assert.Equal(t, "לטפל לפי דדליין", got["answer"])
}

func TestCalculateImportance(t *testing.T) {
	deadline := func(days int) string {
		return now.AddDate(0, 0, days).Format("2006-01-02")
	}

	tests := []struct {
		name  string
		value map[string]interface{}
		want  int
	}{
		{"base", map[string]interface{}{"title": "x"}, 5},
		{"deadline tomorrow", map[string]interface{}{"deadline": deadline(1)}, 10},
		{"deadline in 3 days", map[string]interface{}{"deadline": deadline(3)}, 8},
		{"deadline in a week", map[string]interface{}{"deadline": deadline(7)}, 6},
		{"large amount", map[string]interface{}{"amount": 1500.0}, 7},
		{"critical overrides", map[string]interface{}{"priority": "critical"}, 10},
		{"capped at ten", map[string]interface{}{"deadline": deadline(3), "amount": 2000.0}, 10},
		{"nil value", nil, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, memory.CalculateImportance(tt.value, now))
		})
	}
}

func TestFindPattern(t *testing.T) {
	at := func(hour int) memory.Event {
		return memory.Event{Timestamp: time.Date(2025, 9, 24, hour, 0, 0, 0, time.UTC)}
	}

	pattern := memory.FindPattern([]memory.Event{at(9), at(14), at(14), at(20)})
	assert.Equal(t, 14, pattern.MostActiveHour)
	assert.Equal(t, 4, pattern.TotalEvents)

	empty := memory.FindPattern(nil)
	assert.Equal(t, -1, empty.MostActiveHour)
	assert.Equal(t, 0, empty.TotalEvents)
}

func TestRecordEpisode(t *testing.T) {
	s := newStore()
	s.RecordEpisode(memory.Event{Kind: "sync"})
	s.RecordEpisode(memory.Event{Kind: "chat", Timestamp: now.Add(time.Hour)})

	episodes := s.Episodes()
	require.Len(t, episodes, 2)
	assert.Equal(t, now, episodes[0].Timestamp, "zero timestamp filled from clock")
	assert.Equal(t, 2, s.EpisodicCount())
}
