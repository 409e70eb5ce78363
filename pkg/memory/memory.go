// Package memory implements the agent's two-tier key/value memory.
//
// Short-term and long-term memory are plain maps distinguished only by a
// promotion rule: a short-term record whose access count exceeds 5 is copied
// (not moved) into long-term memory. There is no TTL and no eviction; both
// maps grow for the lifetime of the process unless persisted and reloaded.
//
// The store is not safe for concurrent use; callers serialize access.
package memory

import (
	"fmt"
	"math"
	"time"
)

// Tier selects which memory map a Remember call writes to.
type Tier string

const (
	// TierShort writes to short-term memory (the default in the system).
	TierShort Tier = "short"

	// TierLong writes directly to long-term memory.
	TierLong Tier = "long"
)

// promotionThreshold is the access count above which a short-term record is
// copied into long-term memory.
const promotionThreshold = 5

// Record is a single remembered value with its access bookkeeping.
type Record struct {
	Key          string                 `json:"key"`
	Value        map[string]interface{} `json:"value"`
	Timestamp    time.Time              `json:"timestamp"`
	AccessCount  int                    `json:"accessCount"`
	Importance   int                    `json:"importance"`
	LastAccessed *time.Time             `json:"lastAccessed,omitempty"`
}

// Event is a timestamped occurrence used for pattern detection and the
// episodic log.
type Event struct {
	Timestamp time.Time              `json:"timestamp"`
	Kind      string                 `json:"kind,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Pattern is the result of FindPattern: the hour of day with the most
// events plus the total event count. It is a histogram mode, not a
// statistical model.
type Pattern struct {
	// MostActiveHour is the modal hour (0-23), or -1 when there are no
	// events with usable timestamps.
	MostActiveHour int `json:"mostActiveHour"`

	// TotalEvents is the number of events examined.
	TotalEvents int `json:"totalEvents"`
}

// Store holds the short-term and long-term maps plus the episodic log.
type Store struct {
	shortTerm map[string]*Record
	longTerm  map[string]*Record
	episodic  []Event
	patterns  map[string]interface{}

	clock func() time.Time
}

// NewStore creates an empty memory store.
func NewStore() *Store {
	return &Store{
		shortTerm: make(map[string]*Record),
		longTerm:  make(map[string]*Record),
		patterns:  make(map[string]interface{}),
		clock:     time.Now,
	}
}

// SetClock overrides the timestamp source. Intended for tests.
func (s *Store) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Remember stores a value under a key. Writing counts as an access: each
// Remember of an existing short-term key bumps its access count, and once
// the count exceeds 5 the record is copied into long-term memory (the
// short-term entry is retained).
func (s *Store) Remember(key string, value map[string]interface{}, tier Tier) {
	now := s.clock()

	if tier == TierLong {
		s.longTerm[key] = &Record{
			Key:         key,
			Value:       value,
			Timestamp:   now,
			AccessCount: 1,
			Importance:  CalculateImportance(value, now),
		}
		return
	}

	rec, ok := s.shortTerm[key]
	if !ok {
		rec = &Record{Key: key, Timestamp: now}
		s.shortTerm[key] = rec
	}
	rec.Value = value
	rec.AccessCount++
	rec.Importance = CalculateImportance(value, now)
	s.maybePromote(rec)
}

// Recall returns the value stored under a key, or nil when the key is
// unknown. Short-term memory is consulted first. A successful recall bumps
// the record's access count and may promote it to long-term memory.
func (s *Store) Recall(key string) map[string]interface{} {
	rec, ok := s.shortTerm[key]
	promotable := ok
	if !ok {
		rec, ok = s.longTerm[key]
	}
	if !ok {
		return nil
	}
	rec.AccessCount++
	now := s.clock()
	rec.LastAccessed = &now
	if promotable {
		s.maybePromote(rec)
	}
	return rec.Value
}

func (s *Store) maybePromote(rec *Record) {
	if rec.AccessCount > promotionThreshold {
		copied := *rec
		s.longTerm[rec.Key] = &copied
	}
}

// InShortTerm reports whether a key is present in short-term memory.
func (s *Store) InShortTerm(key string) bool {
	_, ok := s.shortTerm[key]
	return ok
}

// InLongTerm reports whether a key is present in long-term memory.
func (s *Store) InLongTerm(key string) bool {
	_, ok := s.longTerm[key]
	return ok
}

// ShortTermSize returns the number of short-term records.
func (s *Store) ShortTermSize() int { return len(s.shortTerm) }

// LongTermSize returns the number of long-term records.
func (s *Store) LongTermSize() int { return len(s.longTerm) }

// EpisodicCount returns the length of the episodic log.
func (s *Store) EpisodicCount() int { return len(s.episodic) }

// RecentShortTerm returns up to n short-term records ordered by timestamp,
// newest last.
func (s *Store) RecentShortTerm(n int) []*Record {
	records := make([]*Record, 0, len(s.shortTerm))
	for _, rec := range s.shortTerm {
		records = append(records, rec)
	}
	// Insertion order is not tracked; sort by timestamp instead.
	for i := 1; i < len(records); i++ {
		for j := i; j > 0 && records[j-1].Timestamp.After(records[j].Timestamp); j-- {
			records[j-1], records[j] = records[j], records[j-1]
		}
	}
	if len(records) > n {
		records = records[len(records)-n:]
	}
	return records
}

// RecordEpisode appends an event to the episodic log.
func (s *Store) RecordEpisode(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock()
	}
	s.episodic = append(s.episodic, event)
}

// Episodes returns the episodic log in insertion order.
func (s *Store) Episodes() []Event { return s.episodic }

// AnswerQuestion stores a user's answer to a contextual question under a
// long-term key so it survives persistence. Returns true when stored.
func (s *Store) AnswerQuestion(id, answer string) bool {
	if id == "" {
		return false
	}
	s.Remember(fmt.Sprintf("question_%s", id), map[string]interface{}{
		"answer":   answer,
		"answered": s.clock().Format(time.RFC3339),
	}, TierLong)
	return true
}

// CalculateImportance scores a value's importance on a 0-10 scale.
//
// The base importance is 5. A deadline within 1/3/7 days escalates it to
// 10/8/6, an amount above 1000 adds 2, and priority "critical" overrides to
// the maximum. Pure function, no side effects.
func CalculateImportance(value map[string]interface{}, now time.Time) int {
	score := 5

	if deadline, ok := stringField(value, "deadline"); ok && deadline != "" {
		if d, err := time.ParseInLocation("2006-01-02", deadline, now.Location()); err == nil {
			daysLeft := int(math.Ceil(d.Sub(now).Hours() / 24))
			switch {
			case daysLeft <= 1:
				score = 10
			case daysLeft <= 3:
				score = 8
			case daysLeft <= 7:
				score = 6
			}
		}
	}

	if amount, ok := numberField(value, "amount"); ok && amount > 1000 {
		score += 2
	}

	if priority, ok := stringField(value, "priority"); ok && priority == "critical" {
		score = 10
	}

	if score > 10 {
		score = 10
	}
	return score
}

// FindPattern groups events by hour of day and returns the modal hour plus
// the total count.
func FindPattern(events []Event) Pattern {
	hours := make(map[int]int)
	for _, event := range events {
		if event.Timestamp.IsZero() {
			continue
		}
		hours[event.Timestamp.Hour()]++
	}

	best, bestCount := -1, 0
	for hour, count := range hours {
		if count > bestCount || (count == bestCount && best != -1 && hour < best) {
			best, bestCount = hour, count
		}
	}
	return Pattern{MostActiveHour: best, TotalEvents: len(events)}
}

func stringField(value map[string]interface{}, key string) (string, bool) {
	if value == nil {
		return "", false
	}
	s, ok := value[key].(string)
	return s, ok
}

func numberField(value map[string]interface{}, key string) (float64, bool) {
	if value == nil {
		return 0, false
	}
	switch v := value[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	}
	return 0, false
}
