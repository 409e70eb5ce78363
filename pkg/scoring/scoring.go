// Package scoring ranks heterogeneous life-management items (academic tasks,
// debt collection cases, bureaucracy entries) by a deterministic urgency
// heuristic.
//
// The score is a plain integer in [0,200] assembled from four additive
// components: time left until the deadline, the item's declared priority
// label, its domain, and its status. There is no randomness and no model
// behind it; given the same items and the same reference time the ranking is
// always identical.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Domain identifies which collection an item came from.
type Domain string

const (
	// DomainAcademic marks academic writing and research work.
	DomainAcademic Domain = "academic"

	// DomainDebt marks debt collection cases.
	DomainDebt Domain = "debt"

	// DomainBureaucracy marks dealings with authorities.
	DomainBureaucracy Domain = "bureaucracy"
)

// Urgency labels, derived primarily from days-to-deadline. The labels are
// Hebrew display strings and are part of the API contract.
const (
	UrgencyCritical = "קריטי"
	UrgencyVeryHigh = "גבוה מאוד"
	UrgencyHigh     = "גבוה"
	UrgencyMedium   = "בינוני"
	UrgencyLow      = "נמוך"
)

// NoDeadlineDays is the sentinel DaysLeft value for items without a deadline.
const NoDeadlineDays = 999

// NoDeadlineText is the display text for items without a deadline.
const NoDeadlineText = "ללא דדליין"

// MaxScore is the upper clamp for a computed priority score.
const MaxScore = 200

// DomainItem is the canonical shape every item is normalized to before
// scoring. Domain-specific fields (Client, Authority, Creditor, CaseNumber)
// are carried through untouched for display and for graph correlation.
type DomainItem struct {
	// ID is unique within the unified listing (e.g. "task-3", "debt-1").
	ID string `json:"id"`

	// Domain tags the source collection.
	Domain Domain `json:"domain"`

	// Title is the display string: project name, "company - creditor", or
	// the bureaucratic task name.
	Title string `json:"title"`

	// Description is a secondary display line (case number, authority, ...).
	Description string `json:"description,omitempty"`

	// Deadline is an ISO date string ("2006-01-02"). Empty means no
	// deadline, which is treated as lowest urgency.
	Deadline string `json:"deadline,omitempty"`

	// Priority is the declared priority label in the source locale
	// (urgent/high/medium/low or דחוף/גבוה/בינוני/נמוך).
	Priority string `json:"priority,omitempty"`

	// Status is a free-text status string; known values contribute a bonus.
	Status string `json:"status,omitempty"`

	// Action is the suggested next step for the item.
	Action string `json:"action,omitempty"`

	// Value is the monetary magnitude, if any. Currency is cosmetic and is
	// never converted or summed across items.
	Value    float64 `json:"value,omitempty"`
	Currency string  `json:"currency,omitempty"`

	// Client, Authority, Creditor and CaseNumber are domain-specific extras
	// used for display and relationship detection.
	Client     string `json:"client,omitempty"`
	Authority  string `json:"authority,omitempty"`
	Creditor   string `json:"creditor,omitempty"`
	CaseNumber string `json:"case_number,omitempty"`

	// Progress is a completion percentage for academic tasks.
	Progress int `json:"progress,omitempty"`
}

// ScoredItem is a DomainItem annotated with the computed urgency fields.
// Scored items are ephemeral: recomputed on every request, never persisted.
type ScoredItem struct {
	DomainItem

	// DaysLeft is the whole number of days until the deadline (negative when
	// overdue), or NoDeadlineDays when the item has no deadline.
	DaysLeft int `json:"daysLeft"`

	// TimeRemaining is the Hebrew display string for DaysLeft.
	TimeRemaining string `json:"timeRemaining"`

	// AIPriority is the computed score in [0,200] driving sort order.
	AIPriority int `json:"aiPriority"`

	// UrgencyLevel is one of the Urgency* labels.
	UrgencyLevel string `json:"urgencyLevel"`
}

// OverviewStats aggregates counts over a scored listing. Monetary values are
// never summed here; currencies are not normalized.
type OverviewStats struct {
	Critical   int `json:"critical"`
	Urgent     int `json:"urgent"`
	Pending    int `json:"pending"`
	EmailTasks int `json:"emailTasks"`
}

// priorityBonus maps declared priority labels to their score contribution.
// Unrecognized (or missing) labels fall back to the low bucket.
var priorityBonus = map[string]int{
	"urgent": 40, "דחוף": 40,
	"high": 30, "גבוה": 30,
	"medium": 20, "בינוני": 20,
	"low": 10, "נמוך": 10,
}

// domainBonus weights the source collection: debts over bureaucracy over
// academic work.
var domainBonus = map[Domain]int{
	DomainDebt:        25,
	DomainBureaucracy: 20,
	DomainAcademic:    15,
}

// statusBonus maps known status strings to their score contribution. The
// lookup uses the raw status string; unmapped statuses degrade to a flat 5.
var statusBonus = map[string]int{
	"פתוח":     15,
	"בהתנגדות": 12,
	"התראה":    20,
	"טרם פתור": 18,
	"בהמתנה":   10,
}

// closedStatuses are excluded from the pending count.
var closedStatuses = map[string]bool{
	"סגור":  true,
	"הושלם": true,
}

// DaysLeft computes the whole days between now and an ISO deadline date,
// rounding up. A deadline earlier today yields 0, tomorrow yields 1, and
// past dates yield negative values. Returns NoDeadlineDays when the deadline
// is empty or unparseable.
func DaysLeft(deadline string, now time.Time) int {
	if deadline == "" {
		return NoDeadlineDays
	}
	d, err := time.ParseInLocation("2006-01-02", deadline, now.Location())
	if err != nil {
		// Malformed dates behave like a missing deadline rather than
		// failing the whole listing.
		return NoDeadlineDays
	}
	return int(math.Ceil(d.Sub(now).Hours() / 24))
}

// Score computes the urgency annotation for a single item at the given
// reference time. The deadline ladder is evaluated first-match-wins, then
// the priority, domain and status bonuses are added and the total is clamped
// to [0,MaxScore].
func Score(item DomainItem, now time.Time) ScoredItem {
	scored := ScoredItem{DomainItem: item}
	score := 0
	level := UrgencyLow

	if item.Deadline != "" {
		days := DaysLeft(item.Deadline, now)
		scored.DaysLeft = days
		switch {
		case days == NoDeadlineDays:
			// Unparseable dates display like missing ones.
			scored.TimeRemaining = NoDeadlineText
		case days < 0:
			score += 100
			level = UrgencyCritical
			scored.TimeRemaining = "איחור"
		case days == 0:
			score += 90
			level = UrgencyCritical
			scored.TimeRemaining = "היום"
		case days == 1:
			score += 80
			level = UrgencyCritical
			scored.TimeRemaining = "מחר"
		case days <= 3:
			score += 70
			level = UrgencyVeryHigh
			scored.TimeRemaining = fmt.Sprintf("%d ימים", days)
		case days <= 7:
			score += 50
			level = UrgencyHigh
			scored.TimeRemaining = fmt.Sprintf("%d ימים", days)
		case days <= 14:
			score += 30
			level = UrgencyMedium
			scored.TimeRemaining = fmt.Sprintf("%d ימים", days)
		default:
			scored.TimeRemaining = fmt.Sprintf("%d ימים", days)
		}
	} else {
		scored.DaysLeft = NoDeadlineDays
		scored.TimeRemaining = NoDeadlineText
	}

	if bonus, ok := priorityBonus[item.Priority]; ok {
		score += bonus
	} else {
		score += 10
	}

	score += domainBonus[item.Domain]

	if item.Status != "" {
		if bonus, ok := statusBonus[item.Status]; ok {
			score += bonus
		} else {
			score += 5
		}
	}

	if score > MaxScore {
		score = MaxScore
	}
	scored.AIPriority = score
	scored.UrgencyLevel = level
	return scored
}

// ScoreAndRank scores every item at the given reference time and returns the
// list sorted by descending score, together with aggregate stats. The sort
// is stable: items with equal scores keep their input order.
func ScoreAndRank(items []DomainItem, now time.Time) ([]ScoredItem, OverviewStats) {
	scored := make([]ScoredItem, len(items))
	for i, item := range items {
		scored[i] = Score(item, now)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].AIPriority > scored[j].AIPriority
	})

	var stats OverviewStats
	for _, s := range scored {
		switch s.UrgencyLevel {
		case UrgencyCritical:
			stats.Critical++
		case UrgencyVeryHigh, UrgencyHigh:
			stats.Urgent++
		}
		if !closedStatuses[s.Status] {
			stats.Pending++
		}
	}
	return scored, stats
}
