package core

import (
	"fmt"

	"github.com/michal-ai/orchestrator-go/pkg/scoring"
	"github.com/michal-ai/orchestrator-go/pkg/storage"
)

// NormalizeTask converts an academic task to the canonical item shape.
func NormalizeTask(t storage.AcademicTask) scoring.DomainItem {
	return scoring.DomainItem{
		ID:          fmt.Sprintf("task-%d", t.ID),
		Domain:      scoring.DomainAcademic,
		Title:       t.Project,
		Description: fmt.Sprintf("לקוח: %s", t.Client),
		Deadline:    t.Deadline,
		Priority:    t.Priority,
		Status:      t.Status,
		Action:      t.Action,
		Value:       t.Value,
		Currency:    t.Currency,
		Client:      t.Client,
		Progress:    t.Progress,
	}
}

// NormalizeDebt converts a debt case to the canonical item shape. The title
// is "company - creditor" and the case number becomes the description.
func NormalizeDebt(d storage.Debt) scoring.DomainItem {
	return scoring.DomainItem{
		ID:          fmt.Sprintf("debt-%d", d.ID),
		Domain:      scoring.DomainDebt,
		Title:       fmt.Sprintf("%s - %s", d.Company, d.Creditor),
		Description: fmt.Sprintf("מספר תיק: %s", d.CaseNumber),
		Deadline:    d.Deadline,
		Priority:    d.Priority,
		Status:      d.Status,
		Action:      d.Action,
		Value:       d.Amount,
		Currency:    d.Currency,
		Creditor:    d.Creditor,
		CaseNumber:  d.CaseNumber,
	}
}

// NormalizeBureaucracy converts a bureaucracy item to the canonical shape.
func NormalizeBureaucracy(b storage.BureaucracyItem) scoring.DomainItem {
	return scoring.DomainItem{
		ID:          fmt.Sprintf("bureau-%d", b.ID),
		Domain:      scoring.DomainBureaucracy,
		Title:       b.Task,
		Description: fmt.Sprintf("רשות: %s", b.Authority),
		Deadline:    b.Deadline,
		Priority:    b.Priority,
		Status:      b.Status,
		Action:      b.Action,
		Authority:   b.Authority,
	}
}

// UnifyItems normalizes all three collections into one flat list, tasks
// first, then debts, then bureaucracy. The order matters: it is the
// tie-break order of the stable score sort.
func UnifyItems(data AppData) []scoring.DomainItem {
	unified := make([]scoring.DomainItem, 0, len(data.Tasks)+len(data.Debts)+len(data.Bureaucracy))
	for _, t := range data.Tasks {
		unified = append(unified, NormalizeTask(t))
	}
	for _, d := range data.Debts {
		unified = append(unified, NormalizeDebt(d))
	}
	for _, b := range data.Bureaucracy {
		unified = append(unified, NormalizeBureaucracy(b))
	}
	return unified
}
