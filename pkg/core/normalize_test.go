package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michal-ai/orchestrator-go/pkg/core"
	"github.com/michal-ai/orchestrator-go/pkg/scoring"
	"github.com/michal-ai/orchestrator-go/pkg/storage"
)

func TestNormalizeTask(t *testing.T) {
	item := core.NormalizeTask(storage.AcademicTask{
		ID:       2,
		Project:  "סמינר פסיכולוגיה - כרמית",
		Client:   "כרמית לוי",
		Status:   "לסיום",
		Progress: 85,
		Deadline: "2025-09-24",
		Currency: "₪",
		Value:    800,
		Priority: "דחוף",
		Action:   "סיכום וביבליוגרפיה",
	})

	assert.Equal(t, "task-2", item.ID)
	assert.Equal(t, scoring.DomainAcademic, item.Domain)
	assert.Equal(t, "סמינר פסיכולוגיה - כרמית", item.Title)
	assert.Equal(t, "לקוח: כרמית לוי", item.Description)
	assert.Equal(t, "כרמית לוי", item.Client)
	assert.Equal(t, 85, item.Progress)
	assert.Equal(t, 800.0, item.Value)
}

func TestNormalizeDebt(t *testing.T) {
	item := core.NormalizeDebt(storage.Debt{
		ID:         1,
		Creditor:   "PAIR Finance",
		Company:    "Vodafone",
		Amount:     89.12,
		Currency:   "€",
		CaseNumber: "PF2024-8901",
		Status:     "פתוח",
		Deadline:   "2025-09-26",
		Priority:   "דחוף",
	})

	assert.Equal(t, "debt-1", item.ID)
	assert.Equal(t, scoring.DomainDebt, item.Domain)
	assert.Equal(t, "Vodafone - PAIR Finance", item.Title)
	assert.Equal(t, "מספר תיק: PF2024-8901", item.Description)
	assert.Equal(t, "PAIR Finance", item.Creditor)
	assert.Equal(t, 89.12, item.Value)
}

func TestNormalizeBureaucracy(t *testing.T) {
	item := core.NormalizeBureaucracy(storage.BureaucracyItem{
		ID:        3,
		Task:      "ביטוח בריאות",
		Authority: "TK",
		Status:    "בהמתנה",
		Deadline:  "2025-09-28",
		Priority:  "דחוף",
	})

	assert.Equal(t, "bureau-3", item.ID)
	assert.Equal(t, scoring.DomainBureaucracy, item.Domain)
	assert.Equal(t, "ביטוח בריאות", item.Title)
	assert.Equal(t, "רשות: TK", item.Description)
	assert.Equal(t, "TK", item.Authority)
}

func TestUnifyItemsOrder(t *testing.T) {
	data := core.AppData{
		Tasks:       []storage.AcademicTask{{ID: 1}, {ID: 2}},
		Debts:       []storage.Debt{{ID: 1}},
		Bureaucracy: []storage.BureaucracyItem{{ID: 1}},
	}

	unified := core.UnifyItems(data)
	require.Len(t, unified, 4)
	assert.Equal(t, "task-1", unified[0].ID)
	assert.Equal(t, "task-2", unified[1].ID)
	assert.Equal(t, "debt-1", unified[2].ID)
	assert.Equal(t, "bureau-1", unified[3].ID)
}
