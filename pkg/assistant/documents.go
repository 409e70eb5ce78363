package assistant

import (
	"context"
	"fmt"
	"strconv"

	"github.com/michal-ai/orchestrator-go/pkg/llm"
	"github.com/michal-ai/orchestrator-go/pkg/storage"
)

// Document types the generator supports.
const (
	DocObjection  = "objection"
	DocSettlement = "settlement"
	DocReminder   = "reminder"
	DocAppeal     = "appeal"
)

// DocumentData carries the fields the document templates interpolate. Only
// the fields relevant to the requested type need to be set.
type DocumentData struct {
	// Objection fields.
	DebtorName string `json:"debtorName,omitempty"`
	CaseNumber string `json:"caseNumber,omitempty"`
	Amount     string `json:"amount,omitempty"`
	Creditor   string `json:"creditor,omitempty"`

	// Settlement fields.
	OriginalAmount   string `json:"originalAmount,omitempty"`
	SettlementAmount string `json:"settlementAmount,omitempty"`
	PaymentTerms     string `json:"paymentTerms,omitempty"`

	// Reminder fields.
	ClientName string `json:"clientName,omitempty"`
	Project    string `json:"project,omitempty"`
	DueDate    string `json:"dueDate,omitempty"`

	// Appeal fields.
	Institution      string `json:"institution,omitempty"`
	RequestNumber    string `json:"requestNumber,omitempty"`
	DecisionType     string `json:"decisionType,omitempty"`
	ReasonsForAppeal string `json:"reasonsForAppeal,omitempty"`
}

// SupportedDocumentType reports whether the generator has a template for the
// given type.
func SupportedDocumentType(docType string) bool {
	switch docType {
	case DocObjection, DocSettlement, DocReminder, DocAppeal:
		return true
	}
	return false
}

// TaskDocumentData seeds document fields from a task; explicitly supplied
// fields win over the task's.
func TaskDocumentData(task storage.AcademicTask, override DocumentData) DocumentData {
	data := override
	if data.ClientName == "" {
		data.ClientName = task.Client
	}
	if data.Project == "" {
		data.Project = task.Project
	}
	if data.Amount == "" && task.Value > 0 {
		data.Amount = strconv.FormatFloat(task.Value, 'f', -1, 64)
	}
	if data.DueDate == "" {
		data.DueDate = task.Deadline
	}
	return data
}

// GenerateDocument produces a formal Hebrew document of the given type.
// Formal documents require an LLM; there is no canned fallback here.
// Generation runs at low temperature to keep the register legal and dry.
func (a *Assistant) GenerateDocument(ctx context.Context, docType string, data DocumentData) (string, error) {
	if a.provider == nil {
		return "", fmt.Errorf("assistant: no llm provider configured")
	}

	prompt, err := documentPrompt(docType, data)
	if err != nil {
		return "", err
	}

	return a.provider.GenerateWithMessages(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}, llm.WithTemperature(0.3), llm.WithMaxTokens(1500))
}

func documentPrompt(docType string, data DocumentData) (string, error) {
	switch docType {
	case DocObjection:
		return fmt.Sprintf(`כתוב מכתב התנגדות פורמלי להוצאה לפועל עבור:
חייב: %s
מספר תיק: %s
סכום: %s
נושה: %s

המכתב צריך להיות:
- פורמלי ומשפטי
- בעברית תקנית
- כולל הנימוקים המשפטיים הרלוונטיים
- מוכן להגשה לבית המשפט`,
			data.DebtorName, data.CaseNumber, data.Amount, data.Creditor), nil

	case DocSettlement:
		return fmt.Sprintf(`כתוב הצעת פשרה עבור:
חייב: %s
סכום מקורי: %s
הצעת פשרה: %s
תנאי תשלום: %s

ההצעה צריכה להיות:
- מקצועית ומנומקת
- כוללת לוח זמנים לתשלום
- מותאמת לנסיבות החייב`,
			data.DebtorName, data.OriginalAmount, data.SettlementAmount, data.PaymentTerms), nil

	case DocReminder:
		return fmt.Sprintf(`כתוב מכתב תזכורת נועם עבור:
לקוח: %s
פרויקט: %s
סכום: %s
מועד: %s

המכתב צריך להיות:
- נועם אך נחרץ
- מקצועי
- כולל פרטי תשלום
- מעודד תגובה מהירה`,
			data.ClientName, data.Project, data.Amount, data.DueDate), nil

	case DocAppeal:
		return fmt.Sprintf(`כתוב ערעור לגוף בירוקרטי עבור:
מוסד: %s
מספר בקשה: %s
סוג החלטה: %s
נימוקי הערעור: %s

הערעור צריך להיות:
- משפטי ומקצועי
- כולל בסיס חוקי
- מנומק היטב
- מותאם לדרישות המוסד`,
			data.Institution, data.RequestNumber, data.DecisionType, data.ReasonsForAppeal), nil
	}
	return "", fmt.Errorf("assistant: unsupported document type %q", docType)
}
