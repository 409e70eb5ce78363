package assistant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michal-ai/orchestrator-go/pkg/assistant"
	"github.com/michal-ai/orchestrator-go/pkg/llm"
)

// fakeProvider returns a fixed response, or an error when failing is set.
type fakeProvider struct {
	response string
	failing  bool

	lastMessages []llm.Message
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	return f.GenerateWithMessages(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (f *fakeProvider) GenerateWithMessages(ctx context.Context, messages []llm.Message, opts ...llm.GenerateOption) (string, error) {
	if f.failing {
		return "", errors.New("provider down")
	}
	f.lastMessages = messages
	return f.response, nil
}

func (f *fakeProvider) Close() error { return nil }

func TestChatWithProvider(t *testing.T) {
	provider := &fakeProvider{response: "בשמחה, הנה התוכנית להיום"}
	a := assistant.New(provider, nil)

	reply, err := a.Chat(context.Background(), "1", "מה התוכנית להיום?", assistant.ChatContext{})
	require.NoError(t, err)
	assert.Equal(t, "llm", reply.Source)
	assert.Equal(t, "בשמחה, הנה התוכנית להיום", reply.Response)

	// System prompt first, user message last.
	require.NotEmpty(t, provider.lastMessages)
	assert.Equal(t, "system", provider.lastMessages[0].Role)
	last := provider.lastMessages[len(provider.lastMessages)-1]
	assert.Equal(t, "user", last.Role)
	assert.Equal(t, "מה התוכנית להיום?", last.Content)
}

func TestChatInjectsContext(t *testing.T) {
	provider := &fakeProvider{response: "ok"}
	a := assistant.New(provider, nil)

	_, err := a.Chat(context.Background(), "1", "שלום", assistant.ChatContext{
		UrgentTasks:   "3",
		CurrentModule: "debts",
	})
	require.NoError(t, err)

	var contextMsg string
	for _, m := range provider.lastMessages[1:] {
		if m.Role == "system" {
			contextMsg = m.Content
		}
	}
	require.NotEmpty(t, contextMsg)
	assert.Contains(t, contextMsg, "משימות דחופות: 3")
	assert.Contains(t, contextMsg, "מודול נוכחי: debts")
}

func TestChatNoProviderFallsBack(t *testing.T) {
	a := assistant.New(nil, nil)

	reply, err := a.Chat(context.Background(), "1", "מה דחוף היום?", assistant.ChatContext{})
	require.NoError(t, err)
	assert.Equal(t, "fallback", reply.Source)
	assert.Contains(t, reply.Response, "המשימות הדחופות היום")
}

func TestChatProviderErrorFallsBack(t *testing.T) {
	a := assistant.New(&fakeProvider{failing: true}, nil)

	reply, err := a.Chat(context.Background(), "1", "מה עם הבירוקרטיה?", assistant.ChatContext{})
	require.NoError(t, err)
	assert.Equal(t, "fallback", reply.Source)
	assert.Contains(t, reply.Response, "מצב הבירוקרטיה")
}

func TestChatEmptyMessage(t *testing.T) {
	a := assistant.New(nil, nil)
	_, err := a.Chat(context.Background(), "1", "   ", assistant.ChatContext{})
	assert.Error(t, err)
}

func TestGenerateDocument(t *testing.T) {
	provider := &fakeProvider{response: "לכבוד בית המשפט..."}
	a := assistant.New(provider, nil)

	doc, err := a.GenerateDocument(context.Background(), assistant.DocObjection, assistant.DocumentData{
		DebtorName: "מיכל",
		CaseNumber: "PF2024-8901",
		Amount:     "89.12",
		Creditor:   "PAIR Finance",
	})
	require.NoError(t, err)
	assert.Equal(t, "לכבוד בית המשפט...", doc)

	prompt := provider.lastMessages[len(provider.lastMessages)-1].Content
	assert.Contains(t, prompt, "מכתב התנגדות")
	assert.Contains(t, prompt, "PF2024-8901")
	assert.Contains(t, prompt, "PAIR Finance")
}

func TestGenerateDocumentUnknownType(t *testing.T) {
	a := assistant.New(&fakeProvider{response: "x"}, nil)
	_, err := a.GenerateDocument(context.Background(), "poem", assistant.DocumentData{})
	assert.Error(t, err)
}

func TestGenerateDocumentNoProvider(t *testing.T) {
	a := assistant.New(nil, nil)
	_, err := a.GenerateDocument(context.Background(), assistant.DocObjection, assistant.DocumentData{})
	assert.Error(t, err)
}

func TestAnalyzeEmailNoProvider(t *testing.T) {
	a := assistant.New(nil, nil)
	_, err := a.AnalyzeEmail(context.Background(), "classify this")
	assert.Error(t, err)
}

func TestFallbackResponses(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"urgent", "מה דחוף?", "המשימות הדחופות היום"},
		{"today", "מה יש לי היום", "המשימות הדחופות היום"},
		{"objection", "איך מכינים התנגדות", "PAIR Finance"},
		{"pair lowercase", "מה עם pair?", "אל תודי בחוב"},
		{"bureaucracy", "מה מצב הבירוקרטיה", "מצב הבירוקרטיה"},
		{"default", "שלום", "איך אני יכולה לעזור"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, assistant.FallbackResponse(tt.message), tt.want)
		})
	}
}
