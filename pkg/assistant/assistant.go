// Package assistant implements the Hebrew-speaking chat assistant and the
// formal document generator.
//
// The assistant is LLM-backed but never LLM-dependent: when no provider is
// configured, or the provider call fails, Chat degrades to canned keyword
// responses instead of returning an error.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/michal-ai/orchestrator-go/pkg/llm"
	"github.com/michal-ai/orchestrator-go/pkg/storage"
)

// systemPrompt frames every LLM conversation. The assistant persona is
// Michal's personal aide for academic writing, debt cases and bureaucracy.
const systemPrompt = `אתה עוזר AI אישי חכם של מיכל, שמתמחה בכתיבה אקדמית, ניהול תיקי גביה ומשימות בירוקרטיות.

אישיותך:
- מקצועי ואמין
- מדבר בעברית טבעית וחמה
- יעיל ומסודר
- מתמחה במשפטים, כתיבה אקדמית וביורוקרטיה
- מבין את המערכות הישראליות והגרמניות

היכולות שלך:
1. סיוע בכתיבה אקדמית (תזות, מאמרים, הצעות מחקר)
2. ניהול תיקי גביה (מכתבי התנגדות, הצעות פשרה)
3. משימות בירוקרטיות (בקשות, ערעורים, מכתבים רשמיים)
4. ניהול משימות ולוח זמנים
5. עיבוד מסמכים וחילוץ מידע

תמיד:
- שאל שאלות מבהירות כאשר צריך
- תן תשובות מעשיות וקונקרטיות
- הצע פעולות חכמות לפתרון בעיות
- זכור מידע מהשיחות הקודמות`

// emailSystemPrompt frames email analysis requests.
const emailSystemPrompt = "You are an intelligent email analyzer. Return ONLY valid JSON."

// historyLimit is how many past messages are replayed into the LLM prompt.
const historyLimit = 10

// ChatContext is the caller-supplied situational context injected into the
// conversation as a system message.
type ChatContext struct {
	UrgentTasks   string `json:"urgentTasks,omitempty"`
	TodayTasks    string `json:"todayTasks,omitempty"`
	ActiveDebts   string `json:"activeDebts,omitempty"`
	CurrentModule string `json:"currentModule,omitempty"`
}

func (c ChatContext) empty() bool {
	return c.UrgentTasks == "" && c.TodayTasks == "" && c.ActiveDebts == "" && c.CurrentModule == ""
}

func (c ChatContext) message() string {
	var b strings.Builder
	b.WriteString("מידע נוכחי רלוונטי:\n")
	if c.UrgentTasks != "" {
		fmt.Fprintf(&b, "משימות דחופות: %s\n", c.UrgentTasks)
	}
	if c.TodayTasks != "" {
		fmt.Fprintf(&b, "משימות היום: %s\n", c.TodayTasks)
	}
	if c.ActiveDebts != "" {
		fmt.Fprintf(&b, "חובות פעילים: %s\n", c.ActiveDebts)
	}
	if c.CurrentModule != "" {
		fmt.Fprintf(&b, "מודול נוכחי: %s\n", c.CurrentModule)
	}
	return b.String()
}

// Reply is one assistant answer with its provenance.
type Reply struct {
	// Response is the assistant's text.
	Response string `json:"response"`

	// Source is "llm" or "fallback".
	Source string `json:"source"`
}

// Assistant answers chat messages and generates formal documents.
type Assistant struct {
	provider llm.Provider
	store    storage.Store
}

// New creates an assistant. The provider may be nil, in which case every
// chat is answered from the canned fallbacks and document generation fails.
func New(provider llm.Provider, store storage.Store) *Assistant {
	return &Assistant{provider: provider, store: store}
}

// Available reports whether an LLM provider is configured.
func (a *Assistant) Available() bool {
	return a.provider != nil
}

// Chat answers one user message. The chat history is replayed from the
// store, the situational context (when present) is injected as a system
// message, and both sides of the exchange are saved. Any LLM failure
// degrades to a fallback answer; Chat only returns an error when the message
// is empty.
func (a *Assistant) Chat(ctx context.Context, userID, message string, chatCtx ChatContext) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, fmt.Errorf("assistant: empty message")
	}

	if a.provider == nil {
		return a.fallback(ctx, userID, message), nil
	}

	messages := []llm.Message{{Role: "system", Content: systemPrompt}}
	if a.store != nil {
		history, err := a.store.ChatHistory(ctx, userID, historyLimit)
		if err == nil {
			for _, m := range history {
				role := "assistant"
				if m.Role == "user" {
					role = "user"
				}
				messages = append(messages, llm.Message{Role: role, Content: m.Content})
			}
		}
	}
	if !chatCtx.empty() {
		messages = append(messages, llm.Message{Role: "system", Content: chatCtx.message()})
	}
	messages = append(messages, llm.Message{Role: "user", Content: message})

	response, err := a.provider.GenerateWithMessages(ctx, messages,
		llm.WithTemperature(0.7), llm.WithMaxTokens(1000))
	if err != nil {
		return a.fallback(ctx, userID, message), nil
	}

	a.saveExchange(ctx, userID, message, response, "llm")
	return Reply{Response: response, Source: "llm"}, nil
}

// AnalyzeEmail asks the LLM to extract structured JSON from an email
// analysis prompt. Unlike Chat there is no fallback: analysis without an LLM
// is an error.
func (a *Assistant) AnalyzeEmail(ctx context.Context, prompt string) (string, error) {
	if a.provider == nil {
		return "", fmt.Errorf("assistant: no llm provider configured")
	}
	return a.provider.GenerateWithMessages(ctx, []llm.Message{
		{Role: "system", Content: emailSystemPrompt},
		{Role: "user", Content: prompt},
	}, llm.WithTemperature(0.3), llm.WithMaxTokens(1000))
}

func (a *Assistant) fallback(ctx context.Context, userID, message string) Reply {
	response := FallbackResponse(message)
	a.saveExchange(ctx, userID, message, response, "fallback")
	return Reply{Response: response, Source: "fallback"}
}

func (a *Assistant) saveExchange(ctx context.Context, userID, message, response, model string) {
	if a.store == nil {
		return
	}
	// History persistence is best effort; a failed save must not fail the
	// chat.
	_ = a.store.SaveChatMessage(ctx, userID, "user", message, storage.ChatMeta{})
	_ = a.store.SaveChatMessage(ctx, userID, "assistant", response, storage.ChatMeta{Model: model})
}
