package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/michal-ai/orchestrator-go/pkg/assistant"
	"github.com/michal-ai/orchestrator-go/pkg/storage"
)

// overviewLimit caps the smart-overview payload; the stats and totalItems
// still reflect the full list.
const overviewLimit = 20

// defaultUserID is the single-user fallback when a request names no user.
const defaultUserID = "1"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.agent.Store().ListTasks(r.Context())
	if err != nil {
		s.serverError(w, "list tasks", err)
		return
	}
	respondList(w, tasks, len(tasks))
}

// Smart action types accepted by the task action endpoint.
const (
	actionSmart            = "smart_action"
	actionGenerateDocument = "generate_document"
	actionSendReminder     = "send_reminder"
	actionScheduleFollowup = "schedule_followup"
)

func (s *Server) handleTaskAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		ActionType string `json:"actionType"`
		Parameters struct {
			DocumentType string `json:"documentType"`
			FollowupDate string `json:"followupDate"`
			assistant.DocumentData
		} `json:"parameters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ActionType == "" {
		respondError(w, http.StatusBadRequest, "actionType is required")
		return
	}

	tasks, err := s.agent.Store().ListTasks(r.Context())
	if err != nil {
		s.serverError(w, "task action", err)
		return
	}
	var task *storage.AcademicTask
	for i := range tasks {
		if strconv.Itoa(tasks[i].ID) == id {
			task = &tasks[i]
			break
		}
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "משימה לא נמצאה")
		return
	}

	var result map[string]interface{}
	switch body.ActionType {
	case actionSmart:
		result = map[string]interface{}{
			"message":     "פעולה חכמה בוצעה בהצלחה! אני כאן לעזור עם הכנת מסמכים, מעקב אחר מועדים או תזכורות.",
			"action_type": actionSmart,
		}

	case actionGenerateDocument:
		if !assistant.SupportedDocumentType(body.Parameters.DocumentType) {
			respondError(w, http.StatusBadRequest, "סוג מסמך לא נתמך")
			return
		}
		data := assistant.TaskDocumentData(*task, body.Parameters.DocumentData)
		document, err := s.assistant.GenerateDocument(r.Context(), body.Parameters.DocumentType, data)
		if err != nil {
			// Document actions degrade like chat instead of failing the
			// request.
			result = map[string]interface{}{
				"message":     assistant.DocumentFallback,
				"action_type": actionGenerateDocument,
				"source":      "fallback",
			}
		} else {
			result = map[string]interface{}{
				"document":    document,
				"action_type": actionGenerateDocument,
				"source":      "llm",
			}
		}

	case actionSendReminder:
		result = map[string]interface{}{
			"message":    "תזכורת נשלחה בהצלחה",
			"email_sent": true,
		}

	case actionScheduleFollowup:
		result = map[string]interface{}{
			"message":          "משימת מעקב נוצרה",
			"followup_task_id": s.agent.NewID(),
		}

	default:
		respondError(w, http.StatusBadRequest, "סוג פעולה לא נתמך")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
		"message": "הפעולה בוצעה בהצלחה",
	})
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.agent.Store().ListDebts(r.Context())
	if err != nil {
		s.serverError(w, "list debts", err)
		return
	}
	respondList(w, debts, len(debts))
}

func (s *Server) handleListBureaucracy(w http.ResponseWriter, r *http.Request) {
	items, err := s.agent.Store().ListBureaucracy(r.Context())
	if err != nil {
		s.serverError(w, "list bureaucracy", err)
		return
	}
	respondList(w, items, len(items))
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.agent.Store().ListClients(r.Context())
	if err != nil {
		s.serverError(w, "list clients", err)
		return
	}
	respondList(w, clients, len(clients))
}

func (s *Server) handleSmartOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.agent.Overview(r.Context())
	if err != nil {
		s.serverError(w, "smart overview", err)
		return
	}

	items := overview.Items
	if len(items) > overviewLimit {
		items = items[:overviewLimit]
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       items,
		"stats":      overview.Stats,
		"totalItems": overview.TotalItems,
	})
}

func (s *Server) handlePriorities(w http.ResponseWriter, r *http.Request) {
	priorities, err := s.agent.CalculatePriorities(r.Context())
	if err != nil {
		s.serverError(w, "calculate priorities", err)
		return
	}

	if r.URL.Query().Get("explain") == "minimal" {
		// Strip the graph neighborhoods to shrink the payload.
		for i := range priorities {
			priorities[i].Context = nil
		}
	}
	respondData(w, priorities)
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.agent.GenerateQuestions(r.Context())
	if err != nil {
		s.serverError(w, "generate questions", err)
		return
	}
	respondData(w, questions)
}

func (s *Server) handleAnswerQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok := s.agent.AnswerQuestion(id, body.Answer)
	if err := s.agent.PersistMemory(); err != nil {
		s.logger.Warn("memory persist failed", zap.Error(err))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": ok,
		"id":      id,
		"answer":  body.Answer,
	})
}

func (s *Server) handleSyncSimulate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Sources []string `json:"sources"`
	}
	// An empty or absent body means the default sources.
	_ = json.NewDecoder(r.Body).Decode(&body)

	respondData(w, s.agent.SimulateSync(body.Sources))
}

func (s *Server) handleAgentState(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.agent.Snapshot(r.Context())
	if err != nil {
		s.serverError(w, "state snapshot", err)
		return
	}
	respondData(w, snapshot)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondData(w, s.agent.Metrics())
}

func (s *Server) handleAutoActions(w http.ResponseWriter, r *http.Request) {
	actions, err := s.agent.SuggestActions(r.Context())
	if err != nil {
		s.serverError(w, "suggest actions", err)
		return
	}
	respondData(w, actions)
}

func (s *Server) handleFinanceBalance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Balance *float64 `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Balance == nil {
		respondError(w, http.StatusBadRequest, "balance must be number")
		return
	}

	s.agent.UpdateFinancialBalance(*body.Balance)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stored":  *body.Balance,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string                `json:"message"`
		UserID  string                `json:"userId"`
		Context assistant.ChatContext `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if body.UserID == "" {
		body.UserID = defaultUserID
	}

	reply, err := s.assistant.Chat(r.Context(), body.UserID, body.Message, body.Context)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"response": reply.Response,
		"source":   reply.Source,
	})
}

func (s *Server) handleGenerateDocument(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type string                 `json:"type"`
		Data assistant.DocumentData `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Type == "" {
		respondError(w, http.StatusBadRequest, "type is required")
		return
	}

	if !s.assistant.Available() {
		respondError(w, http.StatusServiceUnavailable, "ai service unavailable")
		return
	}

	document, err := s.assistant.GenerateDocument(r.Context(), body.Type, body.Data)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"document": document,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "התחברת בהצלחה",
		"user":    map[string]interface{}{"id": 1, "name": "מיכל"},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]interface{}{
		"user": map[string]interface{}{
			"id":    1,
			"name":  "מיכל",
			"email": "michal@example.com",
		},
	})
}

func (s *Server) handleAIStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"available": s.assistant.Available(),
	})
}

// Gmail integration runs in demo mode: there is no OAuth flow wired. Status
// reports unconfigured and sync answers a simulated run; neither is an error.
func (s *Server) handleGmailStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"configured":    false,
		"authenticated": false,
		"accounts":      []string{},
		"activeEmail":   nil,
	})
}

func (s *Server) handleGmailSync(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "Gmail sync completed (simulation mode)",
		"emailsProcessed": 5,
		"tasksCreated":    2,
	})
}

func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op, zap.Error(err))
	respondError(w, http.StatusInternalServerError, err.Error())
}
