package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa/internal/cache"
	"docqa/internal/model"
	"docqa/internal/rag"
	"docqa/internal/transport/http/response"
)

// QuestionAnswerer produces a grounded answer for a question plus history.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question string, history []model.ConversationTurn) (string, error)
}

type AskHandler struct {
	answerer QuestionAnswerer
	history  *cache.HistoryCache // nil when no Redis is configured
}

// AskRequest carries a question and its conversation so far. The history
// array is expected to end with the current question; alternatively a
// session_id lets the server track history in its cache.
type AskRequest struct {
	Question  string                   `json:"question" binding:"required"`
	History   []model.ConversationTurn `json:"history"`
	SessionID string                   `json:"session_id"`
}

func NewAskHandler(answerer QuestionAnswerer, history *cache.HistoryCache) *AskHandler {
	return &AskHandler{answerer: answerer, history: history}
}

func (h *AskHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	ctx := c.Request.Context()

	history := req.History
	useCache := h.history != nil && req.SessionID != ""
	if useCache {
		cached, found, err := h.history.GetHistory(ctx, req.SessionID)
		if err != nil {
			log.Printf("history cache read failed, using request history: %v", err)
		} else if found {
			history = cached
		} else {
			history = nil
		}
		history = append(history, model.ConversationTurn{Role: model.RoleUser, Content: req.Question})
	}

	answer, err := h.answerer.Answer(ctx, req.Question, history)
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrGeneration):
			response.Error(c, http.StatusBadGateway, response.CodeGeneration, "answer generation failed")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ask failed")
		}
		return
	}

	if useCache {
		turns := append(history, model.ConversationTurn{Role: model.RoleAssistant, Content: answer})
		if err := h.history.SetHistory(ctx, req.SessionID, turns); err != nil {
			log.Printf("history cache write failed: %v", err)
		}
	}

	response.OK(c, gin.H{"answer": answer})
}

// ClearSession drops the cached history for a session id.
func (h *AskHandler) ClearSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing session id")
		return
	}
	if h.history == nil {
		response.Error(c, http.StatusNotFound, response.CodeBadRequest, "session history is not enabled")
		return
	}
	if err := h.history.DeleteHistory(c.Request.Context(), sessionID); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to clear session")
		return
	}
	response.OK(c, gin.H{"status": "session cleared"})
}
