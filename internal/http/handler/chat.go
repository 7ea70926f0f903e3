package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"twiga.app/backend/internal/http/dto"
	"twiga.app/backend/internal/model"
	"twiga.app/backend/internal/service"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat answers a teacher's message synchronously.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.chatService.HandleMessage(c.Request.Context(), req.WaID, req.Name, req.Message)
	if err != nil {
		respondError(c, err, "answer message")
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{
		Reply:     result.Reply,
		MessageID: result.MessageID,
		ReplyID:   result.ReplyID,
	})
}

// Enqueue stores a teacher's message and hands it to the worker.
func (h *ChatHandler) Enqueue(c *gin.Context) {
	var req dto.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.chatService.Enqueue(c.Request.Context(), req.WaID, req.Name, req.Message)
	if err != nil {
		respondError(c, err, "queue message")
		return
	}

	c.JSON(http.StatusAccepted, dto.EnqueueResponse{MessageID: msg.ID, Status: "queued"})
}

func (h *ChatHandler) History(c *gin.Context) {
	var limit int32
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 1 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = int32(n)
	}

	msgs, err := h.chatService.History(c.Request.Context(), c.Param("wa_id"), limit)
	if err != nil {
		respondError(c, err, "load history")
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{Messages: msgs})
}
