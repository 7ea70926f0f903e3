package dto

import "twiga.app/backend/internal/model"

type ChatRequest struct {
	WaID    string  `json:"wa_id" binding:"required,max=32"`
	Name    *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Message string  `json:"message" binding:"required,max=4096"`
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	MessageID int64  `json:"message_id,string"`
	ReplyID   int64  `json:"reply_id,string,omitempty"`
}

type EnqueueResponse struct {
	MessageID int64  `json:"message_id,string"`
	Status    string `json:"status"`
}

type HistoryResponse struct {
	Messages []model.Message `json:"messages"`
}
