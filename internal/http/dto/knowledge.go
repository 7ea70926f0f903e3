package dto

import "twiga.app/backend/internal/model"

type SearchRequest struct {
	ClassID  int64  `json:"class_id" binding:"required"`
	Query    string `json:"query" binding:"required,max=1000"`
	NResults int    `json:"n_results,omitempty" binding:"omitempty,min=1,max=50"`
}

type SearchResponse struct {
	Results []model.Chunk `json:"results"`
}

type ExerciseRequest struct {
	ClassID int64  `json:"class_id" binding:"required"`
	Subject string `json:"subject" binding:"required,max=100"`
	Query   string `json:"query" binding:"required,max=1000"`
}

type ExerciseResponse struct {
	Exercise string `json:"exercise"`
}
