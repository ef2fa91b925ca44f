package dto

import (
	"time"

	"github.com/google/uuid"
)

type QueryRequest struct {
	Query string `json:"query" validate:"required"`
	// NResults caps how many nearest neighbors are fetched; <= 0 means
	// the default.
	NResults int `json:"n_results,omitempty"`
	// ScoreThreshold is accepted uncritically; nil means the default.
	ScoreThreshold *float64 `json:"score_threshold,omitempty"`
}

type QueryResultItem struct {
	Id        uuid.UUID              `json:"id"`
	Prompt    string                 `json:"prompt"`
	Response  string                 `json:"response"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata"`
	Score     float64                `json:"score"`
}

type QueryResponse struct {
	Results []*QueryResultItem `json:"results"`
}
