package model

import "time"

type ChunkType string

const (
	ChunkTypeText     ChunkType = "text"
	ChunkTypeExercise ChunkType = "exercise"
	ChunkTypeImage    ChunkType = "image"
	ChunkTypeTable    ChunkType = "table"
	ChunkTypeOther    ChunkType = "other"
)

func (t ChunkType) Valid() bool {
	switch t {
	case ChunkTypeText, ChunkTypeExercise, ChunkTypeImage, ChunkTypeTable, ChunkTypeOther:
		return true
	}
	return false
}

// Resource is a textbook or other teaching material split into chunks.
type Resource struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Authors     []string  `json:"authors"`
	GradeLevels []string  `json:"grade_levels"`
	Subjects    []string  `json:"subjects"`
	CreatedAt   time.Time `json:"created_at"`
}

// Chunk is an embedded fragment of a resource. Distance is only set on
// search results (cosine distance to the query; lower is closer).
type Chunk struct {
	ID                   int64     `json:"id"`
	ResourceID           int64     `json:"resource_id"`
	Content              string    `json:"content"`
	TopLevelSectionIndex *string   `json:"top_level_section_index,omitempty"`
	TopLevelSectionTitle *string   `json:"top_level_section_title,omitempty"`
	ChunkType            ChunkType `json:"chunk_type"`
	Embedding            []float32 `json:"-"`
	Distance             *float64  `json:"distance,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// ChunkFilter narrows a vector search. Empty slices do not filter.
type ChunkFilter struct {
	ChunkTypes  []ChunkType
	ResourceIDs []int64
}
