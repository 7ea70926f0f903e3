package model

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

type GradeLevel string

type ClassStatus string

// Tanzanian secondary levels: ordinary (Form 1-4) and advanced (Form 5-6).
const (
	GradeLevelOS1 GradeLevel = "os1"
	GradeLevelOS2 GradeLevel = "os2"
	GradeLevelOS3 GradeLevel = "os3"
	GradeLevelOS4 GradeLevel = "os4"
	GradeLevelAS1 GradeLevel = "as1"
	GradeLevelAS2 GradeLevel = "as2"
)

const (
	ClassStatusActive   ClassStatus = "active"
	ClassStatusInactive ClassStatus = "inactive"
)

var gradeLevels = []GradeLevel{GradeLevelOS1, GradeLevelOS2, GradeLevelOS3, GradeLevelOS4, GradeLevelAS1, GradeLevelAS2}

func (g GradeLevel) rank() int {
	for i, l := range gradeLevels {
		if l == g {
			return i
		}
	}
	return len(gradeLevels)
}

func (g GradeLevel) Valid() bool {
	return g.rank() < len(gradeLevels)
}

// Display returns the name teachers use for the level, e.g. "Form 2".
func (g GradeLevel) Display() string {
	switch g {
	case GradeLevelOS1:
		return "Form 1"
	case GradeLevelOS2:
		return "Form 2"
	case GradeLevelOS3:
		return "Form 3"
	case GradeLevelOS4:
		return "Form 4"
	case GradeLevelAS1:
		return "Form 5"
	case GradeLevelAS2:
		return "Form 6"
	default:
		return string(g)
	}
}

func (s ClassStatus) Valid() bool {
	return s == ClassStatusActive || s == ClassStatusInactive
}

type Subject struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Status    ClassStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// Class is one subject taught at one grade level.
type Class struct {
	ID          int64       `json:"id"`
	SubjectID   int64       `json:"subject_id"`
	SubjectName string      `json:"subject_name,omitempty"`
	GradeLevel  GradeLevel  `json:"grade_level"`
	Name        string      `json:"name"`
	Status      ClassStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at,omitzero"`
}

// ClassInfo maps subject names to the grade levels taught, the shape
// teachers pick during onboarding: {"geography": ["os2"]}.
type ClassInfo map[string][]GradeLevel

// Normalized lowercases and trims subject names, merging grades of
// subjects that collapse to the same name. Subject names are stored
// lowercase.
func (c ClassInfo) Normalized() ClassInfo {
	out := make(ClassInfo, len(c))
	for subject, grades := range c {
		key := strings.ToLower(strings.TrimSpace(subject))
		out[key] = lo.Uniq(append(out[key], grades...))
	}
	return out
}
