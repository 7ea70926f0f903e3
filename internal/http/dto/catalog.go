package dto

import "twiga.app/backend/internal/model"

type CreateSubjectRequest struct {
	Name   string            `json:"name" binding:"required,max=100"`
	Status model.ClassStatus `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

type CreateClassRequest struct {
	SubjectID  int64             `json:"subject_id" binding:"required"`
	GradeLevel model.GradeLevel  `json:"grade_level" binding:"required,oneof=os1 os2 os3 os4 as1 as2"`
	Name       string            `json:"name,omitempty" binding:"max=255"`
	Status     model.ClassStatus `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

type CreateResourceRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Type        string   `json:"type,omitempty" binding:"max=50"`
	Authors     []string `json:"authors,omitempty"`
	GradeLevels []string `json:"grade_levels,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
}

type LinkClassRequest struct {
	ClassID int64 `json:"class_id" binding:"required"`
}

type CreateChunkRequest struct {
	Content              string          `json:"content" binding:"required"`
	ChunkType            model.ChunkType `json:"chunk_type,omitempty" binding:"omitempty,oneof=text exercise image table other"`
	TopLevelSectionIndex *string         `json:"top_level_section_index,omitempty"`
	TopLevelSectionTitle *string         `json:"top_level_section_title,omitempty"`
}

type SubjectsResponse struct {
	Subjects []model.Subject `json:"subjects"`
}

type ClassesResponse struct {
	Classes []model.Class `json:"classes"`
}

type ResourcesResponse struct {
	Resources []model.Resource `json:"resources"`
}
