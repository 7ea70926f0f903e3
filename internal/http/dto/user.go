package dto

import (
	"time"

	"twiga.app/backend/internal/model"
)

type UserResponse struct {
	ID        int64           `json:"id,string"`
	Name      *string         `json:"name"`
	WaID      string          `json:"wa_id"`
	State     model.UserState `json:"state"`
	Role      model.UserRole  `json:"role"`
	ClassInfo string          `json:"class_info"`
	Classes   []model.Class   `json:"classes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	classes := u.TaughtClasses
	if classes == nil {
		classes = []model.Class{}
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		WaID:      u.WaID,
		State:     u.State,
		Role:      u.Role,
		ClassInfo: u.FormattedClassInfo(),
		Classes:   classes,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UpdateUserRequest struct {
	Name  *string          `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	State *model.UserState `json:"state,omitempty" binding:"omitempty,oneof=new onboarding active blocked rate_limited in_review"`
}

type AssignClassesRequest struct {
	ClassInfo model.ClassInfo `json:"class_info" binding:"required,min=1"`
	SubjectID *int64          `json:"subject_id,omitempty"`
}

type AssignClassesResponse struct {
	ClassIDs []int64       `json:"class_ids"`
	Classes  []model.Class `json:"classes"`
}
