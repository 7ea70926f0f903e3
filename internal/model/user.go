package model

import (
	"sort"
	"strings"
	"time"
)

type UserState string

type UserRole string

const (
	UserStateNew         UserState = "new"
	UserStateOnboarding  UserState = "onboarding"
	UserStateActive      UserState = "active"
	UserStateBlocked     UserState = "blocked"
	UserStateRateLimited UserState = "rate_limited"
	UserStateInReview    UserState = "in_review"
)

const (
	UserRoleTeacher UserRole = "teacher"
	UserRoleAdmin   UserRole = "admin"
)

func (s UserState) Valid() bool {
	switch s {
	case UserStateNew, UserStateOnboarding, UserStateActive,
		UserStateBlocked, UserStateRateLimited, UserStateInReview:
		return true
	}
	return false
}

func (r UserRole) Valid() bool {
	return r == UserRoleTeacher || r == UserRoleAdmin
}

// User is a teacher (or admin) chatting with Twiga over WhatsApp.
// TaughtClasses is only populated by loads that join teachers_classes.
type User struct {
	ID            int64     `json:"id"`
	Name          *string   `json:"name,omitempty"`
	WaID          string    `json:"wa_id"`
	State         UserState `json:"state"`
	Role          UserRole  `json:"role"`
	TaughtClasses []Class   `json:"taught_classes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayName is the user's name, or their WhatsApp ID when unnamed.
func (u *User) DisplayName() string {
	if u.Name != nil && strings.TrimSpace(*u.Name) != "" {
		return *u.Name
	}
	return u.WaID
}

// FormattedClassInfo renders taught classes grouped by subject, e.g.
// "geography (Form 2), mathematics (Form 1, Form 2)". Subjects and grades
// are sorted; an empty string means the user teaches nothing yet.
func (u *User) FormattedClassInfo() string {
	grades := make(map[string][]GradeLevel)
	for _, c := range u.TaughtClasses {
		grades[c.SubjectName] = append(grades[c.SubjectName], c.GradeLevel)
	}

	subjects := make([]string, 0, len(grades))
	for s := range grades {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	parts := make([]string, 0, len(subjects))
	for _, s := range subjects {
		levels := grades[s]
		sort.Slice(levels, func(i, j int) bool { return levels[i].rank() < levels[j].rank() })
		names := make([]string, len(levels))
		for i, g := range levels {
			names[i] = g.Display()
		}
		parts = append(parts, s+" ("+strings.Join(names, ", ")+")")
	}
	return strings.Join(parts, ", ")
}

// ClassIDs returns the IDs of the user's taught classes in load order.
func (u *User) ClassIDs() []int64 {
	ids := make([]int64, len(u.TaughtClasses))
	for i, c := range u.TaughtClasses {
		ids[i] = c.ID
	}
	return ids
}
