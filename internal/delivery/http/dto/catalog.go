package dto

import (
	"time"

	"skillified/internal/domain/event"
	"skillified/internal/domain/skill"
	"skillified/internal/usecase"
)

type SkillResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewSkillList(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSkillResponse(s))
	}
	return out
}

type PopularSkillResponse struct {
	SkillResponse
	ParticipantCount int `json:"participant_count"`
}

func NewPopularSkillList(items []skill.Popular) []PopularSkillResponse {
	out := make([]PopularSkillResponse, 0, len(items))
	for _, p := range items {
		out = append(out, PopularSkillResponse{SkillResponse: NewSkillResponse(p.Skill), ParticipantCount: p.ParticipantCount})
	}
	return out
}

type EventResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Overview     string    `json:"overview"`
	DateTime     time.Time `json:"date_time"`
	SkillID      int64     `json:"skill_id"`
	OwnerID      int64     `json:"owner_id"`
	Participants []int64   `json:"participants"`
}

func NewEventResponse(e event.Event) EventResponse {
	participants := e.Participants
	if participants == nil {
		participants = []int64{}
	}
	return EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Overview:     e.Overview,
		DateTime:     e.DateTime,
		SkillID:      e.SkillID,
		OwnerID:      e.OwnerID,
		Participants: participants,
	}
}

func NewEventList(items []event.Event) []EventResponse {
	out := make([]EventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, NewEventResponse(e))
	}
	return out
}

type SkillDetailResponse struct {
	SkillResponse
	Events []EventResponse `json:"events"`
}

func NewSkillDetailResponse(d usecase.SkillDetail) SkillDetailResponse {
	return SkillDetailResponse{SkillResponse: NewSkillResponse(d.Skill), Events: NewEventList(d.Events)}
}

type EventDetailResponse struct {
	EventResponse
	Skill        SkillResponse `json:"skill"`
	Owner        UserSummary   `json:"owner"`
	Participants []UserSummary `json:"participants"`
	IsOwner      bool          `json:"is_owner"`
	IsRegistered bool          `json:"is_registered"`
}

func NewEventDetailResponse(d usecase.EventDetail) EventDetailResponse {
	participants := make([]UserSummary, 0, len(d.Participants))
	for _, u := range d.Participants {
		participants = append(participants, NewUserSummary(u))
	}
	return EventDetailResponse{
		EventResponse: NewEventResponse(d.Event),
		Skill:         NewSkillResponse(d.Skill),
		Owner:         NewUserSummary(d.Owner),
		Participants:  participants,
		IsOwner:       d.IsOwner,
		IsRegistered:  d.IsRegistered,
	}
}

type SkillRequest struct {
	Name        string  `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
}

type EditSkillRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type EventRequest struct {
	Title    string `json:"title" form:"title"`
	Overview string `json:"overview" form:"overview"`
	DateTime string `json:"date_time" form:"date_time"`
}

type ParticipationRequest struct {
	Action string `json:"action" form:"action"`
}
