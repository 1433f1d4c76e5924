package dto

import (
	"time"

	"skillified/internal/domain/message"
	"skillified/internal/domain/user"
	"skillified/internal/pkg/jwt"
	"skillified/internal/usecase"
)

type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func NewUserSummary(u user.User) UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func NewTokenResponse(p jwt.Pair) TokenResponse {
	return TokenResponse(p)
}

type AuthResponse struct {
	User UserResponse `json:"user"`
	TokenResponse
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProfileResponse struct {
	User         UserResponse    `json:"user"`
	PictureURL   string          `json:"profile_picture"`
	AboutMe      string          `json:"about_me"`
	FacebookLink string          `json:"facebook_link"`
	LinkedinLink string          `json:"linkedin_link"`
	IsMentor     bool            `json:"is_mentor"`
	Skills       []SkillResponse `json:"skills"`
}

func NewProfileResponse(v usecase.ProfileView) ProfileResponse {
	return ProfileResponse{
		User:         NewUserResponse(v.User),
		PictureURL:   v.PictureURL,
		AboutMe:      v.Profile.AboutMe,
		FacebookLink: v.Profile.FacebookLink,
		LinkedinLink: v.Profile.LinkedinLink,
		IsMentor:     v.Profile.IsMentor,
		Skills:       NewSkillList(v.Skills),
	}
}

// ProfilePatchRequest distinguishes absent fields (nil) from cleared ones.
type ProfilePatchRequest struct {
	FacebookLink *string  `json:"facebook_link"`
	LinkedinLink *string  `json:"linkedin_link"`
	Email        *string  `json:"email"`
	AboutMe      *string  `json:"about_me"`
	Skills       *[]int64 `json:"skills"`
}

type SettingsRequest struct {
	Username        *string  `json:"username" form:"username"`
	Email           *string  `json:"email" form:"email"`
	CurrentPassword string   `json:"current_password" form:"current_password"`
	NewPassword     string   `json:"new_password" form:"new_password"`
	ConfirmPassword string   `json:"confirm_password" form:"confirm_password"`
	NewMessage      Checkbox `json:"new_message" form:"new_message"`
	NewEvent        Checkbox `json:"new_event" form:"new_event"`
	NewSkill        Checkbox `json:"new_skill" form:"new_skill"`
	IsMentor        Checkbox `json:"is_mentor" form:"is_mentor"`

	// Field names used by the server-rendered settings form.
	NotifyMessages Checkbox `json:"notify_messages" form:"notify_messages"`
	NotifyEvents   Checkbox `json:"notify_events" form:"notify_events"`
	NotifySkills   Checkbox `json:"notify_skills" form:"notify_skills"`
	MentorStatus   Checkbox `json:"mentor_status" form:"mentor_status"`
}

func (r SettingsRequest) Patch() usecase.SettingsPatch {
	return usecase.SettingsPatch{
		Username:        r.Username,
		Email:           r.Email,
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
		ConfirmPassword: r.ConfirmPassword,
		NewMessage:      r.NewMessage.Bool() || r.NotifyMessages.Bool(),
		NewEvent:        r.NewEvent.Bool() || r.NotifyEvents.Bool(),
		NewSkill:        r.NewSkill.Bool() || r.NotifySkills.Bool(),
		IsMentor:        r.IsMentor.Bool() || r.MentorStatus.Bool(),
	}
}

type NotificationsResponse struct {
	NewMessage bool `json:"new_message"`
	NewEvent   bool `json:"new_event"`
	NewSkill   bool `json:"new_skill"`
}

type SettingsResponse struct {
	Username      string                `json:"username"`
	Email         string                `json:"email"`
	IsMentor      bool                  `json:"is_mentor"`
	Notifications NotificationsResponse `json:"notifications"`
	Tokens        *TokenResponse        `json:"tokens,omitempty"`
}

func NewSettingsResponse(v usecase.SettingsView, tokens *jwt.Pair) SettingsResponse {
	out := SettingsResponse{
		Username: v.Username,
		Email:    v.Email,
		IsMentor: v.IsMentor,
		Notifications: NotificationsResponse{
			NewMessage: v.Notifications.NewMessage,
			NewEvent:   v.Notifications.NewEvent,
			NewSkill:   v.Notifications.NewSkill,
		},
	}
	if tokens != nil {
		t := NewTokenResponse(*tokens)
		out.Tokens = &t
	}
	return out
}

type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
	Reason  string `json:"reason" form:"reason"`
}

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" form:"receiver_id"`
	Content    string `json:"content" form:"content"`
}

type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewMessageResponse(m message.Message) MessageResponse {
	return MessageResponse(m)
}

func NewMessageList(items []message.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(items))
	for _, m := range items {
		out = append(out, NewMessageResponse(m))
	}
	return out
}
