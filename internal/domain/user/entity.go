package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	// TokenVersion is bumped on every credential change; tokens carrying an
	// older version are rejected.
	TokenVersion int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

type Profile struct {
	UserID       int64
	PictureRef   string
	AboutMe      string
	FacebookLink string
	LinkedinLink string
	IsMentor     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NotificationSetting struct {
	UserID     int64
	NewMessage bool
	NewEvent   bool
	NewSkill   bool
	UpdatedAt  time.Time
}

func DefaultNotificationSetting(userID int64) NotificationSetting {
	return NotificationSetting{
		UserID:     userID,
		NewMessage: true,
		NewEvent:   true,
		NewSkill:   true,
	}
}
