package skill

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"skillified/internal/domain"
)

const MaxNameLength = 255

var ErrNotFound = errors.New("skill not found")

type Skill struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Popular is a skill ranked by distinct participants across its upcoming events.
type Popular struct {
	Skill
	ParticipantCount int
}

// ValidateName applies the catalog form rules for a skill name.
func ValidateName(verr *domain.ValidationError, name string) {
	if strings.TrimSpace(name) == "" {
		verr.Add("name", domain.MsgFieldRequired)
		return
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		verr.Add("name", fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", MaxNameLength, n))
	}
}
