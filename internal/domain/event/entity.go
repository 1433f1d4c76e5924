package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"skillified/internal/domain"
)

const MaxTitleLength = 255

var ErrNotFound = errors.New("event not found")

type Event struct {
	ID       int64
	Title    string
	Overview string
	DateTime time.Time
	SkillID  int64
	OwnerID  int64
	// Participants holds user ids in registration order.
	Participants []int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Event) IsOwnedBy(userID int64) bool {
	return userID > 0 && e.OwnerID == userID
}

func (e Event) HasParticipant(userID int64) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Fields is the editable part of an event as submitted by a client.
type Fields struct {
	Title    string
	Overview string
	DateTime string
}

// Validate checks the submitted fields and returns the parsed timestamp.
func (f Fields) Validate(loc *time.Location) (time.Time, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(f.Title) == "" {
		verr.Add("title", domain.MsgFieldRequired)
	} else if n := utf8.RuneCountInString(f.Title); n > MaxTitleLength {
		verr.Add("title", fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", MaxTitleLength, n))
	}
	if strings.TrimSpace(f.Overview) == "" {
		verr.Add("overview", domain.MsgFieldRequired)
	}

	var at time.Time
	if strings.TrimSpace(f.DateTime) == "" {
		verr.Add("date_time", domain.MsgFieldRequired)
	} else {
		t, err := ParseDateTime(f.DateTime, loc)
		if err != nil {
			verr.Add("date_time", domain.MsgInvalidDate)
		}
		at = t
	}
	if err := verr.OrNil(); err != nil {
		return time.Time{}, err
	}
	return at, nil
}

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var errInvalidDateTime = errors.New("invalid date/time")

// ParseDateTime accepts RFC3339 or the form layouts above. Layouts without a
// zone are interpreted in loc (UTC when nil).
func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errInvalidDateTime
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidDateTime
}

// DayBounds returns the [start, end) range of the calendar day containing t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
