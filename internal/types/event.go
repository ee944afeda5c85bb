package types

import (
	"regexp"
	"strings"
	"time"
)

// EventType categorizes a calendar event extracted from a syllabus.
type EventType string

const (
	EventTypeAssignment EventType = "assignment"
	EventTypeExam       EventType = "exam"
	EventTypeReading    EventType = "reading"
	EventTypeClass      EventType = "class"
	EventTypeDeadline   EventType = "deadline"
	EventTypeOther      EventType = "other"
)

// Priority indicates how urgent an event is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority maps a free-form priority string to a Priority.
// Unrecognized or empty values default to medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urgent":
		return PriorityUrgent
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// UndatedSentinel marks events whose source item carried no resolvable
// calendar date. It is deliberately far in the future so undated items
// stay visible without ever being mistaken for a real deadline.
var UndatedSentinel = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)

// CalendarEvent is the canonical output record. Immutable once produced.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time,omitempty"`
	Type        EventType `json:"type"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
}

// Undated reports whether the event carries the undated sentinel date.
func (e CalendarEvent) Undated() bool {
	return e.Date.Equal(UndatedSentinel)
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
)

// EventID derives a deterministic identifier from a title and date.
// The same logical event always maps to the same ID, which makes
// re-running extraction idempotent and lets callers dedupe by identity.
func EventID(title string, date time.Time) string {
	slug := strings.ToLower(title)
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	return slug + "-" + date.Format("2006-01-02")
}
