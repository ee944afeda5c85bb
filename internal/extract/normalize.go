package extract

import (
	"sort"
	"strings"
	"time"

	"github.com/jackzampolin/coursecal/internal/types"
)

// adminTitleKeywords mark activities that are administrative noise rather
// than calendar-worthy work items. Matched case-insensitively against the
// activity title.
var adminTitleKeywords = []string{
	"office hours",
	"email",
	"class time",
	"conference",
	"blackboard",
	"twen",
	"canvas",
	"absence",
	"attendance",
	"policy",
}

// adminDetailKeywords are matched against the activity details.
var adminDetailKeywords = []string{
	"office hours",
	"email",
	"class time",
}

// IsAdministrative reports whether an activity looks like administrative
// content (contact info, logistics, policy language) rather than academic
// work. Administrative activities are dropped during normalization.
func IsAdministrative(title, details string) bool {
	lowerTitle := strings.ToLower(title)
	for _, kw := range adminTitleKeywords {
		if strings.Contains(lowerTitle, kw) {
			return true
		}
	}
	lowerDetails := strings.ToLower(details)
	for _, kw := range adminDetailKeywords {
		if strings.Contains(lowerDetails, kw) {
			return true
		}
	}
	return false
}

// NormalizeEvents converts a validated envelope into canonical calendar
// events: assignments and exams become dated events, surviving activities
// become sentinel-dated reading/other events, and the result is sorted
// ascending by date with encounter order preserved on ties.
func NormalizeEvents(envelope *types.ExtractionEnvelope) []types.CalendarEvent {
	events := make([]types.CalendarEvent, 0,
		len(envelope.Assignments)+len(envelope.Exams)+len(envelope.Activities))

	for _, a := range envelope.Assignments {
		date, ok := parseISODate(a.DueDate)
		if !ok {
			// The validator reclassifies these; guard anyway so the
			// normalizer stays total.
			events = append(events, undatedEvent(a.Title, a.Details, types.EventTypeOther, a.Priority))
			continue
		}
		events = append(events, types.CalendarEvent{
			ID:          types.EventID(a.Title, date),
			Title:       a.Title,
			Description: a.Details,
			Date:        date,
			Type:        types.EventTypeAssignment,
			Priority:    types.ParsePriority(a.Priority),
		})
	}

	for _, e := range envelope.Exams {
		date, ok := parseISODate(e.Date)
		if !ok {
			events = append(events, undatedEvent(e.Title, e.Details, types.EventTypeOther, e.Priority))
			continue
		}
		events = append(events, types.CalendarEvent{
			ID:          types.EventID(e.Title, date),
			Title:       e.Title,
			Description: e.Details,
			Date:        date,
			Time:        e.Time,
			Type:        types.EventTypeExam,
			Priority:    types.ParsePriority(e.Priority),
		})
	}

	for _, act := range envelope.Activities {
		if IsAdministrative(act.Title, act.Details) {
			continue
		}
		eventType := types.EventTypeOther
		if strings.EqualFold(act.Type, "reading") {
			eventType = types.EventTypeReading
		}
		events = append(events, undatedEvent(act.Title, act.Details, eventType, act.Priority))
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

func undatedEvent(title, details string, eventType types.EventType, priority string) types.CalendarEvent {
	return types.CalendarEvent{
		ID:          types.EventID(title, types.UndatedSentinel),
		Title:       title,
		Description: details,
		Date:        types.UndatedSentinel,
		Type:        eventType,
		Priority:    types.ParsePriority(priority),
	}
}

func parseISODate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
