// Package ics serializes parsed syllabi as iCalendar documents so events
// can be imported into any calendar application.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/jackzampolin/coursecal/internal/types"
)

const prodID = "-//coursecal//syllabus extractor//EN"

// Export renders a parsed syllabus as an ICS document. Dated events become
// all-day entries on their date; undated sentinel events are exported on
// the sentinel date with a "date TBD" note so they stay visible without
// posing as real deadlines.
func Export(syllabus *types.ParsedSyllabus) (string, error) {
	if syllabus == nil {
		return "", fmt.Errorf("nil syllabus")
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetName(calendarName(syllabus))

	now := time.Now().UTC()
	for _, ev := range syllabus.Events {
		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(now)
		ve.SetSummary(summary(ev))
		ve.SetAllDayStartAt(ev.Date)
		ve.SetAllDayEndAt(ev.Date.AddDate(0, 0, 1))

		description := ev.Description
		if ev.Undated() {
			if description != "" {
				description += "\n"
			}
			description += "Date TBD - placeholder entry."
		}
		if ev.Time != "" {
			if description != "" {
				description += "\n"
			}
			description += "Time: " + ev.Time
		}
		if description != "" {
			ve.SetDescription(description)
		}
		ve.SetProperty(ical.ComponentPropertyCategories, string(ev.Type))
	}

	return cal.Serialize(), nil
}

func calendarName(s *types.ParsedSyllabus) string {
	if s.CourseCode != "" && s.CourseCode != "UNKNOWN" {
		return fmt.Sprintf("%s - %s", s.CourseCode, s.CourseName)
	}
	return s.CourseName
}

func summary(ev types.CalendarEvent) string {
	switch ev.Type {
	case types.EventTypeExam:
		return "Exam: " + ev.Title
	case types.EventTypeAssignment:
		return "Due: " + ev.Title
	default:
		return ev.Title
	}
}
