package extract

import (
	"context"
	"testing"
	"time"

	"github.com/jackzampolin/coursecal/internal/types"
)

const sampleSyllabus = `LAW 501 Contracts
Spring 2025

- Midterm exam on 2025-03-10 at 9:00 AM
- Brief due 3/14/2025
- Reading: Chapter 4, pages 101-150
Final exam: May 1, 2025
`

func TestPatternExtract(t *testing.T) {
	extractor := NewPatternExtractor(nil)

	result := extractor.Extract(context.Background(), sampleSyllabus, types.CourseHint{})
	if !result.Success {
		t.Fatalf("Extract() failed: %s", result.Error)
	}
	if result.Method != types.MethodPattern {
		t.Errorf("method = %q, want pattern", result.Method)
	}

	data := result.Data
	if data.CourseCode != "LAW 501" {
		t.Errorf("course code = %q, want LAW 501", data.CourseCode)
	}
	if data.Semester != "Spring" || data.Year != 2025 {
		t.Errorf("semester/year = %q/%d, want Spring/2025", data.Semester, data.Year)
	}

	byType := map[types.EventType]int{}
	for _, ev := range data.Events {
		byType[ev.Type]++
	}
	if byType[types.EventTypeExam] != 2 {
		t.Errorf("exams = %d, want 2", byType[types.EventTypeExam])
	}
	if byType[types.EventTypeAssignment] != 1 {
		t.Errorf("assignments = %d, want 1", byType[types.EventTypeAssignment])
	}
	if byType[types.EventTypeReading] != 1 {
		t.Errorf("readings = %d, want 1", byType[types.EventTypeReading])
	}

	first := data.Events[0]
	if first.Type != types.EventTypeExam || first.Time != "9:00 AM" {
		t.Errorf("first event = %+v, want midterm exam with time", first)
	}
	if first.Priority != types.PriorityHigh {
		t.Errorf("exam priority = %q, want high", first.Priority)
	}
}

func TestPatternExtractEmpty(t *testing.T) {
	extractor := NewPatternExtractor(nil)

	result := extractor.Extract(context.Background(), "   \n\n  ", types.CourseHint{})
	if result.Success {
		t.Fatal("empty text must not succeed")
	}
	if result.Method != types.MethodFallback {
		t.Errorf("method = %q, want fallback", result.Method)
	}
	if result.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", result.Confidence)
	}
}

func TestPatternExtractNoMatches(t *testing.T) {
	extractor := NewPatternExtractor(nil)

	result := extractor.Extract(context.Background(), "Welcome to the course. See you in class.", types.CourseHint{})
	if !result.Success {
		t.Fatalf("Extract() failed: %s", result.Error)
	}
	if len(result.Data.Events) != 0 {
		t.Errorf("events = %d, want 0", len(result.Data.Events))
	}
	if result.Confidence != 20 {
		t.Errorf("confidence = %v, want floor of 20", result.Confidence)
	}
}

func TestFindDate(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
		found    bool
	}{
		{"iso", "Paper due 2025-03-14", "2025-03-14", true},
		{"slash", "Quiz on 3/14/2025", "2025-03-14", true},
		{"month name", "Final on May 1, 2025", "2025-05-01", true},
		{"month name no year", "Final on May 1", "2024-05-01", true},
		{"invalid slash", "Quiz on 13/45/2025", "", false},
		{"invalid iso", "Due 2025-02-30", "", false},
		{"no date", "Review session in class", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := findDate(tt.line, 2024)
			if found != tt.found || got != tt.expected {
				t.Errorf("findDate(%q) = %q, %v; want %q, %v", tt.line, got, found, tt.expected, tt.found)
			}
		})
	}
}

func TestPatternConfidence(t *testing.T) {
	dated := types.CalendarEvent{Date: mustDate(t, "2025-03-14")}
	undated := types.CalendarEvent{Date: types.UndatedSentinel}

	tests := []struct {
		name     string
		events   []types.CalendarEvent
		expected float64
	}{
		{"empty", nil, 20},
		{"one dated", []types.CalendarEvent{dated}, 45},
		{"mixed", []types.CalendarEvent{dated, dated, undated}, 52},
		{"capped", manyDated(dated, 20), 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := patternConfidence(tt.events); got != tt.expected {
				t.Errorf("patternConfidence() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestScanCourseInfo(t *testing.T) {
	if info := scanCourseInfo("no structure here"); info != nil {
		t.Errorf("expected nil course info, got %+v", info)
	}

	info := scanCourseInfo("CS 341 Operating Systems, fall 2025")
	if info == nil {
		t.Fatal("expected course info")
	}
	if info.CourseCode != "CS 341" {
		t.Errorf("code = %q, want CS 341", info.CourseCode)
	}
	if info.Semester != "Fall" || info.Year != 2025 {
		t.Errorf("semester/year = %q/%d, want Fall/2025", info.Semester, info.Year)
	}
}

func mustDate(t *testing.T, iso string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		t.Fatalf("bad test date %q: %v", iso, err)
	}
	return d
}

func manyDated(ev types.CalendarEvent, n int) []types.CalendarEvent {
	events := make([]types.CalendarEvent, n)
	for i := range events {
		events[i] = ev
	}
	return events
}
