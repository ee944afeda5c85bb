package extract

import (
	"testing"
	"time"

	"github.com/jackzampolin/coursecal/internal/types"
)

func TestIsAdministrative(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		details  string
		expected bool
	}{
		{"office hours", "Office Hours: Mondays 2-4pm", "", true},
		{"contact email", "Contact email for questions", "", true},
		{"policy", "Attendance Policy", "", true},
		{"platform", "Materials posted on Blackboard", "", true},
		{"details match", "Logistics", "See office hours for help", true},
		{"reading", "Week 1: Hawkins v. McGee", "pages 38-54", false},
		{"case reading", "Door Dash, Inc. v. City of New York", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdministrative(tt.title, tt.details); got != tt.expected {
				t.Errorf("IsAdministrative(%q, %q) = %v, want %v", tt.title, tt.details, got, tt.expected)
			}
		})
	}
}

func TestNormalizeEventsRoundTrip(t *testing.T) {
	envelope := &types.ExtractionEnvelope{
		Assignments: []types.AssignmentItem{
			{Title: "Brief Due", DueDate: "2025-03-14", Priority: "high"},
		},
		Exams:      []types.ExamItem{},
		Activities: []types.ActivityItem{},
	}

	events := NormalizeEvents(envelope)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	ev := events[0]
	if ev.Type != types.EventTypeAssignment {
		t.Errorf("type = %q, want assignment", ev.Type)
	}
	if !ev.Date.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v, want 2025-03-14", ev.Date)
	}
	if ev.Priority != types.PriorityHigh {
		t.Errorf("priority = %q, want high", ev.Priority)
	}
	if ev.ID != "brief-due-2025-03-14" {
		t.Errorf("id = %q, want brief-due-2025-03-14", ev.ID)
	}

	// Re-running normalization yields the identical ID.
	again := NormalizeEvents(envelope)
	if again[0].ID != ev.ID {
		t.Errorf("IDs differ across runs: %q vs %q", again[0].ID, ev.ID)
	}
}

func TestNormalizeEventsExamTimeCarried(t *testing.T) {
	envelope := &types.ExtractionEnvelope{
		Assignments: []types.AssignmentItem{},
		Exams: []types.ExamItem{
			{Title: "Final Exam", Date: "2025-05-01", Time: "9:00 AM"},
		},
		Activities: []types.ActivityItem{},
	}

	events := NormalizeEvents(envelope)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != types.EventTypeExam {
		t.Errorf("type = %q, want exam", events[0].Type)
	}
	if events[0].Time != "9:00 AM" {
		t.Errorf("time = %q, want carried through", events[0].Time)
	}
}

func TestNormalizeEventsActivities(t *testing.T) {
	envelope := &types.ExtractionEnvelope{
		Assignments: []types.AssignmentItem{},
		Exams:       []types.ExamItem{},
		Activities: []types.ActivityItem{
			{Title: "Office Hours: Mondays 2-4pm", Type: "other"},
			{Title: "Week 1 Reading", Type: "reading"},
			{Title: "Mock Trial", Type: "other"},
		},
	}

	events := NormalizeEvents(envelope)
	if len(events) != 2 {
		t.Fatalf("expected administrative filtering to leave 2 events, got %d", len(events))
	}

	reading := events[0]
	if reading.Type != types.EventTypeReading {
		t.Errorf("reading activity type = %q, want reading", reading.Type)
	}
	if !reading.Undated() {
		t.Error("activity should carry the undated sentinel date")
	}
	if events[1].Type != types.EventTypeOther {
		t.Errorf("non-reading activity type = %q, want other", events[1].Type)
	}
}

func TestNormalizeEventsSorted(t *testing.T) {
	envelope := &types.ExtractionEnvelope{
		Assignments: []types.AssignmentItem{
			{Title: "Late Assignment", DueDate: "2025-04-20"},
			{Title: "Early Assignment", DueDate: "2025-01-10"},
			{Title: "Same Day B", DueDate: "2025-02-01"},
		},
		Exams: []types.ExamItem{
			{Title: "Same Day A", Date: "2025-02-01"},
		},
		Activities: []types.ActivityItem{
			{Title: "Undated Reading", Type: "reading"},
		},
	}

	events := NormalizeEvents(envelope)
	for i := 1; i < len(events); i++ {
		if events[i].Date.Before(events[i-1].Date) {
			t.Fatalf("events not sorted: %v after %v", events[i].Date, events[i-1].Date)
		}
	}

	// Stable sort keeps encounter order within a date: the assignment was
	// appended before the exam.
	if events[1].Title != "Same Day B" || events[2].Title != "Same Day A" {
		t.Errorf("tie order not stable: got %q then %q", events[1].Title, events[2].Title)
	}

	last := events[len(events)-1]
	if !last.Undated() {
		t.Error("sentinel-dated activity should sort last")
	}
}

func TestNormalizeEventsReclassifiedExamSurvives(t *testing.T) {
	// End-to-end repair: a TBD exam goes through the validator and must
	// surface as a sentinel-dated other event, not disappear.
	v := NewValidator(nil)
	envelope, err := v.Validate(`{
		"assignments": [],
		"exams": [{"title": "Final Exam", "date": "TBD"}],
		"activities": []
	}`)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	events := NormalizeEvents(envelope)
	if len(events) != 1 {
		t.Fatalf("expected the TBD exam to survive as 1 event, got %d", len(events))
	}
	if events[0].Type != types.EventTypeOther {
		t.Errorf("type = %q, want other", events[0].Type)
	}
	if !events[0].Undated() {
		t.Error("reclassified exam should carry the sentinel date")
	}
	if events[0].Title != "Final Exam" {
		t.Errorf("title = %q, want preserved", events[0].Title)
	}
}
