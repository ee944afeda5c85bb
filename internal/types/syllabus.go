package types

import "time"

// ParsedSyllabus is the result of one extraction run over a syllabus.
// The caller owns it; extraction components never mutate it after return.
type ParsedSyllabus struct {
	CourseName string          `json:"courseName"`
	CourseCode string          `json:"courseCode"`
	Semester   string          `json:"semester"`
	Year       int             `json:"year"`
	Events     []CalendarEvent `json:"events"`
	RawText    string          `json:"rawText"`
	ParsedAt   time.Time       `json:"parsedAt"`
}

// CourseHint is optional course metadata supplied by the caller.
// Fields fill in whatever the extractor cannot determine from the text.
type CourseHint struct {
	Name     string `json:"courseName,omitempty"`
	Code     string `json:"courseCode,omitempty"`
	Semester string `json:"semester,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// AssignmentItem is an unvalidated assignment record from an extractor.
type AssignmentItem struct {
	Title    string `json:"title"`
	DueDate  string `json:"due_date"`
	Details  string `json:"details,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// ExamItem is an unvalidated exam record from an extractor.
type ExamItem struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
	Details  string `json:"details,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// ActivityItem is an extracted item the extractor could not anchor to a
// calendar date. Date-repaired assignments and exams also land here.
type ActivityItem struct {
	Title    string `json:"title"`
	Details  string `json:"details,omitempty"`
	Type     string `json:"type"`
	Priority string `json:"priority,omitempty"`
}

// CourseInfo is course metadata the extractor found in the text itself.
type CourseInfo struct {
	CourseName string `json:"course_name,omitempty"`
	CourseCode string `json:"course_code,omitempty"`
	Semester   string `json:"semester,omitempty"`
	Year       int    `json:"year,omitempty"`
}

// ExtractionEnvelope is the schema-validated intermediate form between raw
// extractor output and canonical events. All three item sequences must be
// present (possibly empty) for the envelope to be structurally valid.
type ExtractionEnvelope struct {
	Assignments     []AssignmentItem `json:"assignments"`
	Exams           []ExamItem       `json:"exams"`
	Activities      []ActivityItem   `json:"activities"`
	CourseInfo      *CourseInfo      `json:"course_info,omitempty"`
	ConfidenceScore float64          `json:"confidence_score,omitempty"`
}
