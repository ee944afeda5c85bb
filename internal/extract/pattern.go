package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackzampolin/coursecal/internal/preprocess"
	"github.com/jackzampolin/coursecal/internal/types"
)

// Rule tables for the pattern engine. Kept as data so the classification
// heuristics can be unit-tested independently of the pipeline.
var (
	examKeywords       = []string{"exam", "midterm", "final", "quiz", "test"}
	assignmentKeywords = []string{"due", "assignment", "submit", "deadline", "paper", "essay", "brief", "memo"}
	readingKeywords    = []string{"read", "reading", "pages", "chapter", "pp."}
)

var (
	isoDateRe   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	slashDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	monthDateRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\.?\s+(\d{1,2})(?:\s*,\s*(\d{4}))?\b`)

	courseCodeRe = regexp.MustCompile(`\b([A-Z]{2,4})\s?(\d{3}[A-Z]?)\b`)
	semesterRe   = regexp.MustCompile(`(?i)\b(Spring|Summer|Fall|Winter)\s+(\d{4})\b`)
	timeRe       = regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{2})?\s*(?:am|pm))\b`)
	bulletRe     = regexp.MustCompile(`^[\s\-•*>]+`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

// PatternExtractor is the deterministic rule-based engine. It scans the
// text line by line, anchors items to dates it can recognize, and routes
// everything else with a work-item keyword into undated activities. It
// performs no I/O and produces the same result envelope as the LLM path.
type PatternExtractor struct {
	logger *slog.Logger
}

// NewPatternExtractor creates the rule-based engine.
func NewPatternExtractor(logger *slog.Logger) *PatternExtractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PatternExtractor{logger: logger}
}

// Method identifies the engine.
func (e *PatternExtractor) Method() types.Method {
	return types.MethodPattern
}

// Extract runs the rule engine over raw syllabus text.
func (e *PatternExtractor) Extract(ctx context.Context, text string, hint types.CourseHint) types.ExtractionResult {
	cleaned := preprocess.Normalize(text)
	if cleaned == "" {
		return types.Failure(fmt.Errorf("no text content to parse"))
	}

	envelope := e.scan(cleaned, hint)
	events := NormalizeEvents(envelope)

	confidence := patternConfidence(events)

	e.logger.Info("pattern extraction complete",
		"events", len(events), "confidence", confidence)

	return types.ExtractionResult{
		Success:    true,
		Data:       buildSyllabus(envelope, events, hint, text),
		Confidence: confidence,
		Method:     types.MethodPattern,
	}
}

// scan builds an extraction envelope from recognized lines.
func (e *PatternExtractor) scan(text string, hint types.CourseHint) *types.ExtractionEnvelope {
	envelope := &types.ExtractionEnvelope{
		Assignments: []types.AssignmentItem{},
		Exams:       []types.ExamItem{},
		Activities:  []types.ActivityItem{},
		CourseInfo:  scanCourseInfo(text),
	}

	defaultYear := hint.Year
	if defaultYear == 0 && envelope.CourseInfo != nil {
		defaultYear = envelope.CourseInfo.Year
	}
	if defaultYear == 0 {
		defaultYear = time.Now().Year()
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		date, hasDate := findDate(line, defaultYear)
		title := cleanTitle(line)
		if title == "" {
			continue
		}

		switch {
		case hasDate && containsAny(lower, examKeywords):
			exam := types.ExamItem{Title: title, Date: date, Priority: string(types.PriorityHigh)}
			if m := timeRe.FindString(line); m != "" {
				exam.Time = m
			}
			envelope.Exams = append(envelope.Exams, exam)

		case hasDate && containsAny(lower, assignmentKeywords):
			envelope.Assignments = append(envelope.Assignments, types.AssignmentItem{
				Title:   title,
				DueDate: date,
			})

		case containsAny(lower, readingKeywords):
			envelope.Activities = append(envelope.Activities, types.ActivityItem{
				Title: title,
				Type:  "reading",
			})
		}
	}
	return envelope
}

// patternConfidence scores a run by how much dated structure it found.
func patternConfidence(events []types.CalendarEvent) float64 {
	if len(events) == 0 {
		return 20
	}
	confidence := 40.0
	for _, ev := range events {
		if !ev.Undated() {
			confidence += 5
		} else {
			confidence += 2
		}
	}
	if confidence > 90 {
		confidence = 90
	}
	return confidence
}

// findDate locates the first recognizable date in a line and returns it in
// ISO form. Month-name dates without a year borrow defaultYear.
func findDate(line string, defaultYear int) (string, bool) {
	if m := isoDateRe.FindStringSubmatch(line); m != nil {
		if _, err := time.Parse("2006-01-02", m[1]); err == nil {
			return m[1], true
		}
	}
	if m := slashDateRe.FindStringSubmatch(line); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if validYMD(year, month, day) {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
		}
	}
	if m := monthDateRe.FindStringSubmatch(line); m != nil {
		month := monthsByName[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		year := defaultYear
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		if validYMD(year, int(month), day) {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
		}
	}
	return "", false
}

func validYMD(year, month, day int) bool {
	if year < 1900 || year > 2100 || month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}

// cleanTitle trims separators and caps the title length.
func cleanTitle(line string) string {
	title := strings.Trim(line, " \t:;,.-")
	if len(title) > 120 {
		title = strings.TrimSpace(title[:120])
	}
	return title
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// scanCourseInfo pulls course code and semester from the text when present.
func scanCourseInfo(text string) *types.CourseInfo {
	info := &types.CourseInfo{}
	if m := courseCodeRe.FindStringSubmatch(text); m != nil {
		info.CourseCode = m[1] + " " + m[2]
	}
	if m := semesterRe.FindStringSubmatch(text); m != nil {
		info.Semester = capitalize(m[1])
		info.Year, _ = strconv.Atoi(m[2])
	}
	if info.CourseCode == "" && info.Semester == "" {
		return nil
	}
	return info
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
