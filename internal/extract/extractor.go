// Package extract turns preprocessed syllabus text into calendar events.
// Two engines implement the same contract: a completion-service extractor
// and a deterministic pattern extractor. The orchestrator runs either or
// both, isolates failures per engine, and always returns well-formed
// result envelopes.
package extract

import (
	"context"
	"time"

	"github.com/jackzampolin/coursecal/internal/types"
)

// DefaultConfidence is reported when the completion service returns a
// valid envelope without a confidence_score.
const DefaultConfidence = 85

// Extractor is one extraction strategy. Implementations never panic and
// never return a malformed result envelope.
type Extractor interface {
	// Extract runs the full pipeline over raw syllabus text.
	Extract(ctx context.Context, text string, hint types.CourseHint) types.ExtractionResult

	// Method identifies the engine ("llm" or "pattern").
	Method() types.Method
}

// buildSyllabus assembles the caller-owned ParsedSyllabus from a validated
// envelope and its normalized events. Course metadata resolves in order:
// envelope course_info, caller hint, fixed unknowns.
func buildSyllabus(envelope *types.ExtractionEnvelope, events []types.CalendarEvent, hint types.CourseHint, rawText string) *types.ParsedSyllabus {
	info := envelope.CourseInfo
	if info == nil {
		info = &types.CourseInfo{}
	}

	name := firstNonEmpty(info.CourseName, hint.Name, "Unknown Course")
	code := firstNonEmpty(info.CourseCode, hint.Code, "UNKNOWN")
	semester := firstNonEmpty(info.Semester, hint.Semester, "Unknown")

	year := info.Year
	if year == 0 {
		year = hint.Year
	}
	if year == 0 {
		year = time.Now().Year()
	}

	return &types.ParsedSyllabus{
		CourseName: name,
		CourseCode: code,
		Semester:   semester,
		Year:       year,
		Events:     events,
		RawText:    rawText,
		ParsedAt:   time.Now().UTC(),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
