package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jackzampolin/coursecal/internal/prompts/syllabus"
	"github.com/jackzampolin/coursecal/internal/types"
)

// isoDatePattern matches an unambiguous YYYY-MM-DD date string.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// placeholderTokens are date strings extractors emit when a syllabus gives
// no usable date. They are explicitly invalid, never parsed.
var placeholderTokens = []string{"XX", "TBD", "TBA"}

var envelopeSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("envelope.json", bytes.NewReader(syllabus.EnvelopeSchemaJSON())); err != nil {
		panic(err)
	}
	return compiler.MustCompile("envelope.json")
}()

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
// Placeholder tokens such as "TBD" fail the check.
func ValidDate(s string) bool {
	upper := strings.ToUpper(s)
	for _, tok := range placeholderTokens {
		if strings.Contains(upper, tok) {
			return false
		}
	}
	if !isoDatePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Validator parses and repairs completion payloads. It is total: every
// input yields either an envelope or an error, never a panic.
type Validator struct {
	logger *slog.Logger
}

// NewValidator creates a Validator. A nil logger disables repair logging.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Validator{logger: logger}
}

// Validate parses the completion content into an extraction envelope and
// runs the date-repair pass. Assignments and exams whose dates cannot be
// trusted are not discarded: they are reclassified as undated activities
// so no extracted item is silently lost.
func (v *Validator) Validate(content string) (*types.ExtractionEnvelope, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrNoContent
	}

	var raw any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := envelopeSchema.Validate(raw); err != nil {
		// Distinguish a missing sequence from other schema violations.
		if obj, ok := raw.(map[string]any); ok {
			for _, field := range []string{"assignments", "exams", "activities"} {
				if _, present := obj[field]; !present {
					return nil, fmt.Errorf("%w: %s", ErrMissingFields, field)
				}
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var envelope types.ExtractionEnvelope
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	v.repairDates(&envelope)
	return &envelope, nil
}

// repairDates moves assignments and exams with unusable dates into the
// activities sequence, preserving title and priority and noting the raw
// date string in the details.
func (v *Validator) repairDates(envelope *types.ExtractionEnvelope) {
	assignments := envelope.Assignments[:0]
	for _, a := range envelope.Assignments {
		if ValidDate(a.DueDate) {
			assignments = append(assignments, a)
			continue
		}
		v.logger.Info("reclassifying assignment with unusable date",
			"title", a.Title, "due_date", a.DueDate)
		details := a.Details
		if details == "" {
			details = "Due date: " + a.DueDate
		}
		envelope.Activities = append(envelope.Activities, types.ActivityItem{
			Title:    a.Title,
			Details:  details,
			Type:     "other",
			Priority: orMedium(a.Priority),
		})
	}
	envelope.Assignments = assignments

	exams := envelope.Exams[:0]
	for _, e := range envelope.Exams {
		if ValidDate(e.Date) {
			exams = append(exams, e)
			continue
		}
		v.logger.Info("reclassifying exam with unusable date",
			"title", e.Title, "date", e.Date)
		details := e.Details
		if details == "" {
			details = "Exam date: " + e.Date
		}
		envelope.Activities = append(envelope.Activities, types.ActivityItem{
			Title:    e.Title,
			Details:  details,
			Type:     "other",
			Priority: orMedium(e.Priority),
		})
	}
	envelope.Exams = exams
}

func orMedium(priority string) string {
	if priority == "" {
		return string(types.PriorityMedium)
	}
	return priority
}
