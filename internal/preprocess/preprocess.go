// Package preprocess cleans raw syllabus text before extraction.
// Every function here is pure: no I/O, no failure mode, same input
// always yields the same output.
package preprocess

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxTextLength caps preprocessed text to stay inside the completion
// service's token budget with margin.
const MaxTextLength = 8000

var (
	pageNumberLine = regexp.MustCompile(`(?m)^\s*\d+\s*$`)
	pageHeader     = regexp.MustCompile(`(?i)Page \d+ of \d+`)
	excessNewlines = regexp.MustCompile(`\n\s*\n\s*\n+`)
	spaceRun       = regexp.MustCompile(`[ \t]+`)
)

// Normalize collapses whitespace, strips page-number lines and
// "Page N of M" headers, normalizes line endings, collapses runs of
// blank lines, and truncates to at most MaxTextLength bytes on a rune
// boundary. Normalize(Normalize(x)) == Normalize(x) for all x.
func Normalize(text string) string {
	text = clean(text)
	if len(text) > MaxTextLength {
		// Truncation can expose a new strippable line (e.g. a digit-only
		// tail), so the cleanup passes run again over the shortened text.
		text = clean(truncate(text, MaxTextLength))
	}
	return text
}

// clean applies the strip and collapse passes until they reach a fixed
// point. One pass is not always enough: stripping a page header can leave
// behind a line that only then matches the page-number pattern.
func clean(text string) string {
	for {
		next := cleanPass(text)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanPass(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = pageHeader.ReplaceAllString(text, "")
	text = pageNumberLine.ReplaceAllString(text, "")
	text = spaceRun.ReplaceAllString(text, " ")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// truncate cuts text to at most limit bytes without splitting a rune.
// Callers guarantee len(text) > limit.
func truncate(text string, limit int) string {
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

// syllabusKeywords signal that a document is likely a course syllabus.
var syllabusKeywords = []string{
	"syllabus",
	"course description",
	"assignments",
	"due date",
	"deadline",
	"exam",
	"midterm",
	"final",
	"reading",
	"schedule",
	"calendar",
	"grading",
	"rubric",
	"course outline",
	"learning objectives",
}

// minKeywordMatches is the threshold for IsLikelySyllabus.
const minKeywordMatches = 3

// IsLikelySyllabus reports whether the text reads like a syllabus,
// based on how many syllabus keywords it contains.
func IsLikelySyllabus(text string) bool {
	lower := strings.ToLower(text)
	matches := 0
	for _, kw := range syllabusKeywords {
		if strings.Contains(lower, kw) {
			matches++
			if matches >= minKeywordMatches {
				return true
			}
		}
	}
	return false
}
