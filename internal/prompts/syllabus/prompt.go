// Package syllabus holds the prompt and output schema for syllabus
// extraction. Embedded .tmpl files are the source of truth; rendering is
// deterministic and never touches the network.
package syllabus

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/jackzampolin/coursecal/internal/types"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPromptTmpl string

var userTemplate = template.Must(template.New("user").Parse(userPromptTmpl))

// UserPromptData is the data rendered into the user prompt template.
type UserPromptData struct {
	Text          string
	CourseContext string
}

// SystemPrompt returns the system prompt for syllabus extraction.
func SystemPrompt() string {
	return strings.TrimSpace(systemPrompt)
}

// UserPrompt builds the user prompt from preprocessed syllabus text and an
// optional course hint.
func UserPrompt(text string, hint types.CourseHint) string {
	var buf bytes.Buffer
	data := UserPromptData{
		Text:          text,
		CourseContext: courseContext(hint),
	}
	if err := userTemplate.Execute(&buf, data); err != nil {
		return userPromptTmpl
	}
	return buf.String()
}

// courseContext formats the caller's course hint as a single context line.
// Returns "" when the hint carries no name.
func courseContext(hint types.CourseHint) string {
	if hint.Name == "" {
		return ""
	}
	ctx := hint.Name
	if hint.Code != "" {
		ctx += fmt.Sprintf(" (%s)", hint.Code)
	}
	if hint.Semester != "" {
		ctx += " - " + hint.Semester
	}
	if hint.Year != 0 {
		ctx += fmt.Sprintf(" %d", hint.Year)
	}
	return ctx
}
