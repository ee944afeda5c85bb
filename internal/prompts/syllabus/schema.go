package syllabus

import "encoding/json"

// EnvelopeSchema is the JSON schema the extraction envelope must satisfy.
// The three item sequences are required even when empty; everything else
// is advisory.
var EnvelopeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"assignments": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":    map[string]any{"type": "string"},
					"due_date": map[string]any{"type": "string"},
					"details":  map[string]any{"type": "string"},
					"priority": map[string]any{"type": "string"},
				},
				"required": []string{"title"},
			},
		},
		"exams": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":    map[string]any{"type": "string"},
					"date":     map[string]any{"type": "string"},
					"time":     map[string]any{"type": "string"},
					"details":  map[string]any{"type": "string"},
					"priority": map[string]any{"type": "string"},
				},
				"required": []string{"title"},
			},
		},
		"activities": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":    map[string]any{"type": "string"},
					"details":  map[string]any{"type": "string"},
					"type":     map[string]any{"type": "string"},
					"priority": map[string]any{"type": "string"},
				},
				"required": []string{"title"},
			},
		},
		"course_info": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"course_name": map[string]any{"type": "string"},
				"course_code": map[string]any{"type": "string"},
				"semester":    map[string]any{"type": "string"},
				"year":        map[string]any{"type": "integer"},
			},
		},
		"confidence_score": map[string]any{"type": "number"},
	},
	"required": []string{"assignments", "exams", "activities"},
}

// EnvelopeSchemaJSON returns the envelope schema serialized for a schema
// compiler or a response_format payload.
func EnvelopeSchemaJSON() json.RawMessage {
	raw, err := json.Marshal(EnvelopeSchema)
	if err != nil {
		// The schema is a static literal; marshal cannot fail.
		panic(err)
	}
	return raw
}
