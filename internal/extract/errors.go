package extract

import "errors"

// Error kinds for the extraction pipeline. Every internal failure is
// converted into a well-formed ExtractionResult at the point of detection;
// these sentinels let callers and tests distinguish the failure modes.
var (
	// ErrDisabled means the completion-based path is switched off by
	// configuration. It is an intentional no-op, not an engine failure.
	ErrDisabled = errors.New("llm extraction is disabled")

	// ErrNoContent means the completion payload had no textual content.
	ErrNoContent = errors.New("no content in completion response")

	// ErrMalformedResponse means the completion content was not parseable
	// structured data.
	ErrMalformedResponse = errors.New("malformed completion response")

	// ErrMissingFields means the parsed response lacked one of the
	// required assignments/exams/activities sequences.
	ErrMissingFields = errors.New("missing required fields in completion response")
)
