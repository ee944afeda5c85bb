package types

// Method identifies which engine produced an ExtractionResult.
type Method string

const (
	MethodLLM      Method = "llm"
	MethodPattern  Method = "pattern"
	MethodFallback Method = "fallback"
)

// ExtractionResult is the uniform envelope returned by every engine.
// Confidence is 0 and Method is "fallback" whenever Success is false.
type ExtractionResult struct {
	Success     bool            `json:"success"`
	Data        *ParsedSyllabus `json:"data,omitempty"`
	Confidence  float64         `json:"confidence"`
	Method      Method          `json:"method"`
	Error       string          `json:"error,omitempty"`
	RawResponse string          `json:"rawResponse,omitempty"`
}

// Failure builds the well-formed failure envelope for an engine error.
func Failure(err error) ExtractionResult {
	return ExtractionResult{
		Success:    false,
		Confidence: 0,
		Method:     MethodFallback,
		Error:      err.Error(),
	}
}

// Comparison holds both engines' outcomes side by side. Each engine's
// result is captured independently; a failure in one never affects the
// other's entry.
type Comparison struct {
	LLM     ExtractionResult `json:"llm"`
	Pattern ExtractionResult `json:"pattern"`
}
