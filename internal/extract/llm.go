package extract

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/coursecal/internal/preprocess"
	"github.com/jackzampolin/coursecal/internal/prompts/syllabus"
	"github.com/jackzampolin/coursecal/internal/providers"
	"github.com/jackzampolin/coursecal/internal/types"
)

// LLMExtractor extracts events via the completion service. The pipeline is
// strictly sequential: preprocess, build prompt, call, validate, normalize.
// Every failure is converted into a fallback result at the point of
// detection; nothing propagates to the caller as an error.
type LLMExtractor struct {
	client    providers.CompletionClient
	validator *Validator
	enabled   bool
	logger    *slog.Logger
}

// NewLLMExtractor creates the completion-backed engine. When enabled is
// false, Extract fails fast without touching the client.
func NewLLMExtractor(client providers.CompletionClient, enabled bool, logger *slog.Logger) *LLMExtractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LLMExtractor{
		client:    client,
		validator: NewValidator(logger),
		enabled:   enabled,
		logger:    logger,
	}
}

// Method identifies the engine.
func (e *LLMExtractor) Method() types.Method {
	return types.MethodLLM
}

// Status reports completion-service availability for the caller's status
// surface. A disabled engine reports unavailable regardless of credential.
func (e *LLMExtractor) Status() providers.Status {
	if !e.enabled {
		return providers.Status{Available: false, Error: ErrDisabled.Error()}
	}
	return e.client.Status()
}

// Extract runs the completion pipeline over raw syllabus text.
func (e *LLMExtractor) Extract(ctx context.Context, text string, hint types.CourseHint) types.ExtractionResult {
	if !e.enabled {
		return types.Failure(ErrDisabled)
	}

	cleaned := preprocess.Normalize(text)

	req := &providers.CompletionRequest{
		SystemPrompt: syllabus.SystemPrompt(),
		UserPrompt:   syllabus.UserPrompt(cleaned, hint),
	}

	resp, err := e.client.Complete(ctx, req)
	if err != nil {
		e.logger.Warn("completion call failed", "error", err)
		return types.Failure(err)
	}

	envelope, err := e.validator.Validate(resp.Content)
	if err != nil {
		e.logger.Warn("completion response failed validation",
			"error", err, "request_id", resp.RequestID)
		result := types.Failure(err)
		result.RawResponse = resp.Content
		return result
	}

	events := NormalizeEvents(envelope)

	confidence := envelope.ConfidenceScore
	if confidence == 0 {
		confidence = DefaultConfidence
	}

	e.logger.Info("llm extraction complete",
		"events", len(events),
		"confidence", confidence,
		"model", resp.ModelUsed,
		"request_id", resp.RequestID)

	return types.ExtractionResult{
		Success:     true,
		Data:        buildSyllabus(envelope, events, hint, text),
		Confidence:  confidence,
		Method:      types.MethodLLM,
		RawResponse: resp.Content,
	}
}
