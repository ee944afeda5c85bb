package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName         = "openai"
	openAIDefaultModel = "gpt-4o-mini"
)

// OpenAIConfig holds configuration for the OpenAI completion client.
type OpenAIConfig struct {
	APIKey      string
	Model       string        // "gpt-4o-mini" (default)
	MaxTokens   int           // Default 2000
	Temperature float64       // Default 0.1
	MaxRetries  int           // Retry attempts for transient failures
	Timeout     time.Duration // HTTP timeout
	BaseURL     string        // Optional (tests)
	HTTPClient  *http.Client  // Optional (tests)
}

// OpenAIClient implements CompletionClient using the official OpenAI SDK.
// The underlying SDK client is built lazily on first use and is write-once:
// concurrent callers never race to re-initialize it with a different
// configuration. A client with no API key is permanently unavailable and
// fails fast without a network attempt.
type OpenAIClient struct {
	cfg OpenAIConfig

	initOnce sync.Once
	client   openai.Client
	initErr  error
}

// NewOpenAIClient creates a new OpenAI completion client. The credential is
// not checked until the first call or Status query.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &OpenAIClient{cfg: cfg}
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// Model returns the configured default model.
func (c *OpenAIClient) Model() string {
	return c.cfg.Model
}

// init builds the SDK client once. Safe for concurrent use.
func (c *OpenAIClient) init() error {
	c.initOnce.Do(func() {
		if c.cfg.APIKey == "" {
			c.initErr = fmt.Errorf("%w: API key not configured", ErrUnavailable)
			return
		}

		httpClient := c.cfg.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: c.cfg.Timeout}
		}

		opts := []option.RequestOption{
			option.WithAPIKey(c.cfg.APIKey),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0), // retry-go owns retries
		}
		if c.cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(c.cfg.BaseURL))
		}

		c.client = openai.NewClient(opts...)
	})
	return c.initErr
}

// Status reports availability using the same initialization check that
// gates Complete, so status reporting never drifts from call behavior.
func (c *OpenAIClient) Status() Status {
	if err := c.init(); err != nil {
		return Status{Available: false, Error: "OpenAI API key not configured or invalid"}
	}
	return Status{Available: true, Model: c.cfg.Model}
}

// Complete sends a chat completion request asking for a JSON object
// response. Transient failures are retried with exponential backoff;
// non-retryable API errors (bad request, auth) surface immediately.
func (c *OpenAIClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	if err := c.init(); err != nil {
		return nil, err
	}

	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxTokens
	}
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = c.cfg.Temperature
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}

	var completion *openai.ChatCompletion
	err := retry.Do(
		func() error {
			var callErr error
			completion, callErr = c.client.Chat.Completions.New(ctx, params)
			return callErr
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.MaxRetries)),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)
	if err != nil {
		return nil, fmt.Errorf("completion call failed: %w", mapOpenAIError(err))
	}

	result := &CompletionResult{
		Provider:      OpenAIName,
		ModelUsed:     completion.Model,
		RequestID:     requestID,
		ExecutionTime: time.Since(start),
		PromptTokens:  completion.Usage.PromptTokens,
	}
	result.CompletionTokens = completion.Usage.CompletionTokens
	if len(completion.Choices) > 0 {
		result.Content = completion.Choices[0].Message.Content
	}
	return result, nil
}

// isRetryable reports whether an API error is worth retrying. Rate limits
// and server-side errors are; client errors are not.
func isRetryable(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	// Transport-level failures (timeouts, resets) are retryable.
	return true
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Errorf("OpenAI error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("OpenAI error (status %d)", apiErr.StatusCode)
	}
	return err
}
