package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is a CompletionClient for testing.
type MockClient struct {
	// Configurable behavior
	Latency     time.Duration
	ShouldFail  bool
	FailErr     error
	Unavailable bool
	Content     string
	Model       string

	// State
	requestCount atomic.Int64
}

// NewMockClient creates a mock client that returns Content on every call.
func NewMockClient(content string) *MockClient {
	return &MockClient{
		Content: content,
		Model:   "mock-model",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// CallCount returns how many Complete calls were issued.
func (c *MockClient) CallCount() int64 {
	return c.requestCount.Load()
}

// Status reports configured availability.
func (c *MockClient) Status() Status {
	if c.Unavailable {
		return Status{Available: false, Error: "mock client configured unavailable"}
	}
	return Status{Available: true, Model: c.Model}
}

// Complete returns the configured content or failure.
func (c *MockClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	if c.Unavailable {
		return nil, fmt.Errorf("%w: mock client configured unavailable", ErrUnavailable)
	}

	count := c.requestCount.Add(1)

	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if c.ShouldFail {
		if c.FailErr != nil {
			return nil, c.FailErr
		}
		return nil, fmt.Errorf("mock client configured to fail")
	}

	return &CompletionResult{
		Content:   c.Content,
		Provider:  MockClientName,
		ModelUsed: c.Model,
		RequestID: fmt.Sprintf("mock-%d", count),
	}, nil
}
