package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat-completion conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompleteRequest holds the parameters for a chat-completion call.
type CompleteRequest struct {
	Task     TaskType
	Model    string // empty uses the configured model for Task
	Messages []Message
}

// ChatClient provides access to a hosted chat-completion model.
type ChatClient interface {
	// Complete sends the conversation and returns the provider's response
	// in whatever shape the transport produced.
	Complete(ctx context.Context, req CompleteRequest) (ChatResponse, error)
}

// NewClient builds the ChatClient selected by cfg.Transport.
func NewClient(cfg LLMConfig, observer Observer) ChatClient {
	if cfg.Transport == TransportHTTP {
		return NewHTTPClient(cfg, observer)
	}
	return NewOpenAIClient(cfg, observer)
}

// httpClient implements ChatClient by posting to an OpenAI-compatible
// /chat/completions endpoint and keeping the decoded body untyped.
type httpClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a ChatClient that speaks plain JSON over HTTP.
func NewHTTPClient(cfg LLMConfig, observer Observer) ChatClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// chatRequest is the JSON body sent to POST /chat/completions.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

func (c *httpClient) Complete(ctx context.Context, req CompleteRequest) (ChatResponse, error) {
	start := time.Now()
	model := req.Model
	if model == "" {
		model = c.cfg.ModelFor(req.Task)
	}
	taskCfg := c.cfg.Tasks[req.Task]

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	resp, err := c.doRequest(ctx, chatRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: taskCfg.Temperature,
		MaxTokens:   taskCfg.MaxTokens,
	})
	return finishCall(ctx, c.observer, req.Task, model, start, resp, err)
}

func (c *httpClient) doRequest(ctx context.Context, body chatRequest) (ChatResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return ChatResponse{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return ChatResponse{}, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return ChatResponse{}, fmt.Errorf("%w: status %d: %s", ErrUpstream, httpResp.StatusCode, truncate(string(respBody), 200))
	}

	var decoded map[string]any
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		// Some gateways answer with the bare assistant text.
		return TextResponse(string(respBody)), nil
	}
	return MapResponse(decoded), nil
}

// finishCall classifies the outcome of a provider call and reports it to
// the observer. Both transports share it.
func finishCall(ctx context.Context, observer Observer, task TaskType, model string, start time.Time, resp ChatResponse, err error) (ChatResponse, error) {
	latency := time.Since(start).Milliseconds()
	if err != nil {
		err = classifyError(ctx, err)
		observer.OnCallComplete(LLMCallEvent{
			Task:      task,
			Model:     model,
			LatencyMs: latency,
			Success:   false,
			ErrorCode: errorCode(err),
		})
		return ChatResponse{}, err
	}
	observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Model:     model,
		Shape:     resp.Shape,
		LatencyMs: latency,
		Success:   true,
	})
	return resp, nil
}

func classifyError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrTimeout):
		return err
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	case errors.Is(err, ErrUpstream):
		return "UPSTREAM"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
