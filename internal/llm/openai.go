package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openAIClient implements ChatClient on top of the openai-go SDK. Together AI
// and most hosted providers accept the same wire format.
type openAIClient struct {
	cfg      LLMConfig
	client   openai.Client
	observer Observer
}

// NewOpenAIClient creates a ChatClient backed by the openai-go SDK. SDK
// retries are disabled.
func NewOpenAIClient(cfg LLMConfig, observer Observer) ChatClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	)
	return &openAIClient{cfg: cfg, client: client, observer: observer}
}

func (c *openAIClient) Complete(ctx context.Context, req CompleteRequest) (ChatResponse, error) {
	start := time.Now()
	model := req.Model
	if model == "" {
		model = c.cfg.ModelFor(req.Task)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toSDKMessages(req.Messages),
	}
	if tc, ok := c.cfg.Tasks[req.Task]; ok {
		params.Temperature = openai.Float(tc.Temperature)
		if tc.MaxTokens > 0 {
			params.MaxTokens = openai.Int(int64(tc.MaxTokens))
		}
	}

	var (
		resp ChatResponse
		err  error
	)
	if c.cfg.Stream {
		resp, err = c.stream(ctx, params)
	} else {
		resp, err = c.complete(ctx, params)
	}
	return finishCall(ctx, c.observer, req.Task, model, start, resp, err)
}

func (c *openAIClient) complete(ctx context.Context, params openai.ChatCompletionNewParams) (ChatResponse, error) {
	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ChatResponse{}, wrapSDKError(err)
	}
	if len(completion.Choices) == 0 {
		return ChatResponse{}, ErrEmptyResponse
	}
	return CompletionResponse(completion), nil
}

func (c *openAIClient) stream(ctx context.Context, params openai.ChatCompletionNewParams) (ChatResponse, error) {
	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	var chunks []Chunk
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			chunks = append(chunks, Chunk{Content: chunk.Choices[0].Delta.Content})
		}
	}
	if err := stream.Err(); err != nil {
		return ChatResponse{}, wrapSDKError(err)
	}
	return ChunksResponse(chunks), nil
}

func wrapSDKError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: status %d: %v", ErrUpstream, apiErr.StatusCode, err)
	}
	return err
}

func toSDKMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
