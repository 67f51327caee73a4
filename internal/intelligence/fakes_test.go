package intelligence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/llm"
)

// scriptedClient answers each task with a fixed response or error and
// records every request it receives.
type scriptedClient struct {
	mu        sync.Mutex
	responses map[llm.TaskType]llm.ChatResponse
	errs      map[llm.TaskType]error
	requests  []llm.CompleteRequest
}

func newScriptedClient() *scriptedClient {
	return &scriptedClient{
		responses: map[llm.TaskType]llm.ChatResponse{},
		errs:      map[llm.TaskType]error{},
	}
}

func (c *scriptedClient) on(task llm.TaskType, text string) *scriptedClient {
	c.responses[task] = llm.TextResponse(text)
	return c
}

func (c *scriptedClient) fail(task llm.TaskType, err error) *scriptedClient {
	c.errs[task] = err
	return c
}

func (c *scriptedClient) Complete(_ context.Context, req llm.CompleteRequest) (llm.ChatResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	if err := c.errs[req.Task]; err != nil {
		return llm.ChatResponse{}, err
	}
	if resp, ok := c.responses[req.Task]; ok {
		return resp, nil
	}
	return llm.TextResponse(""), nil
}

func (c *scriptedClient) calls(task llm.TaskType) []llm.CompleteRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []llm.CompleteRequest
	for _, r := range c.requests {
		if r.Task == task {
			out = append(out, r)
		}
	}
	return out
}

// memorySaver assigns sequential IDs and keeps what it saved.
type memorySaver struct {
	saved []*domain.Reminder
	err   error
}

func (s *memorySaver) Save(_ context.Context, r *domain.Reminder) (*domain.Reminder, error) {
	if s.err != nil {
		return nil, s.err
	}
	rec := *r
	rec.ID = fmt.Sprintf("rem-%d", len(s.saved)+1)
	s.saved = append(s.saved, &rec)
	return &rec, nil
}

type fixedPolarity float64

func (p fixedPolarity) Polarity(string) float64 { return float64(p) }

type recordingObserver struct {
	decisions []Decision
}

func (o *recordingObserver) OnDecision(d Decision) { o.decisions = append(o.decisions, d) }

func verdictJSON(key string, flag bool, confidence float64) string {
	return fmt.Sprintf(`{"%s": %t, "confidence": %g, "details": {}}`, key, flag, confidence)
}

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
