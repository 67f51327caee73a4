package llm

import (
	"github.com/charmbracelet/log"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	Shape     Shape
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to a structured logger.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver creates an Observer that logs events through logger.
func NewLogObserver(logger *log.Logger) *LogObserver {
	return &LogObserver{logger: logger.With("component", "llm")}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	if !event.Success {
		o.logger.Warn("llm call failed",
			"task", event.Task, "model", event.Model,
			"latency_ms", event.LatencyMs, "code", event.ErrorCode)
		return
	}
	o.logger.Info("llm call",
		"task", event.Task, "model", event.Model, "shape", event.Shape,
		"latency_ms", event.LatencyMs)
}

// Observers fans a single event out to several observers.
type Observers []Observer

func (obs Observers) OnCallComplete(event LLMCallEvent) {
	for _, o := range obs {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
