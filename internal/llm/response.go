package llm

import (
	"fmt"
	"strings"

	"github.com/openai/openai-go"
)

// Shape tags which representation a ChatResponse carries.
type Shape int

const (
	ShapeUnknown Shape = iota
	// ShapeCompletion is a typed SDK completion object.
	ShapeCompletion
	// ShapeMap is a decoded JSON body shaped like {"choices":[{"message":{...}}]}.
	ShapeMap
	// ShapeText is a plain string body.
	ShapeText
	// ShapeChunks is a streamed sequence of content deltas.
	ShapeChunks
)

func (s Shape) String() string {
	switch s {
	case ShapeCompletion:
		return "completion"
	case ShapeMap:
		return "map"
	case ShapeText:
		return "text"
	case ShapeChunks:
		return "chunks"
	default:
		return "unknown"
	}
}

// Chunk is one streamed piece of a response.
type Chunk struct {
	Content string
}

// ChatResponse is a tagged union over the response shapes a provider can
// return. Exactly one payload field is meaningful, selected by Shape.
type ChatResponse struct {
	Shape      Shape
	Completion *openai.ChatCompletion
	Map        map[string]any
	Text       string
	Chunks     []Chunk
}

func CompletionResponse(c *openai.ChatCompletion) ChatResponse {
	return ChatResponse{Shape: ShapeCompletion, Completion: c}
}

func MapResponse(m map[string]any) ChatResponse {
	return ChatResponse{Shape: ShapeMap, Map: m}
}

func TextResponse(s string) ChatResponse {
	return ChatResponse{Shape: ShapeText, Text: s}
}

func ChunksResponse(chunks []Chunk) ChatResponse {
	return ChatResponse{Shape: ShapeChunks, Chunks: chunks}
}

const unrecognisedPrefix = "[unrecognised llm response shape: "

// IsUnrecognised reports whether text is the marker ExtractText returns for
// responses it could not read.
func IsUnrecognised(text string) bool {
	return strings.HasPrefix(text, unrecognisedPrefix)
}

func unrecognised(format string, args ...any) string {
	return unrecognisedPrefix + fmt.Sprintf(format, args...) + "]"
}

// ExtractText returns the assistant text carried by resp. It never panics;
// a response it cannot read yields a marked sentinel string instead of a
// silent stringification.
func ExtractText(resp ChatResponse) string {
	switch resp.Shape {
	case ShapeCompletion:
		return completionText(resp.Completion)
	case ShapeMap:
		return mapText(resp.Map)
	case ShapeText:
		return resp.Text
	case ShapeChunks:
		var b strings.Builder
		for _, c := range resp.Chunks {
			b.WriteString(c.Content)
		}
		return b.String()
	default:
		return unrecognised("shape %d", int(resp.Shape))
	}
}

func completionText(c *openai.ChatCompletion) string {
	if c == nil {
		return unrecognised("nil completion")
	}
	if len(c.Choices) == 0 {
		return unrecognised("completion without choices")
	}
	return c.Choices[0].Message.Content
}

// mapText reads choices[0].message.content, accepting a message that is
// itself a string.
func mapText(m map[string]any) string {
	choices, ok := m["choices"].([]any)
	if !ok || len(choices) == 0 {
		return unrecognised("map without choices")
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return unrecognised("choice of type %T", choices[0])
	}
	switch msg := first["message"].(type) {
	case map[string]any:
		content, _ := msg["content"].(string)
		return content
	case string:
		return msg
	default:
		return unrecognised("message of type %T", first["message"])
	}
}
