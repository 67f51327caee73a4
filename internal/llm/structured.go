package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// finder pulls one JSON candidate out of free text.
type finder func(string) (string, bool)

// firstOf returns the candidate from the first finder that succeeds.
func firstOf(finders ...finder) finder {
	return func(s string) (string, bool) {
		for _, f := range finders {
			if c, ok := f(s); ok {
				return c, true
			}
		}
		return "", false
	}
}

var (
	objectFinder = firstOf(fenced('{', '}'), balanced('{', '}'), whole('{', '}'))
	arrayFinder  = firstOf(fenced('[', ']'), balanced('[', ']'), whole('[', ']'))
)

// FindJSONObject locates a JSON object in LLM output: inside a code fence
// first, then anywhere in the text, then the whole trimmed text.
func FindJSONObject(raw string) (string, bool) {
	return objectFinder(raw)
}

// FindJSONArray is FindJSONObject for top-level arrays.
func FindJSONArray(raw string) (string, bool) {
	return arrayFinder(raw)
}

// ExtractJSON extracts a JSON object of type T from raw LLM text output.
// It handles markdown code fences, leading/trailing text, and nested braces.
// If validator is non-nil, the extracted value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	candidate, ok := FindJSONObject(raw)
	if !ok {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	result, err := DecodeJSON[T](candidate)
	if err != nil {
		return zero, err
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// DecodeJSON decodes a JSON candidate after removing comments and fixing
// leading-decimal numbers. If that still fails, the candidate is passed
// through jsonrepair once before giving up.
func DecodeJSON[T any](candidate string) (T, error) {
	var result T

	cleaned := normalizeLeadingDecimalNumbers(stripJSONComments(candidate))
	err := json.Unmarshal([]byte(cleaned), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(cleaned)
	if repairErr != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	var again T
	if err := json.Unmarshal([]byte(repaired), &again); err != nil {
		return again, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return again, nil
}

// fenced looks inside markdown code fences (```json ... ``` or ``` ... ```)
// for a balanced block.
func fenced(open, close byte) finder {
	return func(s string) (string, bool) {
		for _, body := range fenceBodies(s) {
			if block := extractBalanced(body, open, close); block != "" {
				return block, true
			}
		}
		return "", false
	}
}

func balanced(open, close byte) finder {
	return func(s string) (string, bool) {
		block := extractBalanced(s, open, close)
		return block, block != ""
	}
}

// whole accepts the entire trimmed text when it is delimited by open and
// close, even if the brackets do not balance. Repair may still rescue it.
func whole(open, close byte) finder {
	return func(s string) (string, bool) {
		t := strings.TrimSpace(s)
		if len(t) >= 2 && t[0] == open && t[len(t)-1] == close {
			return t, true
		}
		return "", false
	}
}

// fenceBodies returns the contents of every closed code fence in s.
func fenceBodies(s string) []string {
	var bodies []string
	var current []string
	inFence := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inFence {
				bodies = append(bodies, strings.Join(current, "\n"))
				current = current[:0]
			}
			inFence = !inFence
			continue
		}
		if inFence {
			current = append(current, line)
		}
	}
	return bodies
}

// extractBalanced finds the first balanced open ... close block in the text.
func extractBalanced(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		if c == '\\' && inString {
			escaped = true
			continue
		}

		if c == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}

// stripJSONComments removes C-style line comments (// ...) outside of JSON string
// values. LLMs sometimes emit comments in JSON output despite instructions not to.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}

		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}

		if inString {
			b.WriteByte(c)
			continue
		}

		// Line comment: skip to end of line
		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}

		// Block comment: skip to closing */
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i+1 < len(s) {
				if s[i] == '*' && s[i+1] == '/' {
					i++
					break
				}
				i++
			}
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

// normalizeLeadingDecimalNumbers rewrites invalid JSON numeric literals such as
// ".8" or "-.3" into valid forms "0.8" and "-0.3" outside string values.
func normalizeLeadingDecimalNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}

		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}

		if inString {
			b.WriteByte(c)
			continue
		}

		// JSON does not allow ".5" or "-.5". Some models emit these forms.
		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prevNonSpace(s, i-1)) {
			b.WriteByte('0')
		}

		b.WriteByte(c)
	}

	return b.String()
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		if s[i] != ' ' && s[i] != '\n' && s[i] != '\r' && s[i] != '\t' {
			return s[i]
		}
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
