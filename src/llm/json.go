package llm

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// DecodeJSON pulls the first JSON object out of a model reply and decodes it
// into out. Replies wrapped in markdown fences or surrounded by narrative are
// accepted.
func DecodeJSON(raw string, out any) error {
	candidate := extractJSON(raw)
	if candidate == "" {
		return fmt.Errorf("%w: no JSON object in response (response: %.200s)", ErrMalformedResponse, raw)
	}
	if err := sonic.UnmarshalString(candidate, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// extractJSON finds the first {...} object in text, preferring the body of a
// ```json fence when there is one.
func extractJSON(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		start := idx + len("```json")
		if end := strings.Index(text[start:], "```"); end >= 0 {
			text = text[start : start+end]
		}
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		start := idx + len("```")
		if end := strings.Index(text[start:], "```"); end >= 0 {
			if candidate := strings.TrimSpace(text[start : start+end]); strings.HasPrefix(candidate, "{") {
				text = candidate
			}
		}
	}

	depth := 0
	start := -1
	inString, escaped := false, false
	for i, ch := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
