package llm

import (
	"encoding/json"
	"strings"
)

// The reasoning service is asked for pure JSON but is not schema-constrained:
// replies occasionally carry prose, markdown fences, or trailing commentary
// around the payload. Decoding is therefore best-effort with three tiers:
// parse the whole reply, then the first balanced {...} span, then give up and
// return the raw text tagged as a fallback. Decoding never returns an error.

// FallbackMessage tags a reply that could not be decoded into JSON.
const FallbackMessage = "Could not parse"

// Fallback carries the raw reply text when structured decoding fails.
// It is a degraded-but-successful result, not an error.
type Fallback struct {
	Error string `json:"error"`
	Raw   string `json:"raw"`
}

// Decode converts a free-form reply into a generic JSON object, or a
// *Fallback holding the original text when no object can be recovered.
func Decode(text string) any {
	var obj map[string]any
	if fb := DecodeInto(text, &obj); fb != nil {
		return fb
	}
	return obj
}

// DecodeInto decodes a free-form reply into v. A nil return means v was
// populated; otherwise the returned Fallback carries the original text.
func DecodeInto(text string, v any) *Fallback {
	jsonText, ok := ExtractJSON(text)
	if !ok {
		return &Fallback{Error: FallbackMessage, Raw: text}
	}
	if err := json.Unmarshal([]byte(jsonText), v); err != nil {
		return &Fallback{Error: FallbackMessage, Raw: text}
	}
	return nil
}

// ExtractJSON locates a parseable JSON object inside free-form reply text.
func ExtractJSON(text string) (string, bool) {
	cleaned := CleanJSONBlock(text)

	if json.Valid([]byte(cleaned)) && strings.HasPrefix(strings.TrimSpace(cleaned), "{") {
		return cleaned, true
	}

	if span, ok := balancedObject(cleaned); ok && json.Valid([]byte(span)) {
		return span, true
	}

	return "", false
}

// balancedObject returns the first balanced {...} span, tracking string
// literals and escapes so braces inside values do not confuse the count.
func balancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Braces inside strings are literal.
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
