package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripCodeFences removes incidental markdown fence markers around a
// response body. Models frequently wrap JSON in ```json ... ``` even
// when asked not to.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (```json).
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// findJSONCandidates scans the input for top-level JSON object
// candidates. It handles nested braces and string escaping with a
// byte-level state machine; iterating bytes is safe for the ASCII
// delimiters because UTF-8 never embeds them in multi-byte sequences.
func findJSONCandidates(s string) []string {
	var candidates []string
	var depth int
	start := -1
	var inString, escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}
		if b == '"' {
			inString = true
			continue
		}

		if b == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if b == '}' {
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					candidates = append(candidates, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return candidates
}

// decodeObject parses a model response into v. It tolerates code fences
// and surrounding prose, but any shape mismatch comes back as
// ErrMalformedResponse so the caller can surface one consistent message.
func decodeObject(raw string, v interface{}) error {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return ErrEmptyResponse
	}

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	var lastErr error
	for _, candidate := range findJSONCandidates(cleaned) {
		if err := json.Unmarshal([]byte(candidate), v); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	if lastErr != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, lastErr)
	}
	return fmt.Errorf("%w: no JSON object found in response", ErrMalformedResponse)
}
