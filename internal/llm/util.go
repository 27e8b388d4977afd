// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock extracts the JSON payload from a raw model response.
// LLMs often wrap JSON in ```json ... ``` blocks or surround it with
// conversational prose even when instructed not to; both are stripped here.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		// Handle generic ``` ... ``` blocks
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// If first line looks like a language identifier (no spaces, short), skip it
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	// Drop any preamble or trailing prose around the first JSON value
	objStart := strings.Index(text, "{")
	arrStart := strings.Index(text, "[")

	start := objStart
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start = arrStart
	}
	if start < 0 {
		return text
	}

	candidate := text[start:]
	var extracted string
	if candidate[0] == '{' {
		extracted = extractJSONObject(candidate)
	} else {
		extracted = extractJSONArray(candidate)
	}
	if extracted != "" {
		return extracted
	}

	return text
}

// extractJSONObject returns the balanced JSON object at the start of s,
// or "" if s does not begin with a complete object.
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced JSON array at the start of s,
// or "" if s does not begin with a complete array.
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

// extractBalanced scans s for the closing delimiter matching the opening one
// at position 0, honoring string literals and escape sequences.
func extractBalanced(s string, open, closing byte) string {
	if len(s) == 0 || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Delimiters inside string literals don't count
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}

	return ""
}
