package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// ExtractJSON pulls a JSON payload out of free-text model output. A
// fenced code block wins if present; otherwise the first balanced
// object or array in the response is taken.
func ExtractJSON(response string) (string, error) {
	if m := fencedJSONPattern.FindStringSubmatch(response); len(m) == 2 {
		candidate := strings.TrimSpace(m[1])
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	trimmed := strings.TrimSpace(response)
	if json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	objStart := strings.Index(trimmed, "{")
	arrStart := strings.Index(trimmed, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findMatchingDelimiter(trimmed, objStart, '{', '}'); end != -1 {
			candidate := trimmed[objStart : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}
	} else if arrStart != -1 {
		if end := findMatchingDelimiter(trimmed, arrStart, '[', ']'); end != -1 {
			candidate := trimmed[arrStart : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}
	}

	return "", ErrUnexpectedBehaviorOfAI
}

// findMatchingDelimiter scans for the closing delimiter matching the
// opener at start, skipping string literals and escapes.
func findMatchingDelimiter(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' && inString {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
