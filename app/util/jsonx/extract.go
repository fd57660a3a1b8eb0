package jsonx

import (
	"encoding/json"
	"regexp"
	"strings"
)

var payloadPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)\{.*\}`),
	regexp.MustCompile(`(?s)\[.*\]`),
}

// ExtractPayload scans free text for an embedded JSON object or array.
// Best effort: candidates that fail to parse are retried once after cleanup,
// then skipped. Returns false when nothing parseable is found, never an error.
func ExtractPayload(text string) (any, bool) {
	for _, pattern := range payloadPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if value, ok := tryParse(match); ok {
				return value, true
			}

			cleaned := strings.TrimSpace(match)
			cleaned = strings.TrimSuffix(cleaned, ",")

			if value, ok := tryParse(cleaned); ok {
				return value, true
			}
		}
	}

	return nil, false
}

func tryParse(candidate string) (any, bool) {
	var value any
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, false
	}

	return value, true
}
