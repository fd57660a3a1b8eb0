package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	_ "embed"
)

//go:embed prompt_route_system.txt
var routeSystemPrompt string

// greetingKeywords feed the greeting handler's case-insensitive substring
// check when picking its response.
var greetingKeywords = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}

// greetingPattern gates the routing shortcut. It matches on word boundaries
// so that words like "this" don't hijack queries into the greeting branch.
var greetingPattern = regexp.MustCompile(`(?i)\b(hi|hello|hey|good\s+(morning|afternoon|evening))\b`)

// route picks the handling branch for a query.
//
// An embedded JSON payload always wins the reporting branch: the classifier
// reply could not change the outcome, so no provider call is made. Greetings
// are matched locally for the same reason. Everything else goes through one
// classification call whose reply is mapped onto the Tool enum; unmapped
// replies fall through to ToolFallback. No retries on ambiguous replies.
func (s *Service) route(ctx context.Context, query string, payloadDetected bool) (Tool, error) {
	if payloadDetected {
		return ToolReporting, nil
	}

	if greetingPattern.MatchString(query) {
		return ToolGreeting, nil
	}

	prompt := fmt.Sprintf("User query: %s\n\nWhich tool should be used? Respond with only the tool name.", query)

	reply, err := s.router.Complete(ctx, routeSystemPrompt, prompt)
	if err != nil {
		return ToolFallback, fmt.Errorf("classification request failed: %w", err)
	}

	return toolFromLabel(reply), nil
}

// toolFromLabel maps a raw classifier reply onto the Tool enum by substring
// containment. Unknown labels map to ToolFallback.
func toolFromLabel(label string) Tool {
	label = strings.ToLower(strings.TrimSpace(label))

	switch {
	case strings.Contains(label, string(ToolData)):
		return ToolData
	case strings.Contains(label, string(ToolReporting)):
		return ToolReporting
	case strings.Contains(label, string(ToolMemory)):
		return ToolMemory
	case strings.Contains(label, string(ToolGreeting)):
		return ToolGreeting
	default:
		return ToolFallback
	}
}
