package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campanion/app/client/llm"
	"campanion/app/config"
	"campanion/app/service/dataset"
	"campanion/app/service/memory"
	"campanion/app/util/jsonx"

	"github.com/samber/do"
)

// Service routes free-text queries to one of five handling branches and
// records data/reporting outcomes in the per-session conversation memory.
type Service struct {
	cfg       *config.Config
	memorySvc *memory.Service

	router     llm.Completer
	generation llm.Completer

	records []dataset.Record
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return newService(
		cfg,
		do.MustInvoke[*memory.Service](di),
		llm.NewClient(cfg.LLM.Routing),
		llm.NewClient(cfg.LLM.Generation),
	), nil
}

func newService(cfg *config.Config, memorySvc *memory.Service, router, generation llm.Completer) *Service {
	return &Service{
		cfg:        cfg,
		memorySvc:  memorySvc,
		router:     router,
		generation: generation,
		records:    dataset.SampleRecords(),
	}
}

// ProcessQuery handles one query start to finish: payload sniffing, routing,
// tool execution and the memory update. Only data and reporting results are
// recorded in the conversation. Provider failures propagate as errors, every
// other kind of malformed input degrades to a structured result.
func (s *Service) ProcessQuery(ctx context.Context, conv *memory.Conversation, query string) (*Result, error) {
	start := time.Now()

	payload, detected := jsonx.ExtractPayload(query)

	tool, err := s.route(ctx, query, detected)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}

	var result *Result

	switch tool {
	case ToolData:
		result, err = s.runDataTool(ctx, query)
	case ToolReporting:
		result, err = s.runReportingTool(ctx, query, payload)
	case ToolMemory:
		result, err = s.runMemoryTool(ctx, conv, query)
	case ToolGreeting:
		result = s.runGreeting(query)
	default:
		result = s.runFallback()
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tool, err)
	}

	if result.Tool == ToolData || result.Tool == ToolReporting {
		conv.Record(query, result)
	}

	slog.Debug("Processed query",
		"tool", result.Tool,
		"duration", time.Since(start))

	return result, nil
}
