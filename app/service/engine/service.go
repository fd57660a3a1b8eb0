package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campanion/app/config"
	"campanion/app/service/agent"
	"campanion/app/service/memory"
	"campanion/app/service/queue"

	"github.com/samber/do"
)

// Service consumes queued console queries, runs them through the agent and
// renders the result. One conversation spans the whole console session.
type Service struct {
	cfg       *config.Config
	agentSvc  *agent.Service
	memorySvc *memory.Service
	queueSvc  *queue.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:       do.MustInvoke[*config.Config](di),
		agentSvc:  do.MustInvoke[*agent.Service](di),
		memorySvc: do.MustInvoke[*memory.Service](di),
		queueSvc:  do.MustInvoke[*queue.Service](di),
	}, nil
}

func (s *Service) Run(ctx context.Context) {
	sessionID := s.memorySvc.NewSession()
	conv := s.memorySvc.Session(sessionID)
	defer s.memorySvc.Drop(sessionID)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.queueSvc.Channel():
			if !ok {
				return
			}

			start := time.Now()

			result, err := s.agentSvc.ProcessQuery(ctx, conv, msg.Text)
			if err != nil {
				slog.Error("Failed to process query", "query", msg.Text, "error", err)
				fmt.Println("\nChatbot: Sorry, I couldn't reach the language model. Please try again.")
				continue
			}

			s.render(result)

			slog.Debug("Processed console query",
				"tool", result.Tool,
				"duration", time.Since(start))
		}
	}
}

func (s *Service) render(result *agent.Result) {
	fmt.Print("\nChatbot: ")

	switch result.Tool {
	case agent.ToolData:
		fmt.Println(result.Summary)

		if len(result.StructuredData) > 0 {
			fmt.Printf("\nI found %d matching campaigns.\n", len(result.StructuredData))

			if len(result.StructuredData) <= 3 {
				fmt.Println("Here are the details:")
				for _, record := range result.StructuredData {
					fmt.Printf("  - %s: %s campaign with $%.0f revenue\n",
						record.CampaignID, record.Channel, record.InfluencedRevenue)
				}
			}
		}

	case agent.ToolReporting:
		fmt.Printf("Using %s:\n", result.DataSource)
		fmt.Println(result.FormattedOutput)

	case agent.ToolMemory:
		fmt.Println(result.Summary)

	default:
		fmt.Println(result.Response)
	}

	fmt.Println(strings.Repeat("-", 40))
}
