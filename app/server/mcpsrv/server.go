package mcpsrv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"campanion/app/service/agent"
	"campanion/app/service/memory"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

// Server exposes the analytics agent as an MCP stdio tool so MCP-capable
// clients can issue queries and keep a session going across calls.
type Server struct {
	agentSvc  *agent.Service
	memorySvc *memory.Service
	mcpServer *server.MCPServer
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		agentSvc:  do.MustInvoke[*agent.Service](di),
		memorySvc: do.MustInvoke[*memory.Service](di),
	}

	mcpServer := server.NewMCPServer("campanion", "1.0.0")

	tool := mcp.NewTool("analytics_query",
		mcp.WithDescription("Answer campaign analytics questions: data lookups over the campaign dataset, JSON report formatting and recall of previous results."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text analytics query. May embed a JSON payload to format."),
		),
		mcp.WithString("session_id",
			mcp.Description("Session id returned by a previous call. Keeps the rolling memory of past results."),
		),
	)

	mcpServer.AddTool(tool, s.handleQuery)

	s.mcpServer = mcpServer

	return s, nil
}

func (s *Server) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sessionID := request.GetString("session_id", "")
	if sessionID == "" {
		sessionID = s.memorySvc.NewSession()
	}
	conv := s.memorySvc.Session(sessionID)

	result, err := s.agentSvc.ProcessQuery(ctx, conv, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query processing failed: %v", err)), nil
	}

	payload, err := json.Marshal(struct {
		SessionID string        `json:"session_id"`
		Result    *agent.Result `json:"result"`
	}{sessionID, result})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(payload)), nil
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)

	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}
