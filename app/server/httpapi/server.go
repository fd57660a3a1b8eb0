package httpapi

import (
	"context"
	"log/slog"
	"strings"

	"campanion/app/config"
	"campanion/app/service/agent"
	"campanion/app/service/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
)

// Server exposes the agent over HTTP. Concurrent queries are safe because
// conversation memory is scoped per session, not per process.
type Server struct {
	cfg       *config.Config
	agentSvc  *agent.Service
	memorySvc *memory.Service
	app       *fiber.App
}

type queryRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

type queryResponse struct {
	SessionID string        `json:"session_id"`
	Result    *agent.Result `json:"result"`
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:       do.MustInvoke[*config.Config](di),
		agentSvc:  do.MustInvoke[*agent.Service](di),
		memorySvc: do.MustInvoke[*memory.Service](di),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Post("/api/v1/query", s.handleQuery)

	s.app = app

	return s, nil
}

func (s *Server) handleQuery(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Query) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query is required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.memorySvc.NewSession()
	}
	conv := s.memorySvc.Session(sessionID)

	result, err := s.agentSvc.ProcessQuery(c.UserContext(), conv, req.Query)
	if err != nil {
		slog.Error("Query processing failed",
			"session_id", sessionID,
			"error", err)

		return fiber.NewError(fiber.StatusBadGateway, "language model provider is unavailable")
	}

	return c.JSON(queryResponse{
		SessionID: sessionID,
		Result:    result,
	})
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	slog.Info("HTTP API listening", "addr", s.cfg.HTTP.Addr)

	if err := s.app.Listen(s.cfg.HTTP.Addr); err != nil {
		return oops.Wrapf(err, "http server failed")
	}

	return nil
}
