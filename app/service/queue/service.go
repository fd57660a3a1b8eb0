package queue

import (
	"log/slog"

	"github.com/samber/do"
)

const bufferSize = 64

var _ do.Shutdownable = (*Service)(nil)

// Service buffers incoming console queries so the engine processes them one
// at a time, start to finish.
type Service struct {
	queue chan Query
}

type Query struct {
	Text string
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		queue: make(chan Query, bufferSize),
	}, nil
}

func (s *Service) Add(text string) {
	defer func() {
		if r := recover(); r != nil {

		}
	}()

	select {
	case s.queue <- Query{text}:
	default:
		slog.Warn("query queue is full")
	}
}

func (s *Service) Channel() <-chan Query {
	return s.queue
}

func (s *Service) Shutdown() error {
	close(s.queue)

	return nil
}
