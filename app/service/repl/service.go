package repl

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"campanion/app/service/queue"

	"github.com/samber/do"
)

var exitWords = map[string]bool{
	"quit":    true,
	"exit":    true,
	"bye":     true,
	"goodbye": true,
}

// Service reads console queries from stdin and feeds them to the queue.
type Service struct {
	queueSvc *queue.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		queueSvc: do.MustInvoke[*queue.Service](di),
	}, nil
}

func (s *Service) Run(ctx context.Context) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Welcome to the Campaign Analytics Chatbot!")
	fmt.Println("I can help you analyze marketing campaign data.")
	fmt.Println("You can paste JSON data directly in your query to format it as a table.")
	fmt.Println("Type 'quit', 'exit', or 'bye' to end the conversation.")
	fmt.Println(strings.Repeat("=", 60))

	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		if exitWords[strings.ToLower(query)] {
			fmt.Println("Chatbot: Thank you for using the Campaign Analytics Chatbot. Goodbye!")
			return nil
		}

		s.queueSvc.Add(query)
	}

	return scanner.Err()
}
