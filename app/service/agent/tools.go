package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"campanion/app/service/dataset"
	"campanion/app/service/memory"

	_ "embed"

	"github.com/elliotchance/pie/v2"
)

//go:embed prompt_sql_system.txt
var sqlSystemPrompt string

//go:embed prompt_summary_system.txt
var summarySystemPrompt string

//go:embed prompt_summary_user.txt
var summaryUserTemplate string

//go:embed prompt_reporting_system.txt
var reportingSystemPrompt string

//go:embed prompt_reporting_user.txt
var reportingUserTemplate string

//go:embed prompt_memory_system.txt
var memorySystemPrompt string

//go:embed prompt_memory_user.txt
var memoryUserTemplate string

const (
	greetingResponse = "Hello! I'm your data analytics assistant. How can I help you today?"
	fallbackResponse = "I can help with campaign analytics queries like revenue, performance, CTR, etc."

	noMemoryResponse = "No previous queries found in memory."
	noMemorySummary  = "I don't have any previous results to reference yet."
)

// runDataTool asks the model for a pseudo-SQL query, evaluates its WHERE
// clause against the sample records and asks the model to summarize the
// matches.
func (s *Service) runDataTool(ctx context.Context, query string) (*Result, error) {
	sqlQuery, err := s.generation.Complete(ctx, sqlSystemPrompt, query)
	if err != nil {
		return nil, fmt.Errorf("query generation failed: %w", err)
	}
	sqlQuery = cleanModelReply(sqlQuery, "sql")

	conditions := dataset.ParseConditions(sqlQuery)
	filtered := dataset.Filter(s.records, conditions)

	userPrompt := renderTemplate(summaryUserTemplate, map[string]string{
		"data":  mustJSON(filtered),
		"query": query,
	})

	summary, err := s.generation.Complete(ctx, summarySystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("summary generation failed: %w", err)
	}

	return &Result{
		Tool:           ToolData,
		GeneratedQuery: sqlQuery,
		StructuredData: filtered,
		Summary:        summary,
	}, nil
}

// runReportingTool formats the JSON payload embedded in the query, falling
// back to the sample records when none was provided.
func (s *Service) runReportingTool(ctx context.Context, query string, payload any) (*Result, error) {
	var (
		data       any
		dataSource string
	)

	if payload == nil {
		data = s.records
		dataSource = "sample data (no JSON provided in query)"
	} else {
		data = payload
		dataSource = "JSON data from your query"
	}

	userPrompt := renderTemplate(reportingUserTemplate, map[string]string{
		"query":     query,
		"json_data": mustJSON(data),
	})

	formatted, err := s.generation.Complete(ctx, reportingSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("report formatting failed: %w", err)
	}

	return &Result{
		Tool:            ToolReporting,
		FormattedOutput: formatted,
		DataSource:      dataSource,
		RawData:         data,
	}, nil
}

// runMemoryTool answers queries that reference earlier results. An empty
// conversation short-circuits to a canned reply without a provider call.
func (s *Service) runMemoryTool(ctx context.Context, conv *memory.Conversation, query string) (*Result, error) {
	if conv.Empty() {
		return &Result{
			Tool:     ToolMemory,
			Response: noMemoryResponse,
			Summary:  noMemorySummary,
		}, nil
	}

	snapshot := conv.Snapshot()

	userPrompt := renderTemplate(memoryUserTemplate, map[string]string{
		"query":          query,
		"memory_context": mustJSON(snapshot),
	})

	summary, err := s.generation.Complete(ctx, memorySystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("memory summary failed: %w", err)
	}

	return &Result{
		Tool:            ToolMemory,
		PreviousQueries: snapshot,
		Summary:         summary,
	}, nil
}

// runGreeting answers with a canned response, no provider call involved.
func (s *Service) runGreeting(query string) *Result {
	lower := strings.ToLower(query)

	matched := pie.Any(greetingKeywords, func(keyword string) bool {
		return strings.Contains(lower, keyword)
	})

	response := fallbackResponse
	if matched {
		response = greetingResponse
	}

	return &Result{Tool: ToolGreeting, Response: response}
}

func (s *Service) runFallback() *Result {
	return &Result{Tool: ToolFallback, Response: fallbackResponse}
}

// cleanModelReply strips markdown code fences and a language hint from a
// model reply.
func cleanModelReply(reply, language string) string {
	reply = strings.Trim(reply, "`")
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, language)

	return strings.TrimSpace(reply)
}

func renderTemplate(template string, values map[string]string) string {
	for key, value := range values {
		template = strings.ReplaceAll(template, "{"+key+"}", value)
	}

	return template
}

func mustJSON(value any) string {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "null"
	}

	return string(data)
}
