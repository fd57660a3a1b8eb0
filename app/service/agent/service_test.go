package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"campanion/app/config"
	"campanion/app/service/memory"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter replays scripted replies and fails on unexpected calls, so
// tests can assert which branches talk to the provider.
type fakeCompleter struct {
	replies []string
	calls   int
	err     error
}

func (f *fakeCompleter) Complete(_ context.Context, _, user string) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	if f.calls >= len(f.replies) {
		return "", fmt.Errorf("unexpected provider call %d (user prompt: %q)", f.calls+1, user)
	}

	reply := f.replies[f.calls]
	f.calls++

	return reply, nil
}

func newTestAgent(t *testing.T, router, generation *fakeCompleter) (*Service, *memory.Conversation) {
	t.Helper()

	di := do.New()
	cfg := &config.Config{}
	do.ProvideValue(di, cfg)

	memorySvc, err := memory.New(di)
	require.NoError(t, err)

	svc := newService(cfg, memorySvc, router, generation)
	conv := memorySvc.Session(memorySvc.NewSession())

	return svc, conv
}

func TestProcessQuery_DataTool(t *testing.T) {
	router := &fakeCompleter{replies: []string{"data_tool"}}
	generation := &fakeCompleter{replies: []string{
		"```sql\nSELECT * FROM campaigns WHERE channel = 'Email';\n```",
		"Email campaigns brought in $200,000 of influenced revenue.",
	}}
	svc, conv := newTestAgent(t, router, generation)

	result, err := svc.ProcessQuery(context.Background(), conv, "Show me Email campaign revenue")

	require.NoError(t, err)
	assert.Equal(t, ToolData, result.Tool)
	assert.Equal(t, "SELECT * FROM campaigns WHERE channel = 'Email';", result.GeneratedQuery)
	require.Len(t, result.StructuredData, 1)
	assert.Equal(t, "CAMP_B", result.StructuredData[0].CampaignID)
	assert.Equal(t, "Email campaigns brought in $200,000 of influenced revenue.", result.Summary)

	snapshot := conv.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Show me Email campaign revenue", snapshot[0].Query)
}

func TestProcessQuery_Greeting(t *testing.T) {
	svc, conv := newTestAgent(t, &fakeCompleter{}, &fakeCompleter{})

	result, err := svc.ProcessQuery(context.Background(), conv, "Good Morning!")

	require.NoError(t, err)
	assert.Equal(t, ToolGreeting, result.Tool)
	assert.Equal(t, greetingResponse, result.Response)

	// Greetings never populate memory.
	assert.True(t, conv.Empty())
}

func TestProcessQuery_Fallback(t *testing.T) {
	router := &fakeCompleter{replies: []string{"none of the above"}}
	svc, conv := newTestAgent(t, router, &fakeCompleter{})

	result, err := svc.ProcessQuery(context.Background(), conv, "What's the weather like today?")

	require.NoError(t, err)
	assert.Equal(t, ToolFallback, result.Tool)
	assert.Equal(t, fallbackResponse, result.Response)
	assert.True(t, conv.Empty())
}

func TestProcessQuery_ReportingWithPayload(t *testing.T) {
	generation := &fakeCompleter{replies: []string{"| campaign | clicks |\n| CAMP_X | 100 |"}}
	svc, conv := newTestAgent(t, &fakeCompleter{}, generation)

	query := `Format this as a table: {"campaign_id": "CAMP_X", "clicks": 100}`
	result, err := svc.ProcessQuery(context.Background(), conv, query)

	require.NoError(t, err)
	assert.Equal(t, ToolReporting, result.Tool)
	assert.Equal(t, "JSON data from your query", result.DataSource)
	assert.Equal(t, map[string]any{"campaign_id": "CAMP_X", "clicks": float64(100)}, result.RawData)
	assert.NotEmpty(t, result.FormattedOutput)

	require.Len(t, conv.Snapshot(), 1)
}

func TestProcessQuery_ReportingWithoutPayload(t *testing.T) {
	router := &fakeCompleter{replies: []string{"reporting_tool"}}
	generation := &fakeCompleter{replies: []string{"formatted table"}}
	svc, conv := newTestAgent(t, router, generation)

	result, err := svc.ProcessQuery(context.Background(), conv, "Give me a report of all campaigns")

	require.NoError(t, err)
	assert.Equal(t, ToolReporting, result.Tool)
	assert.Equal(t, "sample data (no JSON provided in query)", result.DataSource)
	assert.Equal(t, svc.records, result.RawData)

	require.Len(t, conv.Snapshot(), 1)
}

func TestProcessQuery_MemoryToolEmpty(t *testing.T) {
	router := &fakeCompleter{replies: []string{"memory_tool"}}
	generation := &fakeCompleter{} // must not be called
	svc, conv := newTestAgent(t, router, generation)

	result, err := svc.ProcessQuery(context.Background(), conv, "Summarize the previous results")

	require.NoError(t, err)
	assert.Equal(t, ToolMemory, result.Tool)
	assert.Equal(t, noMemoryResponse, result.Response)
	assert.Equal(t, noMemorySummary, result.Summary)
	assert.Zero(t, generation.calls)

	// Memory tool results are never recorded either.
	assert.True(t, conv.Empty())
}

func TestProcessQuery_MemoryToolWithHistory(t *testing.T) {
	router := &fakeCompleter{replies: []string{"memory_tool"}}
	generation := &fakeCompleter{replies: []string{"Last time you asked about Email revenue."}}
	svc, conv := newTestAgent(t, router, generation)

	conv.Record("Show me Email campaign revenue", &Result{Tool: ToolData})

	result, err := svc.ProcessQuery(context.Background(), conv, "Summarize the previous results")

	require.NoError(t, err)
	assert.Equal(t, ToolMemory, result.Tool)
	require.Len(t, result.PreviousQueries, 1)
	assert.Equal(t, "Show me Email campaign revenue", result.PreviousQueries[0].Query)
	assert.Equal(t, "Last time you asked about Email revenue.", result.Summary)

	require.Len(t, conv.Snapshot(), 1)
}

func TestProcessQuery_MemoryKeepsLastTwo(t *testing.T) {
	router := &fakeCompleter{replies: []string{"data_tool", "data_tool", "data_tool"}}
	generation := &fakeCompleter{replies: []string{
		"SELECT * FROM campaigns", "summary one",
		"SELECT * FROM campaigns", "summary two",
		"SELECT * FROM campaigns", "summary three",
	}}
	svc, conv := newTestAgent(t, router, generation)

	for _, query := range []string{"first query", "second query", "third query"} {
		_, err := svc.ProcessQuery(context.Background(), conv, query)
		require.NoError(t, err)
	}

	snapshot := conv.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "second query", snapshot[0].Query)
	assert.Equal(t, "third query", snapshot[1].Query)
}

func TestProcessQuery_ProviderFailurePropagates(t *testing.T) {
	router := &fakeCompleter{err: errors.New("rate limited")}
	svc, conv := newTestAgent(t, router, &fakeCompleter{})

	_, err := svc.ProcessQuery(context.Background(), conv, "Show me revenue by channel")

	require.Error(t, err)
	assert.True(t, conv.Empty())
}

func TestRunGreeting_GenericResponseWithoutKeyword(t *testing.T) {
	svc, _ := newTestAgent(t, &fakeCompleter{}, &fakeCompleter{})

	result := svc.runGreeting("How do you do")

	assert.Equal(t, ToolGreeting, result.Tool)
	assert.Equal(t, fallbackResponse, result.Response)
}
