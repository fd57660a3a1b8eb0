package agent

import (
	"campanion/app/service/dataset"
	"campanion/app/service/memory"
)

// Tool identifies one of the five query-handling branches.
type Tool string

const (
	ToolData      Tool = "data_tool"
	ToolReporting Tool = "reporting_tool"
	ToolMemory    Tool = "memory_tool"
	ToolGreeting  Tool = "greeting"
	ToolFallback  Tool = "fallback"
)

// Result is the tagged outcome of a processed query. Only the fields of the
// selected tool are populated.
type Result struct {
	Tool Tool `json:"tool"`

	// data_tool
	GeneratedQuery string           `json:"generated_query,omitempty"`
	StructuredData []dataset.Record `json:"structured_data,omitempty"`

	// reporting_tool
	FormattedOutput string `json:"formatted_output,omitempty"`
	DataSource      string `json:"data_source,omitempty"`
	RawData         any    `json:"raw_data,omitempty"`

	// memory_tool
	PreviousQueries []memory.Entry `json:"previous_queries,omitempty"`

	// data_tool and memory_tool
	Summary string `json:"summary,omitempty"`

	// greeting, fallback and the empty-memory reply
	Response string `json:"response,omitempty"`
}
