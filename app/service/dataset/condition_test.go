package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConditions(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []Condition
	}{
		{
			name:     "no where clause",
			sql:      "SELECT * FROM campaigns",
			expected: nil,
		},
		{
			name: "string equality and numeric comparison",
			sql:  "SELECT * FROM campaigns WHERE channel = 'Email' AND clicks > 5",
			expected: []Condition{
				{Field: "channel", Operator: OpEquals, Value: "Email"},
				{Field: "clicks", Operator: OpGreater, Value: "5"},
			},
		},
		{
			name: "lowercase keywords",
			sql:  "select * from campaigns where channel = 'SMS' and impressions < 100000",
			expected: []Condition{
				{Field: "channel", Operator: OpEquals, Value: "SMS"},
				{Field: "impressions", Operator: OpLess, Value: "100000"},
			},
		},
		{
			name: "group by truncates the clause",
			sql:  "SELECT channel, SUM(clicks) FROM campaigns WHERE clicks > 1000 GROUP BY channel",
			expected: []Condition{
				{Field: "clicks", Operator: OpGreater, Value: "1000"},
			},
		},
		{
			name: "order by truncates the clause",
			sql:  "SELECT * FROM campaigns WHERE influenced_revenue > 100000 ORDER BY run_date",
			expected: []Condition{
				{Field: "influenced_revenue", Operator: OpGreater, Value: "100000"},
			},
		},
		{
			name: "trailing semicolon is stripped",
			sql:  "SELECT * FROM campaigns WHERE campaign_id = 'CAMP_A';",
			expected: []Condition{
				{Field: "campaign_id", Operator: OpEquals, Value: "CAMP_A"},
			},
		},
		{
			name: "like wildcard becomes a regexp",
			sql:  "SELECT * FROM campaigns WHERE campaign_id LIKE 'CAMP%'",
			expected: []Condition{
				{Field: "campaign_id", Operator: OpLike, Value: "CAMP.*"},
			},
		},
		{
			name: "numeric equality",
			sql:  "SELECT * FROM campaigns WHERE clicks = 4000",
			expected: []Condition{
				{Field: "clicks", Operator: OpEquals, Value: "4000"},
			},
		},
		{
			name: "or boundaries split like and",
			sql:  "SELECT * FROM campaigns WHERE channel = 'Email' OR channel = 'SMS'",
			expected: []Condition{
				{Field: "channel", Operator: OpEquals, Value: "Email"},
				{Field: "channel", Operator: OpEquals, Value: "SMS"},
			},
		},
		{
			name: "unmatched clauses are dropped",
			sql:  "SELECT * FROM campaigns WHERE channel IS NOT NULL AND clicks > 100",
			expected: []Condition{
				{Field: "clicks", Operator: OpGreater, Value: "100"},
			},
		},
		{
			name:     "where with nothing parseable",
			sql:      "SELECT * FROM campaigns WHERE",
			expected: nil,
		},
		{
			name: "duplicate clauses are kept in order",
			sql:  "SELECT * FROM campaigns WHERE clicks > 100 AND clicks > 100",
			expected: []Condition{
				{Field: "clicks", Operator: OpGreater, Value: "100"},
				{Field: "clicks", Operator: OpGreater, Value: "100"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseConditions(tt.sql))
		})
	}
}

func TestParseConditions_PreservesValueCase(t *testing.T) {
	conditions := ParseConditions("SELECT * FROM campaigns where channel = 'Push Notification'")

	require.Len(t, conditions, 1)
	assert.Equal(t, "Push Notification", conditions[0].Value)
}
