package dataset

import (
	"regexp"
	"strings"
)

type Operator string

const (
	OpEquals  Operator = "="
	OpGreater Operator = ">"
	OpLess    Operator = "<"
	OpLike    Operator = "LIKE"
)

// Condition is one comparison predicate extracted from pseudo-SQL text.
type Condition struct {
	Field    string
	Operator Operator
	Value    string
}

var (
	boundarySplit = regexp.MustCompile(`(?i)\s+(?:AND|OR)\s+`)

	// Tried in order per clause, first match wins.
	clausePatterns = []struct {
		re       *regexp.Regexp
		operator Operator
	}{
		{regexp.MustCompile(`(?i)(\w+)\s*=\s*['"]([^'"]+)['"]`), OpEquals},
		{regexp.MustCompile(`(\w+)\s*=\s*(\d+)`), OpEquals},
		{regexp.MustCompile(`(\w+)\s*>\s*(\d+)`), OpGreater},
		{regexp.MustCompile(`(\w+)\s*<\s*(\d+)`), OpLess},
		{regexp.MustCompile(`(?i)(\w+)\s*LIKE\s*['"]([^'"]+)['"]`), OpLike},
	}
)

// ParseConditions extracts comparison predicates from the WHERE clause of a
// pseudo-SQL query. Malformed input yields fewer or zero conditions, never an
// error. Clauses are split on AND and OR alike: downstream filtering combines
// every clause conjunctively, the two keywords are not distinguished.
func ParseConditions(sql string) []Condition {
	clause, ok := whereClause(sql)
	if !ok {
		return nil
	}

	var conditions []Condition

	for _, part := range boundarySplit.Split(clause, -1) {
		part = strings.TrimSpace(part)
		part = strings.TrimSuffix(part, ";")
		part = strings.TrimSpace(part)

		for _, p := range clausePatterns {
			match := p.re.FindStringSubmatch(part)
			if match == nil {
				continue
			}

			value := match[2]
			if p.operator == OpLike {
				// SQL LIKE wildcard to regexp
				value = strings.ReplaceAll(value, "%", ".*")
			}

			conditions = append(conditions, Condition{
				Field:    match[1],
				Operator: p.operator,
				Value:    value,
			})

			break
		}
	}

	return conditions
}

// whereClause returns the text between the first WHERE keyword and the first
// GROUP BY or ORDER BY. Keyword matching is case-insensitive, the original
// casing of fields and values is preserved.
func whereClause(sql string) (string, bool) {
	upper := strings.ToUpper(sql)

	idx := strings.Index(upper, "WHERE")
	if idx < 0 {
		return "", false
	}

	clause := sql[idx+len("WHERE"):]
	upper = upper[idx+len("WHERE"):]

	if i := strings.Index(upper, "GROUP BY"); i >= 0 {
		clause = clause[:i]
		upper = upper[:i]
	}

	if i := strings.Index(upper, "ORDER BY"); i >= 0 {
		clause = clause[:i]
	}

	return strings.TrimSpace(clause), true
}
