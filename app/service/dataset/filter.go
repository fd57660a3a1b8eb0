package dataset

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/elliotchance/pie/v2"
)

// Filter returns the records satisfying every condition. An empty condition
// list is the identity: the input slice is returned unchanged. Record order
// is preserved, there is no result limit.
func Filter(records []Record, conditions []Condition) []Record {
	if len(conditions) == 0 {
		return records
	}

	return pie.Filter(records, func(r Record) bool {
		for _, c := range conditions {
			if !c.Matches(r) {
				return false
			}
		}

		return true
	})
}

// Matches reports whether a single record satisfies the condition. A field
// outside the schema fails the condition outright.
func (c Condition) Matches(r Record) bool {
	value, ok := r.Field(c.Field)
	if !ok {
		return false
	}

	switch c.Operator {
	case OpEquals:
		// Case-sensitive compare of the stringified field value.
		return stringify(value) == c.Value

	case OpGreater, OpLess:
		// Non-numeric fields always fail the ordering operators.
		number, ok := numeric(value)
		if !ok {
			return false
		}

		want, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return false
		}

		if c.Operator == OpGreater {
			return number > want
		}

		return number < want

	case OpLike:
		re, err := regexp.Compile("(?i)" + c.Value)
		if err != nil {
			return false
		}

		return re.MatchString(stringify(value))
	}

	return false
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}

	return 0, false
}
