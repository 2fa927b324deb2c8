package logger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var numericPlaceholder = regexp.MustCompile(`\?(\d+)`)

// Explain inline bound values into a query using ?n placeholders, for display only.
// Strings and times are single quoted, placeholders without a value are kept.
func Explain(query string, vars ...interface{}) string {
	formatted := make([]string, len(vars))
	for idx, v := range vars {
		formatted[idx] = explainValue(v)
	}

	return numericPlaceholder.ReplaceAllStringFunc(query, func(placeholder string) string {
		n, err := strconv.Atoi(placeholder[1:])
		if err != nil || n < 1 || n > len(formatted) {
			return placeholder
		}
		return formatted[n-1]
	})
}

func explainValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return quote(v.Format("2006-01-02 15:04:05"))
	case *time.Time:
		if v == nil {
			return "NULL"
		}
		return quote(v.Format("2006-01-02 15:04:05"))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return quote(v)
	case fmt.Stringer:
		return quote(v.String())
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
