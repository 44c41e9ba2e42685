package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Render formats a cell value for display. Undefined values render empty.
func (k ColumnKind) Render(v interface{}, ok bool) string {
	if !ok || v == nil {
		return ""
	}
	switch k {
	case KindCheckbox:
		return renderList(v)
	case KindNumber:
		return renderNumber(v)
	default:
		return FormatValue(v)
	}
}

// FormatValue converts a scalar value to its plain string form
func FormatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func renderList(v interface{}) string {
	switch t := v.(type) {
	case []string:
		return strings.Join(t, ", ")
	case []interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ", ")
	case bool:
		if t {
			return "[x]"
		}
		return "[ ]"
	default:
		return FormatValue(v)
	}
}

func renderNumber(v interface{}) string {
	switch t := v.(type) {
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return t
	default:
		return FormatValue(v)
	}
}
