package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leengari/tablekit/internal/domain/schema"
)

// parseFilterValue turns command arguments into a filter value shaped for
// fn: ranges ("lo..hi", either side optional) for inNumberRange, lists for
// the multi-value predicates, and a single string otherwise. No arguments
// yields nil, which removes the filter.
func parseFilterValue(fn schema.FilterFn, args []string) (interface{}, error) {
	if len(args) == 0 {
		return nil, nil
	}
	joined := strings.Join(args, " ")

	switch fn {
	case schema.FilterInNumberRange:
		lo, hi, isRange := strings.Cut(joined, "..")
		if !isRange {
			hi = lo
		}
		bounds := make([]interface{}, 2)
		for i, s := range []string{strings.TrimSpace(lo), strings.TrimSpace(hi)} {
			if s == "" {
				continue
			}
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("invalid range bound %q", s)
			}
			bounds[i] = s
		}
		return bounds, nil

	case schema.FilterArrIncludesAll, schema.FilterArrIncludesSome:
		var values []interface{}
		for _, a := range args {
			for _, part := range strings.Split(a, ",") {
				if part = strings.TrimSpace(part); part != "" {
					values = append(values, part)
				}
			}
		}
		return values, nil
	}

	if strings.Contains(joined, "..") {
		return nil, fmt.Errorf("range filters need an inNumberRange column, this column uses %s", fn)
	}
	return joined, nil
}

// parseCellValue converts an edited cell's text to the column's value type
func parseCellValue(kind schema.ColumnKind, raw string) (interface{}, error) {
	switch kind {
	case schema.KindNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		return f, nil
	case schema.KindCheckbox:
		var values []interface{}
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
		return values, nil
	}
	return raw, nil
}
