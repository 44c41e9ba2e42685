package data

import (
	"encoding/json"
	"strings"
)

// SubRowsKey is the member name holding child rows in the JSON form of a Row
const SubRowsKey = "subRows"

// Row represents a single input record
// Key = column key, Value = cell value (scalar or nested map)
type Row struct {
	Data    map[string]interface{}
	SubRows []Row
}

// NewRow creates a new Row with the given data and optional child rows
func NewRow(data map[string]interface{}, subRows ...Row) Row {
	if data == nil {
		data = make(map[string]interface{})
	}
	return Row{
		Data:    data,
		SubRows: subRows,
	}
}

// Get looks up a value by key. Dotted keys ("address.city") descend into
// nested maps when no literal key matches.
// A nil value reports false, matching how an absent key is treated.
func (r Row) Get(key string) (interface{}, bool) {
	if r.Data == nil {
		return nil, false
	}
	if v, ok := r.Data[key]; ok {
		return v, v != nil
	}
	if !strings.Contains(key, ".") {
		return nil, false
	}

	var cur interface{} = r.Data
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// Copy creates a deep copy of the row (including sub-rows) to prevent mutation
func (r Row) Copy() Row {
	cp := make(map[string]interface{}, len(r.Data))
	for k, v := range r.Data {
		cp[k] = copyValue(v)
	}
	var subRows []Row
	if r.SubRows != nil {
		subRows = make([]Row, len(r.SubRows))
		for i, sub := range r.SubRows {
			subRows[i] = sub.Copy()
		}
	}
	return Row{
		Data:    cp,
		SubRows: subRows,
	}
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, inner := range t {
			m[k] = copyValue(inner)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, inner := range t {
			s[i] = copyValue(inner)
		}
		return s
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// FromMap builds a Row from a decoded document, lifting the "subRows"
// member into SubRows. Used for both JSON and YAML sources.
func FromMap(m map[string]interface{}) Row {
	row := NewRow(make(map[string]interface{}, len(m)))
	for k, v := range m {
		if k != SubRowsKey {
			row.Data[k] = v
			continue
		}
		children, ok := v.([]interface{})
		if !ok {
			continue
		}
		for _, child := range children {
			if cm, ok := child.(map[string]interface{}); ok {
				row.SubRows = append(row.SubRows, FromMap(cm))
			}
		}
	}
	return row
}

// ToMap is the inverse of FromMap
func (r Row) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(r.Data)+1)
	for k, v := range r.Data {
		m[k] = v
	}
	if len(r.SubRows) > 0 {
		children := make([]interface{}, len(r.SubRows))
		for i, sub := range r.SubRows {
			children[i] = sub.ToMap()
		}
		m[SubRowsKey] = children
	}
	return m
}

// UnmarshalJSON implements json.Unmarshaler interface
// This allows Row to be unmarshaled from JSON as a map
func (r *Row) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*r = FromMap(m)
	return nil
}

// MarshalJSON implements json.Marshaler interface
// This allows Row to be marshaled to JSON as a map
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// FromMaps converts decoded documents into rows
func FromMaps(ms []map[string]interface{}) []Row {
	rows := make([]Row, len(ms))
	for i, m := range ms {
		rows[i] = FromMap(m)
	}
	return rows
}

// CountRows returns the number of rows including every nested sub-row
func CountRows(rows []Row) int {
	n := 0
	for _, r := range rows {
		n += 1 + CountRows(r.SubRows)
	}
	return n
}
