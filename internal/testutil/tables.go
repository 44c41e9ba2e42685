package testutil

import (
	"github.com/leengari/tablekit/internal/domain/data"
	"github.com/leengari/tablekit/internal/domain/schema"
)

// ExampleColumns returns the name/example columns of the five-row dataset
func ExampleColumns() []schema.ColumnDef {
	return []schema.ColumnDef{
		{AccessorKey: "name", Header: "Name"},
		{AccessorKey: "example", Header: "Example"},
	}
}

// ExampleData returns five flat rows whose example values are numeric
// strings: a=10, b=5, c=20, d=1, e=15
func ExampleData() []data.Row {
	return []data.Row{
		data.NewRow(map[string]interface{}{"name": "a", "example": "10"}),
		data.NewRow(map[string]interface{}{"name": "b", "example": "5"}),
		data.NewRow(map[string]interface{}{"name": "c", "example": "20"}),
		data.NewRow(map[string]interface{}{"name": "d", "example": "1"}),
		data.NewRow(map[string]interface{}{"name": "e", "example": "15"}),
	}
}

// NestedColumns returns the columns of the nested dataset
func NestedColumns() []schema.ColumnDef {
	return []schema.ColumnDef{
		{AccessorKey: "name", Header: "Name"},
		{AccessorKey: "count", Header: "Count", Kind: schema.KindNumber},
		{AccessorKey: "status", Header: "Status", Kind: schema.KindSelect},
	}
}

// NestedData returns a three-level tree of seven rows:
//
//	0 north (3)        active
//	  0.0 north-b (2)  active
//	  0.1 north-a (1)  disabled
//	    0.1.0 leaf-z (9) active
//	1 south (1)        disabled
//	  1.0 south-a (5)  active
//	2 east (2)         starting
func NestedData() []data.Row {
	row := func(name string, count int, status string, subRows ...data.Row) data.Row {
		return data.NewRow(map[string]interface{}{
			"name":   name,
			"count":  count,
			"status": status,
		}, subRows...)
	}
	return []data.Row{
		row("north", 3, "active",
			row("north-b", 2, "active"),
			row("north-a", 1, "disabled",
				row("leaf-z", 9, "active"),
			),
		),
		row("south", 1, "disabled",
			row("south-a", 5, "active"),
		),
		row("east", 2, "starting"),
	}
}
