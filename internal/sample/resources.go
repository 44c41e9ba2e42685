package sample

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/leengari/tablekit/internal/domain/data"
	"github.com/leengari/tablekit/internal/domain/schema"
)

// Rules a load balancer can use
var Rules = []string{"DNS delegation", "Round Robin"}

// Statuses in the order the status column sorts them
var Statuses = []string{"starting", "active", "disabled"}

// RowIDKey is the data key holding each resource's unique id
const RowIDKey = "id"

// generator draws every random value, including uuids, from one ChaCha8
// stream so output is reproducible for a seed
type generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

func newGenerator(seed [32]byte) *generator {
	src := rand.NewChaCha8(seed)
	return &generator{src: src, rng: rand.New(src)}
}

func seedFromInt(n int64) [32]byte {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:8], uint64(n))
	return seed
}

func (g *generator) resource(index int) data.Row {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// ChaCha8.Read never fails
		panic(err)
	}
	return data.NewRow(map[string]interface{}{
		RowIDKey:  id.String(),
		"name":    "Load balancer " + strconv.Itoa(index),
		"rule":    Rules[g.rng.IntN(len(Rules))],
		"status":  Statuses[g.rng.IntN(len(Statuses))],
		"other":   "Test",
		"example": strconv.Itoa(g.rng.IntN(1001)),
	})
}

func (g *generator) level(lens []int) []data.Row {
	if len(lens) == 0 || lens[0] <= 0 {
		return nil
	}
	rows := make([]data.Row, lens[0])
	for i := range rows {
		rows[i] = g.resource(i)
		rows[i].SubRows = g.level(lens[1:])
	}
	return rows
}

// MakeData generates nested load balancer resources: lens[0] top-level rows,
// each with lens[1] children, and so on. The same seed yields the same rows.
func MakeData(seed int64, lens ...int) []data.Row {
	rows := newGenerator(seedFromInt(seed)).level(lens)
	if rows == nil {
		return []data.Row{}
	}
	return rows
}

// CompareStatus orders statuses by lifecycle rather than alphabetically.
// Unknown statuses sort last.
func CompareStatus(a, b interface{}) int {
	return statusRank(a) - statusRank(b)
}

func statusRank(v interface{}) int {
	s, _ := v.(string)
	if i := slices.Index(Statuses, s); i >= 0 {
		return i
	}
	return len(Statuses)
}

// Columns returns the column definitions for generated resources
func Columns() []schema.ColumnDef {
	return []schema.ColumnDef{
		{AccessorKey: "name", Header: "Name", SortFirst: schema.SortFirstAsc},
		{AccessorKey: "rule", Header: "Rule", Kind: schema.KindSelect, Options: Rules, SortFirst: schema.SortFirstDesc},
		{AccessorKey: "status", Header: "Status", Kind: schema.KindSelect, Options: Statuses, Compare: CompareStatus},
		{AccessorKey: "other", Header: "Other"},
		{AccessorKey: "example", Header: "Example", SortingFn: schema.SortAlphanumeric},
	}
}

// Describe summarises generated data for log lines
func Describe(rows []data.Row) string {
	return fmt.Sprintf("%d top-level, %d total", len(rows), data.CountRows(rows))
}
