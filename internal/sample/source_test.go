package sample

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFetch(t *testing.T) {
	src := NewSource(1, []int{25}, 0, nil)
	ctx := context.Background()

	page, err := src.Fetch(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page.Rows, 10)
	assert.Equal(t, 25, page.TotalRowCount)

	page, err = src.Fetch(ctx, 20, 10)
	require.NoError(t, err)
	assert.Len(t, page.Rows, 5, "truncated at the end")

	page, err = src.Fetch(ctx, 40, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Rows)

	_, err = src.Fetch(ctx, -1, 10)
	assert.Error(t, err)
}

func TestSourceFetchReturnsCopies(t *testing.T) {
	src := NewSource(1, []int{3}, 0, nil)
	page, err := src.Fetch(context.Background(), 0, 1)
	require.NoError(t, err)
	page.Rows[0].Data["name"] = "changed"

	again, err := src.Fetch(context.Background(), 0, 1)
	require.NoError(t, err)
	name, _ := again.Rows[0].Get("name")
	assert.Equal(t, "Load balancer 0", name)
}

func TestSourceHonorsCancellation(t *testing.T) {
	src := NewSource(1, []int{5}, time.Hour, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := src.Fetch(ctx, 0, 5)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)

	done, stop := context.WithCancel(context.Background())
	stop()
	_, err = src.FetchSubRows(done, "x", 2)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFetchSubRowsDeterministic(t *testing.T) {
	src := NewSource(1, []int{1}, 0, nil)
	ctx := context.Background()

	a, err := src.FetchSubRows(ctx, "parent-1", 3)
	require.NoError(t, err)
	b, err := src.FetchSubRows(ctx, "parent-1", 3)
	require.NoError(t, err)
	assert.Len(t, a, 3)
	assert.Equal(t, a, b)

	_, err = src.FetchSubRows(ctx, "", 3)
	assert.Error(t, err)

	// uuids that differ only after the 32nd byte
	c, err := src.FetchSubRows(ctx, "0b6f2c1e-8a4d-4f7e-9c3b-5d2e1f0a7b01", 3)
	require.NoError(t, err)
	d, err := src.FetchSubRows(ctx, "0b6f2c1e-8a4d-4f7e-9c3b-5d2e1f0a7b02", 3)
	require.NoError(t, err)
	assert.NotEqual(t, c, d)
}

func TestSourceNestedLevels(t *testing.T) {
	src := NewSource(1, []int{4, 2}, 0, nil)

	page, err := src.Fetch(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalRowCount)
	require.Len(t, page.Rows, 4)
	for _, r := range page.Rows {
		assert.Len(t, r.SubRows, 2)
	}
}
