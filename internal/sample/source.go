package sample

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/leengari/tablekit/internal/domain/data"
)

// Page is one response of the simulated backend
type Page struct {
	Rows          []data.Row `json:"data"`
	TotalRowCount int        `json:"totalRowCount"`
}

// Source simulates a slow remote API serving a fixed set of resources
type Source struct {
	rows    []data.Row
	latency time.Duration
	logger  *slog.Logger
}

// NewSource builds a source over generated resources, lens[0] at the top
// level and lens[1:] nested below each, as in MakeData
func NewSource(seed int64, lens []int, latency time.Duration, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		rows:    MakeData(seed, lens...),
		latency: latency,
		logger:  logger,
	}
}

// wait blocks for the configured latency or until ctx is done
func (s *Source) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Fetch returns rows [start, start+size). Ranges past the end are truncated.
func (s *Source) Fetch(ctx context.Context, start, size int) (Page, error) {
	if start < 0 || size < 0 {
		return Page{}, fmt.Errorf("invalid fetch range start=%d size=%d", start, size)
	}
	if err := s.wait(ctx); err != nil {
		return Page{}, fmt.Errorf("fetch cancelled: %w", err)
	}

	end := min(start+size, len(s.rows))
	page := Page{Rows: []data.Row{}, TotalRowCount: len(s.rows)}
	if start < end {
		page.Rows = make([]data.Row, end-start)
		for i, r := range s.rows[start:end] {
			page.Rows[i] = r.Copy()
		}
	}

	s.logger.Debug("sample page fetched",
		"start", start,
		"size", size,
		"returned", len(page.Rows),
		"total", page.TotalRowCount,
	)
	return page, nil
}

// FetchSubRows lazily produces count children for the row with parentID.
// Children are derived from the parent id, so repeated fetches agree.
func (s *Source) FetchSubRows(ctx context.Context, parentID string, count int) ([]data.Row, error) {
	if parentID == "" {
		return nil, fmt.Errorf("fetch sub-rows: empty parent id")
	}
	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch sub-rows of %s cancelled: %w", parentID, err)
	}

	rows := newGenerator(sha256.Sum256([]byte(parentID))).level([]int{count})
	if rows == nil {
		rows = []data.Row{}
	}

	s.logger.Debug("sample sub-rows fetched", "parent", parentID, "count", len(rows))
	return rows, nil
}
