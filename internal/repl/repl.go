package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/leengari/tablekit/internal/command"
)

// Start reads commands from in until EOF, 'exit' or '\q', writing results
// to out. It returns early when ctx is cancelled between commands.
func Start(ctx context.Context, in io.Reader, out io.Writer, session *command.Session) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Welcome to tablekit")
	fmt.Fprintln(out, "Type 'help' for commands, 'exit' or '\\q' to quit.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if line == "exit" || line == "\\q" {
			return nil
		}

		result, err := session.Execute(ctx, line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		if err := PrintResult(out, result); err != nil {
			return err
		}
	}
}

// PrintResult renders a command result as a message followed by a table
func PrintResult(w io.Writer, res *command.Result) error {
	if res.Error != "" {
		_, err := fmt.Fprintf(w, "Error: %s\n", res.Error)
		return err
	}

	if len(res.Rows) > 0 || len(res.Columns) > 0 {
		table := tablewriter.NewTable(w,
			tablewriter.WithHeaderAutoFormat(tw.Off),
			tablewriter.WithTrimSpace(tw.Off),
		)
		table.Header(headers(res))
		for _, row := range res.Rows {
			if err := table.Append(cells(row)); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if res.Page != nil {
		fmt.Fprintf(w, "page %d/%d, %d rows\n", res.Page.Index+1, max(res.Page.Count, 1), res.Page.RowCount)
	}
	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}
	return nil
}

// headers labels sorted and pinned columns
func headers(res *command.Result) []string {
	out := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		out[i] = col
		if i >= len(res.Metadata) {
			continue
		}
		meta := res.Metadata[i]
		switch meta.Sort {
		case "asc":
			out[i] += " ↑"
		case "desc":
			out[i] += " ↓"
		}
		if meta.Pinned != "" {
			out[i] = "[" + out[i] + "]"
		}
	}
	return out
}

// cells indents the first cell by depth and marks expansion and selection
func cells(row command.ResultRow) []string {
	out := append([]string(nil), row.Cells...)
	if len(out) == 0 {
		return out
	}

	marker := "  "
	switch {
	case row.Expandable && row.Expanded:
		marker = "- "
	case row.Expandable:
		marker = "+ "
	}
	prefix := strings.Repeat("  ", row.Depth) + marker
	if row.Selected {
		prefix = "*" + prefix
	}
	out[0] = prefix + out[0]
	return out
}
