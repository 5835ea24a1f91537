package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table writes column-aligned rows to an io.Writer. The header line and a
// dash divider go out with the first Row, so a table with no rows writes
// nothing at all.
type Table struct {
	w       *tabwriter.Writer
	headers []string
	started bool
}

// NewTable creates a table writing to out, usually a cobra command's
// OutOrStdout.
func NewTable(out io.Writer, headers ...string) *Table {
	return &Table{
		w:       tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
		headers: headers,
	}
}

// Row adds one row of cells, preceded by the headers on the first call.
func (t *Table) Row(cells ...string) {
	if !t.started {
		t.started = true
		t.line(t.headers)
		divider := make([]string, len(t.headers))
		for i, h := range t.headers {
			divider[i] = strings.Repeat("-", len(h))
		}
		t.line(divider)
	}
	t.line(cells)
}

// Flush aligns the buffered rows and writes them out.
func (t *Table) Flush() {
	if t.started {
		t.w.Flush()
	}
}

func (t *Table) line(cells []string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}
