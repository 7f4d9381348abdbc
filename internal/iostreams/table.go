package iostreams

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/schmitthub/ddog/internal/text"
)

// TablePrinter renders tabular data to IOStreams.Out. On an
// interactive terminal with colors enabled it draws styled headers and
// a divider; when piped it falls back to plain tabwriter output so the
// result stays grep- and cut-friendly.
type TablePrinter struct {
	ios     *IOStreams
	headers []string
	rows    [][]string
}

// NewTablePrinter creates a table printer with the given headers.
func (ios *IOStreams) NewTablePrinter(headers ...string) *TablePrinter {
	return &TablePrinter{ios: ios, headers: headers}
}

// AddRow appends a data row. Missing trailing columns render empty.
func (tp *TablePrinter) AddRow(cols ...string) {
	tp.rows = append(tp.rows, cols)
}

// Len returns the number of data rows.
func (tp *TablePrinter) Len() int { return len(tp.rows) }

// Render writes the table to the output stream.
func (tp *TablePrinter) Render() error {
	if len(tp.headers) == 0 {
		return nil
	}
	if tp.ios.IsOutputTTY() && tp.ios.ColorEnabled() {
		return tp.renderStyled()
	}
	return tp.renderPlain()
}

func (tp *TablePrinter) renderPlain() error {
	w := tabwriter.NewWriter(tp.ios.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(tp.headers, "\t"))
	for _, row := range tp.rows {
		fmt.Fprintln(w, strings.Join(tp.normalizeRow(row), "\t"))
	}
	return w.Flush()
}

func (tp *TablePrinter) renderStyled() error {
	width := tp.ios.TerminalWidth()
	numCols := len(tp.headers)

	gap := 2
	available := width - gap*(numCols-1)
	if available < numCols {
		available = numCols
	}
	colWidth := available / numCols

	headerStyle := lipgloss.NewStyle().Bold(true)
	spacing := strings.Repeat(" ", gap)

	var headerParts []string
	for _, h := range tp.headers {
		headerParts = append(headerParts, headerStyle.Width(colWidth).Render(text.Truncate(h, colWidth)))
	}
	if _, err := fmt.Fprintln(tp.ios.Out, strings.Join(headerParts, spacing)); err != nil {
		return err
	}

	var dividerParts []string
	for range tp.headers {
		dividerParts = append(dividerParts, strings.Repeat("─", colWidth))
	}
	if _, err := fmt.Fprintln(tp.ios.Out, styleGray.Render(strings.Join(dividerParts, spacing))); err != nil {
		return err
	}

	cellStyle := lipgloss.NewStyle().Width(colWidth)
	for _, row := range tp.rows {
		var parts []string
		for _, col := range tp.normalizeRow(row) {
			parts = append(parts, cellStyle.Render(text.Truncate(col, colWidth)))
		}
		if _, err := fmt.Fprintln(tp.ios.Out, strings.Join(parts, spacing)); err != nil {
			return err
		}
	}
	return nil
}

// normalizeRow pads a row with empty strings to the header count.
func (tp *TablePrinter) normalizeRow(row []string) []string {
	if len(row) >= len(tp.headers) {
		return row[:len(tp.headers)]
	}
	cols := make([]string, len(tp.headers))
	copy(cols, row)
	return cols
}
