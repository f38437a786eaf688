package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// cliTable wraps go-pretty with the small surface the commands need.
type cliTable struct {
	writer  table.Writer
	columns int
}

func newTable(headers ...string) *cliTable {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	return &cliTable{writer: tw, columns: len(headers)}
}

// alignRight right-aligns the given 1-based columns. Headers stay left.
func (t *cliTable) alignRight(columns ...int) {
	configs := make([]table.ColumnConfig, 0, len(columns))
	for _, number := range columns {
		configs = append(configs, table.ColumnConfig{
			Number:      number,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	t.writer.SetColumnConfigs(configs)
}

func (t *cliTable) addRow(cells ...string) {
	row := make(table.Row, t.columns)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	t.writer.AppendRow(row)
}

func (t *cliTable) render() string {
	return t.writer.Render()
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
