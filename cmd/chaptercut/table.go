package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// statusTable is a titled report table whose boolean columns are centered.
type statusTable struct {
	title   string
	headers []string
	flags   map[int]bool
	rows    [][]string
}

func newStatusTable(title string, headers ...string) *statusTable {
	return &statusTable{title: title, headers: headers, flags: map[int]bool{}}
}

// flag marks the 1-based column as a yes/no column.
func (s *statusTable) flag(column int) *statusTable {
	s.flags[column] = true
	return s
}

func (s *statusTable) add(cells ...string) {
	s.rows = append(s.rows, cells)
}

func (s *statusTable) render() string {
	columns := len(s.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(s.title)

	header := make(table.Row, columns)
	for i, h := range s.headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	if len(s.rows) == 0 {
		empty := make(table.Row, columns)
		empty[0] = "(none)"
		tw.AppendRow(empty)
	}
	for _, cells := range s.rows {
		row := make(table.Row, columns)
		for i := 0; i < columns && i < len(cells); i++ {
			row[i] = cells[i]
		}
		tw.AppendRow(row)
	}

	configs := make([]table.ColumnConfig, 0, len(s.flags))
	for column := range s.flags {
		configs = append(configs, table.ColumnConfig{Number: column, Align: text.AlignCenter})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
