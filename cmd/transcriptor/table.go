package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"transcriptor/internal/catalog"
)

const titleColumnWidth = 40

// renderResourceTable renders the resource listing. ID and duration are
// right-aligned; titles are truncated so a row stays on one line.
func renderResourceTable(resources []*catalog.Resource) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Status", "Kind", "Title", "Duration"})

	for _, r := range resources {
		tw.AppendRow(table.Row{
			strconv.FormatInt(r.ID, 10),
			string(r.Status),
			string(r.Kind),
			truncate(r.Title, titleColumnWidth),
			formatDuration(r.DurationSeconds),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
