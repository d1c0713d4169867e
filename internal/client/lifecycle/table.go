package lifecycle

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const dateLayout = "January 2, 2006"

var tableHeader = table.Row{"#", "Meeting", "Created", "Status", "Download", "Action"}

// Table draws the roster as a rounded table. now anchors relative times.
func Table(views []View, now time.Time) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(tableHeader)

	for _, v := range views {
		download := v.Download
		if download == "" {
			download = v.Placeholder()
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(v.Index),
			v.Job.MeetingSlug,
			formatCreated(v.Job.CreatedAt, now),
			v.StatusLabel,
			download,
			v.ActionLabel(),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func formatCreated(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout) + " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
}
