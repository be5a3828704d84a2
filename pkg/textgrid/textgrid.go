// Package textgrid renders a grid as plain text: a terminal table, Markdown
// and CSV.
package textgrid

import (
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/codeGROOVE-dev/tzgrid/pkg/grid"
)

// Working hours are [workStart, workEnd). Hours before dayStart or from
// nightStart onward are shown dimmed.
const (
	workStart  = 9
	workEnd    = 17
	dayStart   = 7
	nightStart = 22
)

type config struct {
	title string
	color bool
}

// Option configures Terminal.
type Option func(*config)

// WithColor enables ANSI colors regardless of whether stdout is a terminal.
func WithColor(enabled bool) Option {
	return func(c *config) {
		c.color = enabled
	}
}

// WithTitle sets a caption printed above the table.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// Terminal renders g with a merged day header above the hour labels.
func Terminal(g *grid.Grid, opts ...Option) string {
	cfg := &config{color: !color.NoColor}
	for _, opt := range opts {
		opt(cfg)
	}

	work := color.New(color.FgGreen)
	night := color.New(color.Faint)
	zone := color.New(color.FgCyan, color.Bold)
	for _, c := range []*color.Color{work, night, zone} {
		if cfg.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Title.Align = text.AlignCenter
	if cfg.title != "" {
		t.SetTitle(cfg.title)
	}

	days := table.Row{"Time Zone"}
	for _, d := range g.Dates {
		for range d.Span {
			days = append(days, d.Date)
		}
	}
	hours := table.Row{"Reference " + g.Reference}
	for _, l := range g.Labels {
		hours = append(hours, l)
	}
	t.AppendHeader(days, table.RowConfig{AutoMerge: true})
	t.AppendHeader(hours)

	for _, r := range g.Rows {
		row := table.Row{zone.Sprint(r.Zone) + " " + r.Offset}
		for _, v := range r.Times {
			switch h := hourOf(v); {
			case h >= workStart && h < workEnd:
				row = append(row, work.Sprint(v))
			case h < dayStart || h >= nightStart:
				row = append(row, night.Sprint(v))
			default:
				row = append(row, v)
			}
		}
		t.AppendRow(row)
	}

	return t.Render()
}

// Markdown renders g as a Markdown table with one "date hour" column per slot.
func Markdown(g *grid.Grid) string {
	return flat(g).RenderMarkdown()
}

// CSV renders g as comma-separated values with the same columns as Markdown.
func CSV(g *grid.Grid) string {
	return flat(g).RenderCSV()
}

func flat(g *grid.Grid) table.Writer {
	t := table.NewWriter()
	t.Style().Format.Header = text.FormatDefault

	header := table.Row{"Time Zone", "Offset"}
	i := 0
	for _, d := range g.Dates {
		for range d.Span {
			header = append(header, d.Date+" "+g.Labels[i])
			i++
		}
	}
	t.AppendHeader(header)

	for _, r := range g.Rows {
		row := table.Row{r.Zone, r.Offset}
		for _, v := range r.Times {
			row = append(row, v)
		}
		t.AppendRow(row)
	}
	return t
}

// hourOf reads the hour from an "HH:00" label, or -1.
func hourOf(label string) int {
	if len(label) < 2 {
		return -1
	}
	h, err := strconv.Atoi(label[:2])
	if err != nil {
		return -1
	}
	return h
}
