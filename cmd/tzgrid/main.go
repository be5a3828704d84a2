// Package main implements the tzgrid CLI, which prints several time zones
// side by side over a date range.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codeGROOVE-dev/tzgrid/pkg/textgrid"
	"github.com/codeGROOVE-dev/tzgrid/pkg/tzconvert"
	"github.com/codeGROOVE-dev/tzgrid/pkg/view"
	"github.com/codeGROOVE-dev/tzgrid/pkg/zones"
)

const version = "v1.0.0"

var formats = []string{"table", "markdown", "csv", "json"}

type options struct {
	zones   []string
	start   string
	end     string
	ref     string
	format  string
	color   bool
	list    bool
	verbose bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr, time.Now).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer, now func() time.Time) *cobra.Command {
	o := &options{}
	catalog, catalogErr := zones.DefaultCatalog()

	cmd := &cobra.Command{
		Use:     "tzgrid",
		Version: version,
		Short:   "Compare time zones hour by hour",
		Long: `tzgrid prints a table with one row per time zone and one column per hour of a
date range, so the same instant can be read across zones.

UTC is always shown first. Each --zone is added once, in order; unknown zones
are skipped with a warning. Without --start and --end the range runs from two
days ago to tomorrow. A range within a single day shows all 24 hours of it.

Examples:

  # Default range for UTC, Tokyo and New York
  $ tzgrid --zone Asia/Tokyo --zone America/New_York

  # One day, as Markdown for pasting into chat
  $ tzgrid -z Europe/London --start 2024-03-31 --end 2024-03-31 --format markdown

  # List the zones that can be added
  $ tzgrid --list`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if catalogErr != nil {
				return catalogErr
			}
			return run(cmd, o, catalog, now())
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(`{{printf "tzgrid %s\n" .Version}}`)

	f := cmd.Flags()
	f.StringArrayVarP(&o.zones, "zone", "z", nil, "time zone to add, like Asia/Tokyo. Can be used multiple times.")
	f.StringVarP(&o.start, "start", "s", "", "range start: YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339")
	f.StringVarP(&o.end, "end", "e", "", "range end, same formats as --start")
	f.StringVar(&o.ref, "ref", "Local", "reference clock for day boundaries and hour labels")
	f.StringVarP(&o.format, "format", "f", "table", "output format: "+strings.Join(formats, ", "))
	f.BoolVarP(&o.color, "color", "c", false, "force colored table output (default: only on a terminal)")
	f.BoolVarP(&o.list, "list", "l", false, "list the zones that can be added and exit")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging")

	if err := cmd.RegisterFlagCompletionFunc("zone", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return zones.Options(), cobra.ShellCompDirectiveNoFileComp
	}); err != nil {
		fmt.Fprintf(stderr, "registering zone completion: %v\n", err)
	}
	if err := cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return formats, cobra.ShellCompDirectiveNoFileComp
	}); err != nil {
		fmt.Fprintf(stderr, "registering format completion: %v\n", err)
	}

	return cmd
}

func run(cmd *cobra.Command, o *options, catalog *zones.Catalog, now time.Time) error {
	level := slog.LevelError
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	out := cmd.OutOrStdout()

	if o.list {
		for _, name := range catalog.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	ref, err := time.LoadLocation(o.ref)
	if err != nil {
		return fmt.Errorf("reference zone %q: %w", o.ref, err)
	}

	for _, name := range o.zones {
		if !catalog.Contains(name) {
			logger.Warn("Skipping unknown zone", "zone", name, "known", strings.Join(catalog.Names(), ","))
		}
	}

	q := url.Values{view.ParamZone: o.zones}
	q.Set(view.ParamStart, o.start)
	q.Set(view.ParamEnd, o.end)
	m, err := view.FromQuery(catalog, ref, now, q)
	if err != nil {
		return fmt.Errorf("date range: %w", err)
	}

	g := m.Grid()
	logger.Debug("Grid built",
		"zones", len(g.Rows),
		"columns", g.Columns(),
		"reference", g.Reference,
		"start", m.Range().Start,
		"end", m.Range().End)

	switch o.format {
	case "table":
		useColor := !color.NoColor
		if cmd.Flags().Changed("color") {
			useColor = o.color
		}
		title := fmt.Sprintf("%s to %s (%s)",
			tzconvert.DayLabel(m.Range().Start, ref), tzconvert.DayLabel(m.Range().End, ref), g.Reference)
		fmt.Fprintln(out, textgrid.Terminal(g, textgrid.WithColor(useColor), textgrid.WithTitle(title)))
	case "markdown":
		fmt.Fprintln(out, textgrid.Markdown(g))
	case "csv":
		fmt.Fprintln(out, textgrid.CSV(g))
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("encoding grid: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", o.format, strings.Join(formats, ", "))
	}
	return nil
}
