package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"loadpv/internal/config"
	"loadpv/internal/dayseries"
	apperrors "loadpv/internal/errors"
	"loadpv/internal/exporter"
	"loadpv/internal/infrastructure"
	"loadpv/internal/workbook"
	api "loadpv/pkg/contracts/api/v1"
	"loadpv/pkg/contracts/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

type extractOptions struct {
	date        string
	datetimeCol string
	valueCol    string
	sheet       string
	sheetIndex  int
	format      string
	out         string
	export      string
	width       int
	height      int
}

// cli holds state shared by the subcommands
type cli struct {
	logLevel string
	logger   *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:           "dayseries",
		Short:         "Inspect workbooks and extract one day of readings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := infrastructure.NewLogger(config.LoggingConfig{Level: c.logLevel, Output: "console"}, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c.logger = logger
			cmd.SetContext(infrastructure.EnsureTraceID(cmd.Context()))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "error", "log level for diagnostics on stderr: debug, info, warn or error")

	root.AddCommand(c.newSheetsCmd(), c.newExtractCmd())
	return root
}

func (c *cli) newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets FILE",
		Short: "Print the sheet names of a workbook in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := workbook.ListSheets(args[0])
			if err != nil {
				c.logger.DebugContext(cmd.Context(), "listing sheets failed",
					slog.String("path", args[0]),
					slog.String("error", err.Error()))
				return describe(err)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (c *cli) newExtractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Extract the readings of one day from a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.date, "date", "", "day to extract, YYYY-MM-DD")
	flags.StringVar(&opts.datetimeCol, "datetime-col", "datetime", "name of the timestamp column")
	flags.StringVar(&opts.valueCol, "value-col", "", "name of the value column")
	flags.StringVar(&opts.sheet, "sheet", "", "sheet name")
	flags.IntVar(&opts.sheetIndex, "sheet-index", 0, "0-based sheet position, used when --sheet is empty")
	flags.StringVarP(&opts.format, "format", "f", formatTable, "output format: table, json or csv")
	flags.StringVarP(&opts.out, "out", "o", "", "write an export file instead of printing")
	flags.StringVar(&opts.export, "export", "", "export format for --out: csv, xlsx, pdf or png (default from the file extension)")
	flags.IntVar(&opts.width, "width", 900, "chart width in pixels for png exports")
	flags.IntVar(&opts.height, "height", 400, "chart height in pixels for png exports")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("value-col")
	cmd.MarkFlagsMutuallyExclusive("sheet", "sheet-index")

	return cmd
}

func (c *cli) runExtract(cmd *cobra.Command, path string, opts *extractOptions) error {
	switch opts.format {
	case formatTable, formatJSON, formatCSV:
	default:
		return fmt.Errorf("invalid format %q (must be table, json or csv)", opts.format)
	}

	sel := workbook.SelectorFor(opts.sheet, opts.sheetIndex)
	sheet, err := workbook.LoadSheet(path, sel)
	if err != nil {
		return describe(err)
	}
	c.logger.DebugContext(cmd.Context(), "sheet loaded",
		slog.String("path", path),
		slog.String("sheet", sheet.Name),
		slog.Int("rows", sheet.Len()))

	mapping := dayseries.ColumnMapping{Datetime: opts.datetimeCol, Value: opts.valueCol}
	series, err := dayseries.ExtractDay(sheet, mapping, opts.date)
	if err != nil {
		return describe(err)
	}
	c.logger.InfoContext(cmd.Context(), "extraction complete",
		slog.String("sheet", sheet.Name),
		slog.String("date", opts.date),
		slog.Int("points", len(series)))

	if opts.out != "" {
		return writeExport(cmd, opts, sheet.Name, series)
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(series)
	case formatCSV:
		return exporter.WriteCSV(out, series, exporter.WriteOptions{})
	default:
		if series.Empty() {
			fmt.Fprintf(cmd.ErrOrStderr(), "no data for %s\n", opts.date)
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "time\t%s\t\n", opts.valueCol)
		for _, p := range series {
			fmt.Fprintf(tw, "%s\t%s\t\n", p.Time, exporter.FormatValue(p.Value))
		}
		return tw.Flush()
	}
}

func writeExport(cmd *cobra.Command, opts *extractOptions, sheetName string, series domain.DaySeries) error {
	format := api.ExportFormat(opts.export)
	if format == "" {
		format = formatFromPath(opts.out)
	}
	if !format.Valid() {
		return fmt.Errorf("invalid export format %q (must be csv, xlsx, pdf or png)", format)
	}

	meta := domain.DatasetMeta{
		Name:    opts.valueCol,
		Title:   opts.valueCol,
		Village: sheetName,
		Date:    opts.date,
	}
	data, err := exporter.Render(format, meta, series, exporter.RenderOptions{
		ChartWidth:  opts.width,
		ChartHeight: opts.height,
	})
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}

	if err := os.WriteFile(opts.out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d points to %s\n", len(series), opts.out)
	return nil
}

func formatFromPath(path string) api.ExportFormat {
	return api.ExportFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// describe prefixes classified failures with their type so scripts can grep
// for SHEET_NOT_FOUND and friends.
func describe(err error) error {
	if t := apperrors.TypeOf(err); t != apperrors.ErrTypeUnknown {
		return fmt.Errorf("%s: %s", t, apperrors.MessageOf(err))
	}
	return err
}
