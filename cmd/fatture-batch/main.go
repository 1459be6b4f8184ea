// fatture-batch extracts fields from every PDF in a directory and
// writes the results to a spreadsheet, without starting the review UI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/ilbui/Agente-fatture-Ai/internal/export"
	"github.com/ilbui/Agente-fatture-Ai/internal/scanning"
)

func main() {
	fs := ff.NewFlagSet("fatture-batch")
	var (
		dir    = fs.StringLong("dir", "", "directory of invoice PDFs to process (required)")
		out    = fs.StringLong("out", "", "output file path (defaults to Export.xlsx next to --dir)")
		format = fs.StringLong("format", "xlsx", "output format: 'xlsx' or 'csv'")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("FATTURE_BATCH"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *dir == "" {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: --dir is required")
		os.Exit(1)
	}
	if *format != "xlsx" && *format != "csv" {
		fmt.Fprintln(os.Stderr, "error: --format must be 'xlsx' or 'csv'")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "Export."+*format)
	}

	pdfs, err := filepath.Glob(filepath.Join(*dir, "*.pdf"))
	if err != nil {
		slog.Error("Failed to list directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	sort.Strings(pdfs)
	if len(pdfs) == 0 {
		slog.Error("No PDF files found", "dir", *dir)
		os.Exit(1)
	}

	scanner := scanning.NewPDFScanner()
	defer scanner.Close()

	rows := make([]export.Row, 0, len(pdfs))
	failed := 0
	for _, path := range pdfs {
		name := filepath.Base(path)

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("Failed to read file", "file", name, "error", err)
			failed++
			continue
		}

		fields, err := scanner.Scan(data, "application/pdf")
		if err != nil {
			slog.Error("Failed to scan invoice", "file", name, "error", err)
			failed++
			continue
		}

		rows = append(rows, export.FromResult(name, fields))
		slog.Info("Processed invoice", "file", name)
	}

	var output []byte
	switch *format {
	case "csv":
		output, err = export.CSV(rows)
	default:
		output, err = export.XLSX(rows)
	}
	if err != nil {
		slog.Error("Failed to build export", "format", *format, "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, output, 0644); err != nil {
		slog.Error("Failed to write output", "path", *out, "error", err)
		os.Exit(1)
	}

	slog.Info("Export written",
		"path", *out,
		"invoices", len(rows),
		"failed", failed,
	)
	if failed > 0 && len(rows) == 0 {
		os.Exit(1)
	}
}
