// Package export renders extraction results into the spreadsheet
// formats the review workflow downloads: an XLSX workbook, or a
// semicolon-separated CSV for tooling that cannot read XLSX.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ilbui/Agente-fatture-Ai/internal/extraction"
)

const sheetName = "Dati"

// headers is the column order of both output formats.
var headers = []string{
	"Nome File",
	"Data",
	"Numero",
	"Destinatario",
	"Indirizzo",
	"Importo",
	"Spese Generali",
	"Totale",
}

// Row is one spreadsheet line, already rendered for display: amounts in
// Italian notation, absent fields as empty strings. An absent field is
// never written as "0,00" so a missing value stays visible to the
// reviewer.
type Row struct {
	Filename      string
	Date          string
	Number        string
	Recipient     string
	Address       string
	Compensi      string
	SpeseGenerali string
	Totale        string
}

// FromResult renders one extraction result into a Row.
func FromResult(filename string, r extraction.Result) Row {
	row := Row{Filename: filename}
	if r.Date != nil {
		row.Date = *r.Date
	}
	if r.Number != nil {
		row.Number = *r.Number
	}
	if r.Recipient != nil {
		row.Recipient = *r.Recipient
	}
	if r.Address != nil {
		row.Address = *r.Address
	}
	if r.Compensi != nil {
		row.Compensi = extraction.FormatAmount(*r.Compensi)
	}
	if r.SpeseGenerali != nil {
		row.SpeseGenerali = extraction.FormatAmount(*r.SpeseGenerali)
	}
	if r.Totale != nil {
		row.Totale = extraction.FormatAmount(*r.Totale)
	}
	return row
}

func (r Row) cells() []string {
	return []string{
		r.Filename, r.Date, r.Number, r.Recipient,
		r.Address, r.Compensi, r.SpeseGenerali, r.Totale,
	}
}

// XLSX returns an XLSX workbook (as bytes) with one sheet of results.
func XLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for n, row := range rows {
		for i, v := range row.cells() {
			cell, err := excelize.CoordinatesToCellName(i+1, n+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Widen the name and address columns, same layout as the manual
	// workbook this export replaces.
	if err := f.SetColWidth(sheetName, "A", "C", 15); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "D", "E", 30); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// CSV returns a semicolon-separated CSV with a UTF-8 BOM, the dialect
// Excel expects when double-clicking a CSV on an Italian locale.
func CSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.cells()); err != nil {
			return nil, fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
