package fileio

import (
	"encoding/csv"
	"fmt"
	"io"

	excelize "github.com/xuri/excelize/v2"
)

// ReportRow — строка отчёта о назначениях для оператора.
type ReportRow struct {
	Index       int
	Name        string
	Document    string
	Source      string // auto | manual | пусто для unmatched
	MatchType   string
	Confidence  string // пусто для manual/unmatched: у них нет семантики уверенности
	Tier        string
	NeedsReview bool
}

var reportHeader = []string{"Row", "Recipient", "Document", "Source", "Match Type", "Confidence", "Tier", "Needs Review"}

func (r ReportRow) cells() []any {
	review := ""
	if r.NeedsReview {
		review = "yes"
	}
	return []any{r.Index, r.Name, r.Document, r.Source, r.MatchType, r.Confidence, r.Tier, review}
}

// WriteReportXLSX пишет отчёт в xlsx.
func WriteReportXLSX(w io.Writer, rows []ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &reportHeader); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := row.cells()
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// WriteReportCSV пишет тот же отчёт в csv (UTF-8, с BOM — иначе Excel
// на Windows показывает кириллицу кракозябрами).
func WriteReportCSV(w io.Writer, rows []ReportRow) error {
	if _, err := w.Write([]byte("\xEF\xBB\xBF")); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, 0, len(reportHeader))
		for _, c := range row.cells() {
			rec = append(rec, fmt.Sprint(c))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
