package render

import (
	"bytes"
	"fmt"

	"github.com/finratios/fin_report_app/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Ratios"

// xlsxRenderer emits the spreadsheet encoding.
type xlsxRenderer struct{}

// NewXLSXRenderer returns the spreadsheet strategy.
func NewXLSXRenderer() Renderer { return xlsxRenderer{} }

func (xlsxRenderer) Format() domain.ReportFormat { return domain.FormatXLSX }

func (xlsxRenderer) MIMEType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r xlsxRenderer) Render(input Input) (Artifact, error) {
	rows, err := buildRows(input)
	if err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}

	head := [][]any{
		{"Company", input.Company.Name},
		{"Code", input.Company.Code},
		{"Fiscal Year", input.Statement.FiscalYear},
		{"Generated", input.GeneratedAt.Format("2006-01-02")},
		{},
		{"Ratio ID", "Ratio", "Value", "Evaluation", "Formula"},
	}
	line := 1
	for _, cells := range head {
		if err := r.setRow(f, line, cells); err != nil {
			return Artifact{}, err
		}
		line++
	}
	for _, row := range rows {
		// A computable value goes in as a number so consumers can read it back
		// as a numeric cell; the marker stays a string.
		var value any = NotComputableMarker
		if row.Numeric != nil {
			value = *row.Numeric
		}
		cells := []any{string(row.ID), row.Label, value, row.Evaluation, row.Trace}
		if err := r.setRow(f, line, cells); err != nil {
			return Artifact{}, err
		}
		line++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}

	return Artifact{
		Bytes:             buf.Bytes(),
		SuggestedFilename: suggestedFilename(input, "xlsx"),
		MIMEType:          r.MIMEType(),
	}, nil
}

func (r xlsxRenderer) setRow(f *excelize.File, line int, cells []any) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, line)
		if err != nil {
			return renderErr(r.Format(), err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
			return renderErr(r.Format(), fmt.Errorf("set cell %s: %w", cell, err))
		}
	}
	return nil
}
