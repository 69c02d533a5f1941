package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// utf8BOM is prepended so spreadsheet applications decode non-ASCII company
// names correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvRenderer emits the delimited-text encoding.
type csvRenderer struct{}

// NewCSVRenderer returns the delimited-text strategy.
func NewCSVRenderer() Renderer { return csvRenderer{} }

func (csvRenderer) Format() domain.ReportFormat { return domain.FormatCSV }

func (csvRenderer) MIMEType() string { return "text/csv;charset=utf-8" }

func (r csvRenderer) Render(input Input) (Artifact, error) {
	rows, err := buildRows(input)
	if err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"company", csvSafe(input.Company.Name)},
		{"code", csvSafe(input.Company.Code)},
		{"fiscalYear", fmt.Sprintf("%d", input.Statement.FiscalYear)},
		{"generatedAt", input.GeneratedAt.Format("2006-01-02")},
		{},
		{"ratioId", "ratio", "value", "evaluation", "formula"},
	}
	for _, row := range rows {
		records = append(records, []string{
			string(row.ID),
			csvSafe(row.Label),
			row.Value,
			row.Evaluation,
			csvSafe(row.Trace),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}

	return Artifact{
		Bytes:             buf.Bytes(),
		SuggestedFilename: suggestedFilename(input, "csv"),
		MIMEType:          r.MIMEType(),
	}, nil
}

// csvSafe prevents CSV formula injection by prefixing cells that begin with a
// spreadsheet formula trigger character.
func csvSafe(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@", rune(s[0])) {
		return "'" + s
	}
	return s
}
