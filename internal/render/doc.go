package render

import (
	"bytes"
	"html/template"

	"github.com/finratios/fin_report_app/internal/core/domain"
)

// docTemplate is an HTML payload that word processors accept when served as
// application/msword.
var docTemplate = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Calibri, Arial, sans-serif; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 6px 10px; text-align: left; }
th { background: #eee; }
.trace { color: #666; font-size: 0.85em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Company.Name}} ({{.Company.Code}}) &mdash; fiscal year {{.FiscalYear}}, generated {{.Generated}}</p>
<table>
<tr><th>Ratio</th><th>Value</th><th>Evaluation</th><th>Formula</th></tr>
{{range .Rows}}<tr>
<td>{{.Label}}</td>
<td>{{.Value}}</td>
<td>{{.Evaluation}}</td>
<td class="trace">{{.Trace}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

type docData struct {
	Title      string
	Company    domain.Company
	FiscalYear int
	Generated  string
	Rows       []row
}

// docRenderer emits the word-compatible markup encoding.
type docRenderer struct{}

// NewDocRenderer returns the word-compatible markup strategy.
func NewDocRenderer() Renderer { return docRenderer{} }

func (docRenderer) Format() domain.ReportFormat { return domain.FormatDOC }

func (docRenderer) MIMEType() string { return "application/msword" }

func (r docRenderer) Render(input Input) (Artifact, error) {
	rows, err := buildRows(input)
	if err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}

	var buf bytes.Buffer
	err = docTemplate.Execute(&buf, docData{
		Title:      reportTitle(input),
		Company:    input.Company,
		FiscalYear: input.Statement.FiscalYear,
		Generated:  input.GeneratedAt.Format("2006-01-02"),
		Rows:       rows,
	})
	if err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}

	return Artifact{
		Bytes:             buf.Bytes(),
		SuggestedFilename: suggestedFilename(input, "doc"),
		MIMEType:          r.MIMEType(),
	}, nil
}
