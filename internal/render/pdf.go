package render

import (
	"fmt"

	"github.com/finratios/fin_report_app/internal/core/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// pdfRenderer emits the PDF encoding via maroto.
type pdfRenderer struct{}

// NewPDFRenderer returns the PDF strategy.
func NewPDFRenderer() Renderer { return pdfRenderer{} }

func (pdfRenderer) Format() domain.ReportFormat { return domain.FormatPDF }

func (pdfRenderer) MIMEType() string { return "application/pdf" }

func (r pdfRenderer) Render(input Input) (Artifact, error) {
	rows, err := buildRows(input)
	if err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}

	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, reportTitle(input), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("%s (%s) - generated %s",
			input.Company.Name, input.Company.Code, input.GeneratedAt.Format("2006-01-02")),
			props.Text{Size: 9, Align: align.Center}),
	)

	headerStyle := props.Text{Size: 10, Style: fontstyle.Bold}
	m.AddRow(8,
		text.NewCol(5, "Ratio", headerStyle),
		text.NewCol(2, "Value", headerStyle),
		text.NewCol(2, "Evaluation", headerStyle),
		text.NewCol(3, "Formula", headerStyle),
	)
	cellStyle := props.Text{Size: 9}
	for _, row := range rows {
		m.AddRow(7,
			text.NewCol(5, row.Label, cellStyle),
			text.NewCol(2, row.Value, cellStyle),
			text.NewCol(2, row.Evaluation, cellStyle),
			text.NewCol(3, row.Trace, props.Text{Size: 7}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return Artifact{}, renderErr(r.Format(), err)
	}

	return Artifact{
		Bytes:             doc.GetBytes(),
		SuggestedFilename: suggestedFilename(input, "pdf"),
		MIMEType:          r.MIMEType(),
	}, nil
}
