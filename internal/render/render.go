// Package render turns a computed ratio bundle plus company metadata into a
// byte payload in one of the supported report encodings. Each encoding is a
// self-contained strategy behind the Renderer interface, registered in a
// lookup table keyed by format id; adding a format never touches the others.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/finratios/fin_report_app/internal/apperrors"
	"github.com/finratios/fin_report_app/internal/core/domain"
	"github.com/finratios/fin_report_app/internal/core/ratio"
)

// NotComputableMarker is rendered in place of a value whenever a selected
// ratio could not be computed. A blank or zero is never emitted instead.
const NotComputableMarker = "not computable"

// Input is the (ratios, company, statement) triple every strategy projects
// into its artifact. Selected filters which ratios appear; the strategies
// render exactly that set.
type Input struct {
	Company     domain.Company
	Statement   domain.FinancialData
	Ratios      ratio.Result
	Selected    []ratio.ID
	GeneratedAt time.Time
}

// Artifact is a rendered report payload.
type Artifact struct {
	Bytes             []byte
	SuggestedFilename string
	MIMEType          string
}

// Renderer is one format strategy. Implementations are stateless and safe for
// concurrent use.
type Renderer interface {
	Format() domain.ReportFormat
	MIMEType() string
	Render(input Input) (Artifact, error)
}

// Registry maps format ids to their strategies.
type Registry map[domain.ReportFormat]Renderer

// NewRegistry builds the default registry with all four strategies.
func NewRegistry() Registry {
	reg := Registry{}
	for _, r := range []Renderer{
		NewPDFRenderer(),
		NewXLSXRenderer(),
		NewCSVRenderer(),
		NewDocRenderer(),
	} {
		reg[r.Format()] = r
	}
	return reg
}

// Get looks up the strategy for a format.
func (r Registry) Get(format domain.ReportFormat) (Renderer, bool) {
	renderer, ok := r[format]
	return renderer, ok
}

// row is the shared projection of one selected ratio. All strategies render
// from the same rows so the numeric content agrees across formats.
type row struct {
	ID         ratio.ID
	Label      string
	Value      string // "2.00" or NotComputableMarker
	Numeric    *float64
	Evaluation string
	Trace      string
}

// buildRows resolves the selection against the computed result. A selected id
// absent from the result means the input triple is malformed.
func buildRows(input Input) ([]row, error) {
	if len(input.Selected) == 0 {
		return nil, fmt.Errorf("%w: no ratios selected", apperrors.ErrValidation)
	}
	rows := make([]row, 0, len(input.Selected))
	for _, id := range input.Selected {
		entry, ok := input.Ratios[id]
		if !ok {
			return nil, fmt.Errorf("selected ratio %s missing from computed result", id)
		}
		r := row{
			ID:         id,
			Label:      id.Label(),
			Value:      NotComputableMarker,
			Evaluation: string(entry.Evaluation),
			Trace:      entry.FormulaTrace,
		}
		if entry.Value != nil {
			rounded := ratio.Round2(*entry.Value)
			r.Numeric = &rounded
			r.Value = fmt.Sprintf("%.2f", rounded)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// renderErr wraps a strategy failure with its format id.
func renderErr(format domain.ReportFormat, err error) error {
	return &apperrors.RenderError{Format: string(format), Err: err}
}

// SanitizeFilename case-folds the company name and strips every character
// outside [a-z0-9_]; runs of whitespace become single underscores first.
func SanitizeFilename(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r):
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// suggestedFilename builds {sanitized-company-name}_{iso-date}.{ext}.
func suggestedFilename(input Input, ext string) string {
	name := SanitizeFilename(input.Company.Name)
	if name == "" {
		name = "report"
	}
	return fmt.Sprintf("%s_%s.%s", name, input.GeneratedAt.Format("2006-01-02"), ext)
}

// reportTitle is the heading shared by the document-style strategies.
func reportTitle(input Input) string {
	return fmt.Sprintf("Financial Ratio Report - %s (%d)", input.Company.Name, input.Statement.FiscalYear)
}
