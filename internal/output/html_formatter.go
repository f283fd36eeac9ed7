package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// HTMLFormatter produces a standalone HTML report of one result
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/result.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("result").Funcs(template.FuncMap{
	"rupiah": FormatRupiah,
	"pct":    FormatPercentage,
	"title":  Title,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(res *domain.ComputationResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ComputationResult
		Summary     string
		AddsToGross bool
		Assumptions []string
	}{res, Summary(*res), res.AddsToGross(), DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
