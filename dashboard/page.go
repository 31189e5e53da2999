// Package dashboard renders the single-page dashboard with its three tabs.
package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"fcnca-dashboard/chart"
	"fcnca-dashboard/content"
	"fcnca-dashboard/helpers"
	"fcnca-dashboard/risk"
	"fcnca-dashboard/stock"
)

//go:embed templates/*.html
var templateFS embed.FS

// View is everything the page template needs
type View struct {
	Content     *content.Dashboard
	Symbol      string
	Start       string
	End         string
	Summary     stock.Summary
	StockFigure chart.Figure
	RiskFigure  chart.Figure
	RiskEntries []risk.Entry
	RiskTotals  []risk.CategoryTotal
	LLMEnabled  bool
}

// NewView assembles a view from loaded records and the static risk breakdown
func NewView(c *content.Dashboard, symbol string, start, end time.Time, records []stock.PriceRecord, llmEnabled bool) View {
	entries := risk.Breakdown()
	return View{
		Content:     c,
		Symbol:      symbol,
		Start:       start.Format(stock.DateLayout),
		End:         end.Format(stock.DateLayout),
		Summary:     stock.Summarize(records),
		StockFigure: chart.StockFigure(c.Stock.ChartTitle, records, c.PrimaryColor),
		RiskFigure:  chart.RiskFigure(c.Risk.ChartTitle, entries),
		RiskEntries: entries,
		RiskTotals:  risk.CategoryTotals(entries),
		LLMEnabled:  llmEnabled,
	}
}

// Renderer executes the embedded page template
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page.html").Funcs(template.FuncMap{
		"usd":     helpers.FormatUSD,
		"volume":  helpers.FormatVolume,
		"percent": helpers.FormatPercent,
		"figure":  figureJS,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page. Nothing is written if the template fails.
func (r *Renderer) Render(w io.Writer, v View) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page.html", v); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// figureJS embeds a figure as a JavaScript object literal
func figureJS(f chart.Figure) (template.JS, error) {
	s, err := f.JSON()
	if err != nil {
		return "", err
	}
	return template.JS(s), nil
}
