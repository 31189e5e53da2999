// Package chart builds Plotly figure documents. The browser renders them with
// Plotly.js; nothing here draws.
package chart

import (
	"encoding/json"

	"fcnca-dashboard/risk"
	"fcnca-dashboard/stock"
)

// Figure is a Plotly figure: traces plus layout
type Figure struct {
	Data   []map[string]interface{} `json:"data"`
	Layout map[string]interface{}   `json:"layout"`
}

// JSON encodes the figure for embedding in the page
func (f Figure) JSON() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RdBu is Plotly's sequential red-blue scale
var RdBu = [][]interface{}{
	{0.0, "rgb(103,0,31)"},
	{0.1, "rgb(178,24,43)"},
	{0.2, "rgb(214,96,77)"},
	{0.3, "rgb(244,165,130)"},
	{0.4, "rgb(253,219,199)"},
	{0.5, "rgb(247,247,247)"},
	{0.6, "rgb(209,229,240)"},
	{0.7, "rgb(146,197,222)"},
	{0.8, "rgb(67,147,195)"},
	{0.9, "rgb(33,102,172)"},
	{1.0, "rgb(5,48,97)"},
}

// StockFigure draws close price over date as a spline. Empty records give a
// valid figure with empty axes.
func StockFigure(title string, records []stock.PriceRecord, color string) Figure {
	x := make([]string, len(records))
	y := make([]float64, len(records))
	for i, r := range records {
		x[i] = r.DateString()
		y[i] = r.Close
	}

	return Figure{
		Data: []map[string]interface{}{{
			"type": "scatter",
			"mode": "lines",
			"name": "Close",
			"x":    x,
			"y":    y,
			"line": map[string]interface{}{"shape": "spline", "color": color},
		}},
		Layout: map[string]interface{}{
			"title":         map[string]interface{}{"text": title, "font": map[string]interface{}{"color": color}},
			"plot_bgcolor":  "white",
			"paper_bgcolor": "white",
			"xaxis":         map[string]interface{}{"title": map[string]interface{}{"text": "Date"}, "showgrid": false},
			"yaxis":         map[string]interface{}{"title": map[string]interface{}{"text": "Close"}, "showgrid": false},
			"autosize":      true,
		},
	}
}

// RiskFigure draws the breakdown as a Category → Subcategory sunburst.
// Category nodes carry their summed percentage so branchvalues=total holds.
func RiskFigure(title string, entries []risk.Entry) Figure {
	totals := risk.CategoryTotals(entries)
	n := len(totals) + len(entries)
	ids := make([]string, 0, n)
	labels := make([]string, 0, n)
	parents := make([]string, 0, n)
	values := make([]int, 0, n)

	for _, t := range totals {
		ids = append(ids, t.Category)
		labels = append(labels, t.Category)
		parents = append(parents, "")
		values = append(values, t.Percent)
	}
	for _, e := range entries {
		ids = append(ids, e.Category+"/"+e.Subcategory)
		labels = append(labels, e.Subcategory)
		parents = append(parents, e.Category)
		values = append(values, e.Percent)
	}

	return Figure{
		Data: []map[string]interface{}{{
			"type":          "sunburst",
			"ids":           ids,
			"labels":        labels,
			"parents":       parents,
			"values":        values,
			"branchvalues":  "total",
			"hovertemplate": "%{label}<br>Risk Level (%): %{value}<extra></extra>",
			"marker": map[string]interface{}{
				"colors":     values,
				"colorscale": RdBu,
				"showscale":  true,
				"colorbar":   map[string]interface{}{"title": map[string]interface{}{"text": "Risk Level (%)"}},
			},
		}},
		Layout: map[string]interface{}{
			"title":  map[string]interface{}{"text": title},
			"margin": map[string]interface{}{"t": 30, "l": 0, "r": 0, "b": 0},
		},
	}
}
