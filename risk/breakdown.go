// Package risk holds the hand-authored risk exposure breakdown shown on the
// Risk Exposure tab. The values are fixed and not derived from any data.
package risk

// Entry is one (category, subcategory, percentage) triple
type Entry struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Percent     int    `json:"risk_level_pct"`
}

// CategoryTotal is the summed percentage of one category
type CategoryTotal struct {
	Category string `json:"category"`
	Percent  int    `json:"risk_level_pct"`
}

const (
	FinancialRisk  = "Financial Risk"
	RegulatoryRisk = "Regulatory Risk"
)

var breakdown = []Entry{
	{Category: FinancialRisk, Subcategory: "Credit Risk", Percent: 30},
	{Category: FinancialRisk, Subcategory: "Market Risk", Percent: 25},
	{Category: RegulatoryRisk, Subcategory: "Compliance Risk", Percent: 25},
	{Category: RegulatoryRisk, Subcategory: "Operational Risk", Percent: 20},
}

// Breakdown returns a copy of the entries in authored order
func Breakdown() []Entry {
	out := make([]Entry, len(breakdown))
	copy(out, breakdown)
	return out
}

// CategoryTotals sums entries per category, in order of first appearance
func CategoryTotals(entries []Entry) []CategoryTotal {
	var totals []CategoryTotal
	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category})
		}
		totals[i].Percent += e.Percent
	}
	return totals
}

// Total sums all entries
func Total(entries []Entry) int {
	sum := 0
	for _, e := range entries {
		sum += e.Percent
	}
	return sum
}
