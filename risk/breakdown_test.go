package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryTotalsAsAuthored(t *testing.T) {
	totals := CategoryTotals(Breakdown())

	assert.Equal(t, []CategoryTotal{
		{Category: FinancialRisk, Percent: 55},
		{Category: RegulatoryRisk, Percent: 45},
	}, totals)
	assert.Equal(t, 100, Total(Breakdown()))
}

func TestBreakdownReturnsCopy(t *testing.T) {
	entries := Breakdown()
	entries[0].Percent = 99

	assert.Equal(t, 30, Breakdown()[0].Percent)
}

func TestCategoryTotalsEmpty(t *testing.T) {
	assert.Empty(t, CategoryTotals(nil))
	assert.Zero(t, Total(nil))
}
