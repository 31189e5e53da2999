package stock

// Summary holds the metric card values for the Stock Performance tab
type Summary struct {
	Empty       bool    `json:"empty"`
	Count       int     `json:"count"`
	FirstDate   string  `json:"first_date,omitempty"`
	LastDate    string  `json:"last_date,omitempty"`
	FirstClose  float64 `json:"first_close"`
	LatestClose float64 `json:"latest_close"`
	ChangePct   float64 `json:"change_pct"`
	PeriodHigh  float64 `json:"period_high"`
	PeriodLow   float64 `json:"period_low"`
	AvgVolume   float64 `json:"avg_volume"`
}

// Summarize computes metric card values. Records are expected in date order;
// an empty slice yields a zero Summary with Empty set.
func Summarize(records []PriceRecord) Summary {
	if len(records) == 0 {
		return Summary{Empty: true}
	}

	first, last := records[0], records[len(records)-1]
	s := Summary{
		Count:       len(records),
		FirstDate:   first.DateString(),
		LastDate:    last.DateString(),
		FirstClose:  first.Close,
		LatestClose: last.Close,
		PeriodHigh:  first.High,
		PeriodLow:   first.Low,
	}

	var totalVolume float64
	for _, r := range records {
		if r.High > s.PeriodHigh {
			s.PeriodHigh = r.High
		}
		if r.Low < s.PeriodLow {
			s.PeriodLow = r.Low
		}
		totalVolume += float64(r.Volume)
	}
	s.AvgVolume = totalVolume / float64(len(records))

	if first.Close != 0 {
		s.ChangePct = (last.Close - first.Close) / first.Close * 100
	}
	return s
}
