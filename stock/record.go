// Package stock loads the daily price history shown on the Stock Performance
// tab. The history is fetched from the provider once and then served from a
// local CSV file forever.
package stock

import "time"

// DateLayout is the on-disk and on-wire date format of a PriceRecord
const DateLayout = "2006-01-02"

// PriceRecord is one trading day's OHLCV values.
// Date is UTC midnight of the exchange-local trading day.
type PriceRecord struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// DateString returns the record date as YYYY-MM-DD
func (r PriceRecord) DateString() string {
	return r.Date.Format(DateLayout)
}
