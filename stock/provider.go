package stock

import (
	"context"
	"time"
)

// Provider fetches daily price history from an external time-series source.
// start is inclusive, end is exclusive. Returned dates are read as calendar
// days in their own location; the time of day is dropped when persisted.
type Provider interface {
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]PriceRecord, error)
	Name() string
}
