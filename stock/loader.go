package stock

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Broadcaster publishes dashboard events to connected browsers
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// LoadedEvent is broadcast after the provider was contacted and the cache file written
type LoadedEvent struct {
	Symbol  string `json:"symbol"`
	Records int    `json:"records"`
	Path    string `json:"path"`
}

// Loader implements cache-or-fetch for one fixed symbol and date range.
// Once the cache file exists it is trusted forever: there is no refresh,
// staleness check or range validation.
type Loader struct {
	provider    Provider
	store       *FileStore
	symbol      string
	start       time.Time
	end         time.Time
	broadcaster Broadcaster

	group singleflight.Group
}

// NewLoader creates a loader for symbol over [start, end)
func NewLoader(provider Provider, store *FileStore, symbol string, start, end time.Time) *Loader {
	return &Loader{
		provider: provider,
		store:    store,
		symbol:   symbol,
		start:    start,
		end:      end,
	}
}

// SetBroadcaster sets the event sink notified after a fetch
func (l *Loader) SetBroadcaster(b Broadcaster) {
	l.broadcaster = b
}

// Symbol returns the tracked ticker
func (l *Loader) Symbol() string { return l.symbol }

// Range returns the configured [start, end) range
func (l *Loader) Range() (time.Time, time.Time) { return l.start, l.end }

// sharedLoadTimeout bounds a load that outlives the caller that started it
const sharedLoadTimeout = 2 * time.Minute

// Load returns the price history, fetching and persisting it on first use.
// Concurrent callers share one in-flight load; each caller stops waiting when
// its own ctx is done while the shared load carries on for the others.
func (l *Loader) Load(ctx context.Context) ([]PriceRecord, error) {
	ch := l.group.DoChan(l.store.Path(), func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()
		return l.load(loadCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]PriceRecord), nil
	}
}

func (l *Loader) load(ctx context.Context) ([]PriceRecord, error) {
	exists, err := l.store.Exists()
	if err != nil {
		return nil, err
	}
	if exists {
		records, err := l.store.Read()
		if err != nil {
			return nil, fmt.Errorf("load cached %s history: %w", l.symbol, err)
		}
		return records, nil
	}

	zap.S().Infof("📥 No local copy at %s, fetching %s %s..%s from %s",
		l.store.Path(), l.symbol, l.start.Format(DateLayout), l.end.Format(DateLayout), l.provider.Name())

	records, err := l.provider.FetchDaily(ctx, l.symbol, l.start, l.end)
	if err != nil {
		return nil, fmt.Errorf("fetch %s history: %w", l.symbol, err)
	}
	records = normalizeDates(records)
	if err := l.store.Write(records); err != nil {
		return nil, fmt.Errorf("persist %s history: %w", l.symbol, err)
	}

	zap.S().Infof("💾 Saved %d %s records to %s", len(records), l.symbol, l.store.Path())

	if l.broadcaster != nil {
		l.broadcaster.Broadcast("stock_data_loaded", LoadedEvent{
			Symbol:  l.symbol,
			Records: len(records),
			Path:    l.store.Path(),
		})
	}
	return records, nil
}

// normalizeDates returns a copy of records with each date moved to UTC
// midnight of its calendar day, the only form the CSV file can hold.
func normalizeDates(records []PriceRecord) []PriceRecord {
	out := make([]PriceRecord, len(records))
	for i, r := range records {
		y, m, d := r.Date.Date()
		r.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		out[i] = r
	}
	return out
}
