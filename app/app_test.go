package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"fcnca-dashboard/config"
)

const chartResponse = `{"chart":{"result":[{"meta":{"symbol":"FCNCA","gmtoffset":-18000},
"timestamp":[1577975400,1578061800],
"indicators":{"quote":[{"open":[533.66,536],"high":[538.1,541],"low":[529.25,530.5],"close":[536.12,540.25],"volume":[41200,38900]}]}}],"error":null}}`

func testConfig(t *testing.T, yahooURL string) *config.Config {
	t.Helper()
	return &config.Config{
		HTTPPort: freePort(t),
		LogLevel: "info",
		Stock: config.StockConfig{
			Symbol:       "FCNCA",
			Start:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			End:          time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			CacheFile:    filepath.Join(t.TempDir(), "fcnca_stock_data.csv"),
			YahooBaseURL: yahooURL,
			Timeout:      5 * time.Second,
		},
		QACacheTTL: time.Hour,
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestNewWiresDashboardWithoutOptionalBackends(t *testing.T) {
	var calls atomic.Int32
	yahoo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(chartResponse))
	}))
	defer yahoo.Close()

	a, err := New(testConfig(t, yahoo.URL))
	require.NoError(t, err)
	defer a.Close()

	h := a.Handler()
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, int32(1), calls.Load(), "second page load must come from the local file")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stock", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/qa/history", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewFailsWhenEnabledDatabaseIsUnreachable(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Database = config.DatabaseConfig{
		Enabled:  true,
		Host:     "127.0.0.1",
		Port:     freePort(t),
		Name:     "bank_dashboard",
		User:     "dashboard",
		Password: "dashboard",
	}

	_, err := New(cfg)
	assert.ErrorContains(t, err, "database connection failed")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	a, err := New(testConfig(t, "http://127.0.0.1:1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	url := "http://127.0.0.1:" + strconv.Itoa(a.config.HTTPPort) + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + 5*time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunWithCancelledContextReleasesPort(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a, err := New(testConfig(t, "http://127.0.0.1:1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Run(ctx))

	addr := "127.0.0.1:" + strconv.Itoa(a.config.HTTPPort)
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err == nil {
		conn.Close()
		t.Fatalf("HTTP server still listening on %s after Run returned", addr)
	}
}
