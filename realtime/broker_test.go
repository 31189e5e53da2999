package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBrokerDeliversBroadcasts(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))

	ctx, cancel := context.WithCancel(context.Background())
	b := NewBroker()
	runDone := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(runDone)
	}()

	srv := httptest.NewServer(b)

	reqCtx, reqCancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	b.Broadcast("qa_answered", map[string]string{"answer": "1898"})

	reader := bufio.NewReader(resp.Body)
	var data string
	for data == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}

	var ev struct {
		Event   string            `json:"event"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &ev))
	assert.Equal(t, "qa_answered", ev.Event)
	assert.Equal(t, "1898", ev.Payload["answer"])

	reqCancel()
	resp.Body.Close()
	require.Eventually(t, func() bool { return b.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	srv.Close()
	cancel()
	<-runDone
	http.DefaultClient.CloseIdleConnections()
}

func TestBroadcastWithoutClientsDoesNotBlock(t *testing.T) {
	b := NewBroker()
	for i := 0; i < 1000; i++ {
		b.Broadcast("tick", i)
	}
}

func TestServeHTTPAfterStopReturns503(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewBroker()
	cancel()
	b.Run(ctx)

	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
