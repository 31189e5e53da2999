package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fcnca-dashboard/content"
	"fcnca-dashboard/dashboard"
	"fcnca-dashboard/database"
	"fcnca-dashboard/qa"
	"fcnca-dashboard/stock"
)

// StockLoader returns the cached-or-fetched price history
type StockLoader interface {
	Load(ctx context.Context) ([]stock.PriceRecord, error)
	Symbol() string
	Range() (time.Time, time.Time)
}

// QuestionAnswerer answers dashboard questions
type QuestionAnswerer interface {
	Ask(ctx context.Context, question string) (qa.Answer, error)
}

// QAHistory reads persisted QA logs
type QAHistory interface {
	GetRecentQALogs(limit int) ([]database.QALog, error)
	GetQALog(id int64) (*database.QALog, error)
}

// Server handles HTTP API requests
type Server struct {
	loader     StockLoader
	renderer   *dashboard.Renderer
	content    *content.Dashboard
	qa         QuestionAnswerer
	history    QAHistory
	events     http.Handler
	llmEnabled bool
	upgrader   websocket.Upgrader

	httpServer *http.Server
}

// NewServer creates a new API server instance
func NewServer(loader StockLoader, renderer *dashboard.Renderer, c *content.Dashboard, answerer QuestionAnswerer, llmEnabled bool) *Server {
	s := &Server{
		loader:     loader,
		renderer:   renderer,
		content:    c,
		qa:         answerer,
		llmEnabled: llmEnabled,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Same-origin check is skipped like the CORS policy below
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// SetHistory enables the QA history routes
func (s *Server) SetHistory(history QAHistory) {
	s.history = history
}

// SetEventStream mounts the SSE broker at /api/events. Call before Start.
func (s *Server) SetEventStream(events http.Handler) {
	s.events = events
}

// Handler builds the routed handler with middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Dashboard page
	mux.HandleFunc("GET /{$}", s.handleDashboard)

	// Stock Performance tab
	mux.HandleFunc("GET /api/stock", s.handleGetStock)
	mux.HandleFunc("GET /api/stock/export", s.handleExportStockCSV)

	// Risk Exposure tab
	mux.HandleFunc("GET /api/risk", s.handleGetRisk)

	// Question answering
	mux.HandleFunc("POST /api/qa", s.handleAsk)
	mux.HandleFunc("GET /api/qa/history", s.handleGetQAHistory)
	mux.HandleFunc("GET /api/qa/history/{id}", s.handleGetQALog)
	mux.HandleFunc("GET /ws/qa", s.handleQAWebSocket)

	mux.HandleFunc("GET /api/events", s.handleEvents) // SSE Endpoint

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.corsMiddleware(s.loggingMiddleware(mux))
}

// Start serves on the given port until Shutdown is called. Start after
// Shutdown returns nil without serving.
func (s *Server) Start(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		return err
	}

	zap.S().Infof("🚀 Dashboard server starting on %s", ln.Addr())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// handleEvents serves the SSE stream when one is mounted
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		http.NotFound(w, r)
		return
	}
	s.events.ServeHTTP(w, r)
}
