// Package api provides HTTP and WebSocket API endpoints for running the oracle script.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/StrathCole/oracle-script/pkg/host"
	"github.com/StrathCole/oracle-script/pkg/logging"
	"github.com/StrathCole/oracle-script/pkg/metrics"
	"github.com/StrathCole/oracle-script/pkg/script"
)

const maxBodyBytes = 1 << 20

// Server represents the HTTP API server.
type Server struct {
	addr     string
	runner   *host.Runner
	script   *script.Script
	timeout  time.Duration
	server   *http.Server
	logger   *logging.Logger
	wsServer *WebSocketServer // Optional WebSocket server for streaming
}

// inputRequest is a script input given either as fields or as hex OBI.
type inputRequest struct {
	Symbols            []string `json:"symbols"`
	MinimumSourceCount uint8    `json:"minimum_source_count"`
	OBI                string   `json:"obi,omitempty"`
}

// executeRequest carries an input together with the reports validators returned.
type executeRequest struct {
	inputRequest
	MinCount int64              `json:"min_count"`
	Reports  map[int64][]string `json:"reports"`
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, runner *host.Runner, timeout time.Duration, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Server{
		addr:    addr,
		runner:  runner,
		script:  runner.Script(),
		timeout: timeout,
		logger:  logger,
	}
}

// SetWebSocketServer sets the WebSocket server for streaming results.
func (s *Server) SetWebSocketServer(ws *WebSocketServer) {
	s.wsServer = ws
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/symbols", s.handleSymbols)
	mux.HandleFunc("/v1/schema", s.handleSchema)
	mux.HandleFunc("/v1/prepare", s.handlePrepare)
	mux.HandleFunc("/v1/execute", s.handleExecute)
	mux.HandleFunc("/v1/request", s.handleRequest)
	return mux
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.timeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("Starting HTTP server", "addr", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// StartTLS starts the HTTP server with TLS.
func (s *Server) StartTLS(certFile, keyFile string) error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.timeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("Starting HTTPS server", "addr", s.addr)
	if err := s.server.ListenAndServeTLS(certFile, keyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTPS server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		s.logger.Info("Stopping HTTP server")
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleHealth handles /health endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	defer func() {
		metrics.RecordHTTPRequest("/health", "200", time.Since(start))
	}()

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleSymbols lists every registered symbol with its data sources.
func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		metrics.RecordHTTPRequest("/v1/symbols", strconv.Itoa(status), time.Since(start))
	}()

	if r.Method != http.MethodGet {
		status = s.sendError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reg := s.script.Registry()
	result := make([]map[string]interface{}, 0)
	for _, symbol := range reg.Symbols() {
		ids := reg.DataSources(symbol)
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = id.String()
		}
		result = append(result, map[string]interface{}{
			"symbol":       symbol,
			"data_sources": names,
		})
	}
	s.sendJSON(w, result)
}

// handleSchema returns the OBI schema of request input and output.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		metrics.RecordHTTPRequest("/v1/schema", strconv.Itoa(status), time.Since(start))
	}()

	if r.Method != http.MethodGet {
		status = s.sendError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.sendJSON(w, map[string]string{"schema": script.Schema})
}

// handlePrepare returns the asks the prepare phase makes for an input.
func (s *Server) handlePrepare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		metrics.RecordHTTPRequest("/v1/prepare", strconv.Itoa(status), time.Since(start))
	}()

	var req inputRequest
	if code, err := decodeBody(r, &req); err != nil {
		status = s.sendError(w, code, err.Error())
		return
	}
	input, err := req.input()
	if err != nil {
		status = s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	session := host.NewSession(0)
	s.script.Prepare(input, session)
	s.sendJSON(w, newPrepareView(session.Asks()))
}

// handleExecute runs the execute phase over caller-supplied reports.
func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		metrics.RecordHTTPRequest("/v1/execute", strconv.Itoa(status), time.Since(start))
	}()

	var req executeRequest
	if code, err := decodeBody(r, &req); err != nil {
		status = s.sendError(w, code, err.Error())
		return
	}
	input, err := req.input()
	if err != nil {
		status = s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	session := host.NewSession(req.MinCount)
	for externalID, reports := range req.Reports {
		for _, raw := range reports {
			session.AddReport(externalID, raw)
		}
	}

	status = s.sendOutput(w, s.script.Execute(input, session))
}

// handleRequest runs a full request against the configured data sources.
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		metrics.RecordHTTPRequest("/v1/request", strconv.Itoa(status), time.Since(start))
	}()

	var req inputRequest
	if code, err := decodeBody(r, &req); err != nil {
		status = s.sendError(w, code, err.Error())
		return
	}
	input, err := req.input()
	if err != nil {
		status = s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	out, err := s.runner.Run(ctx, input)
	if err != nil {
		s.logger.Error("Request failed", "symbols", input.Symbols, "error", err)
		status = s.sendError(w, http.StatusServiceUnavailable, "request failed")
		return
	}

	if s.wsServer != nil {
		s.wsServer.SendUpdate(out)
	}

	status = s.sendOutput(w, out)
}

func (req inputRequest) input() (script.Input, error) {
	if req.OBI == "" {
		return script.Input{
			Symbols:            req.Symbols,
			MinimumSourceCount: req.MinimumSourceCount,
		}, nil
	}

	data, err := hexutil.Decode(req.OBI)
	if err != nil {
		return script.Input{}, fmt.Errorf("invalid obi hex: %w", err)
	}
	input, err := script.DecodeInput(data)
	if err != nil {
		return script.Input{}, fmt.Errorf("invalid obi input: %w", err)
	}
	return input, nil
}

func decodeBody(r *http.Request, v interface{}) (int, error) {
	if r.Method != http.MethodPost {
		return http.StatusMethodNotAllowed, errors.New("method not allowed")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err)
	}
	return http.StatusOK, nil
}

func (s *Server) sendOutput(w http.ResponseWriter, out script.Output) int {
	view, err := newOutputView(out)
	if err != nil {
		s.logger.Error("Failed to encode output", "error", err)
		return s.sendError(w, http.StatusInternalServerError, "failed to encode output")
	}
	s.sendJSON(w, view)
	return http.StatusOK
}

// sendJSON sends a JSON response.
func (s *Server) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response", "error", err)
	}
}

// sendError writes a JSON error body and returns the status written.
func (s *Server) sendError(w http.ResponseWriter, status int, msg string) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	return status
}
