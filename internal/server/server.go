package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/copyleftdev/GAUNTLET/internal/benchmark"
	"github.com/copyleftdev/GAUNTLET/internal/benchmark/cec2013"
	"github.com/copyleftdev/GAUNTLET/internal/benchmark/cec2014"
	"github.com/copyleftdev/GAUNTLET/internal/config"
	"github.com/copyleftdev/GAUNTLET/internal/logging"
)

// Logger defines the logging interface used by the server.
// This allows us to be flexible with our logging implementation.
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	Fatal(msg string, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) *logging.Logger
}

// problemKey identifies one cached problem instance.
type problemKey struct {
	suite string
	id    int
	dim   int
}

// Server implements the HTTP and JSON-RPC surface of the benchmark
// service. Problem construction parses data tables, so built instances
// are cached; a Problem itself is immutable and evaluated concurrently
// without further locking.
type Server struct {
	cfg      *config.Config
	logger   Logger
	provider benchmark.Provider
	metrics  *Metrics

	problems   map[problemKey]*benchmark.Problem
	problemsMu sync.RWMutex
}

// NewServer creates a new server instance. The provider supplies the
// problem tables (bundle files or synthetic).
func NewServer(cfg *config.Config, logger Logger, provider benchmark.Provider, metrics *Metrics) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		metrics:  metrics,
		problems: make(map[problemKey]*benchmark.Problem),
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/bounds", s.handleBounds)
		r.Get("/problems", s.handleProblems)
	})

	// JSON-RPC 2.0 endpoint
	r.Post("/rpc", s.handleJSONRPC)
}

// problem returns the cached instance for (suite, id, dim), building it
// on first use.
func (s *Server) problem(suite string, id, dim int) (*benchmark.Problem, error) {
	key := problemKey{suite: suite, id: id, dim: dim}

	s.problemsMu.RLock()
	p, ok := s.problems[key]
	s.problemsMu.RUnlock()
	if ok {
		return p, nil
	}

	var err error
	start := time.Now()
	switch suite {
	case "cec2013":
		p, err = cec2013.New(id, dim, s.provider)
	case "cec2014":
		p, err = cec2014.New(id, dim, s.provider)
	default:
		err = benchmark.NewInvalidArgument("unknown suite %q", suite)
	}
	if err != nil {
		return nil, err
	}

	s.problemsMu.Lock()
	defer s.problemsMu.Unlock()
	if cached, ok := s.problems[key]; ok {
		return cached, nil
	}
	if len(s.problems) >= s.cfg.Suite.MaxCached {
		// Cheap bound: drop an arbitrary entry. The working set of a
		// benchmark run is tiny compared to the limit.
		for k := range s.problems {
			delete(s.problems, k)
			break
		}
	}
	s.problems[key] = p

	s.logger.Debug("Problem constructed", map[string]interface{}{
		"suite":       suite,
		"problem":     id,
		"dim":         dim,
		"name":        p.Name(),
		"build_ms":    float64(time.Since(start).Microseconds()) / 1000.0,
		"cached_total": len(s.problems),
	})
	if s.metrics != nil {
		s.metrics.ProblemBuilds.WithLabelValues(suite).Inc()
		s.metrics.CachedProblems.Set(float64(len(s.problems)))
	}
	return p, nil
}

// evaluateRequest is the shared parameter shape of the REST and RPC
// evaluate calls. Points allows batch evaluation; X is the single-point
// shorthand.
type evaluateRequest struct {
	Suite   string      `json:"suite"`
	Problem int         `json:"problem"`
	Dim     int         `json:"dim"`
	X       []float64   `json:"x,omitempty"`
	Points  [][]float64 `json:"points,omitempty"`
}

type evaluateResponse struct {
	Suite   string    `json:"suite"`
	Problem int       `json:"problem"`
	Dim     int       `json:"dim"`
	Name    string    `json:"name"`
	Values  []float64 `json:"values"`
}

func (s *Server) evaluate(req evaluateRequest) (*evaluateResponse, error) {
	points := req.Points
	if req.X != nil {
		points = append([][]float64{req.X}, points...)
	}
	if len(points) == 0 {
		return nil, benchmark.NewInvalidArgument("no points to evaluate")
	}

	p, err := s.problem(req.Suite, req.Problem, req.Dim)
	if err != nil {
		return nil, err
	}

	for i, pt := range points {
		if len(pt) != p.Dimension() {
			return nil, benchmark.NewInvalidArgument("point %d has %d coordinates, problem has dimension %d", i, len(pt), p.Dimension())
		}
	}

	start := time.Now()
	values := make([]float64, len(points))
	for i, pt := range points {
		values[i] = p.Fitness(pt)
	}
	if s.metrics != nil {
		s.metrics.Evaluations.WithLabelValues(req.Suite, fmt.Sprintf("f%d", req.Problem)).Add(float64(len(points)))
		s.metrics.EvaluationDuration.WithLabelValues(req.Suite).Observe(time.Since(start).Seconds() / float64(len(points)))
	}

	return &evaluateResponse{
		Suite:   req.Suite,
		Problem: req.Problem,
		Dim:     req.Dim,
		Name:    p.Name(),
		Values:  values,
	}, nil
}

type boundsRequest struct {
	Suite   string `json:"suite"`
	Problem int    `json:"problem"`
	Dim     int    `json:"dim"`
}

type boundsResponse struct {
	Suite   string    `json:"suite"`
	Problem int       `json:"problem"`
	Dim     int       `json:"dim"`
	Name    string    `json:"name"`
	Bias    float64   `json:"bias"`
	Lower   []float64 `json:"lower"`
	Upper   []float64 `json:"upper"`
}

func (s *Server) bounds(req boundsRequest) (*boundsResponse, error) {
	p, err := s.problem(req.Suite, req.Problem, req.Dim)
	if err != nil {
		return nil, err
	}
	lo, hi := p.Bounds()
	return &boundsResponse{
		Suite:   req.Suite,
		Problem: req.Problem,
		Dim:     req.Dim,
		Name:    p.Name(),
		Bias:    p.Bias(),
		Lower:   lo,
		Upper:   hi,
	}, nil
}

// suiteInfo describes one suite in the problems listing.
type suiteInfo struct {
	Suite      string    `json:"suite"`
	Problems   int       `json:"problems"`
	Dimensions []int     `json:"dimensions"`
	Biases     []float64 `json:"biases"`
}

func (s *Server) suites() []suiteInfo {
	infos := []suiteInfo{
		{Suite: "cec2013", Problems: cec2013.ProblemCount, Dimensions: cec2013.Dimensions()},
		{Suite: "cec2014", Problems: cec2014.ProblemCount, Dimensions: cec2014.Dimensions()},
	}
	for i := 1; i <= cec2013.ProblemCount; i++ {
		infos[0].Biases = append(infos[0].Biases, cec2013.Bias(i))
	}
	for i := 1; i <= cec2014.ProblemCount; i++ {
		infos[1].Biases = append(infos[1].Biases, cec2014.Bias(i))
	}
	return infos
}

// handleJSONRPC handles JSON-RPC 2.0 requests
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var request struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      interface{}     `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondWithError(w, -32700, "Parse error", nil)
		return
	}

	// Validate JSON-RPC 2.0 request
	if request.JSONRPC != "2.0" {
		s.respondWithError(w, -32600, "Invalid Request", nil)
		return
	}

	var result interface{}
	var err error

	switch request.Method {
	case "benchmark.evaluate":
		var req evaluateRequest
		if err = json.Unmarshal(request.Params, &req); err == nil {
			result, err = s.evaluate(req)
		}
	case "benchmark.bounds":
		var req boundsRequest
		if err = json.Unmarshal(request.Params, &req); err == nil {
			result, err = s.bounds(req)
		}
	case "benchmark.info":
		result = s.suites()
	default:
		s.respondWithError(w, -32601, "Method not found", request.ID)
		return
	}

	if err != nil {
		code := -32000
		if benchmark.IsInvalidArgument(err) {
			code = -32602
		}
		s.respondWithError(w, code, err.Error(), request.ID)
		return
	}

	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      request.ID,
		"result":  result,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// respondWithError sends a JSON-RPC 2.0 error response
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string, id interface{}) {
	s.logger.Error("Request error", map[string]interface{}{
		"status":  code,
		"message": message,
	})

	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
		"id": id,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleEvaluate handles POST /api/v1/evaluate.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	result, err := s.evaluate(req)
	if err != nil {
		s.respondJSONError(w, statusFor(err), err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

// handleBounds handles POST /api/v1/bounds.
func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	var req boundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	result, err := s.bounds(req)
	if err != nil {
		s.respondJSONError(w, statusFor(err), err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

// handleProblems handles GET /api/v1/problems.
func (s *Server) handleProblems(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"suites": s.suites(),
	})
}

func statusFor(err error) int {
	if benchmark.IsInvalidArgument(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) respondJSONError(w http.ResponseWriter, status int, msg string) {
	s.logger.Error("Request error", map[string]interface{}{
		"status":  status,
		"message": msg,
	})
	s.respondJSON(w, status, map[string]interface{}{"error": msg})
}

// Close releases server resources. The problem cache holds no external
// handles, so this only empties it.
func (s *Server) Close() error {
	s.problemsMu.Lock()
	defer s.problemsMu.Unlock()
	s.problems = make(map[problemKey]*benchmark.Problem)
	return nil
}
