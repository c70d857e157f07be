package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/GAUNTLET/internal/benchmark"
	"github.com/copyleftdev/GAUNTLET/internal/config"
	"github.com/copyleftdev/GAUNTLET/internal/logging"
)

// testConfig creates a test configuration with default values
func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{
		Environment: "test",
	}

	cfg.HTTP.Port = 8080
	cfg.HTTP.ReadTimeout = 30 * time.Second
	cfg.HTTP.WriteTimeout = 30 * time.Second
	cfg.HTTP.IdleTimeout = 120 * time.Second
	cfg.HTTP.ShutdownTimeout = 30 * time.Second

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"
	cfg.Logging.Output = "stdout"

	cfg.Suite.SyntheticSeed = 7
	cfg.Suite.MaxCached = 16

	return cfg
}

// testLogger creates a test logger
func testLogger(t *testing.T) *logging.Logger {
	logger, err := logging.NewLogger(&logging.Config{
		Level:  "debug",
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}

func testServer(t *testing.T) *Server {
	cfg := testConfig(t)
	return NewServer(cfg, testLogger(t),
		benchmark.SyntheticProvider{Seed: cfg.Suite.SyntheticSeed},
		NewMetrics(prometheus.NewRegistry()))
}

func TestNewServer(t *testing.T) {
	srv := testServer(t)
	assert.NotNil(t, srv, "Server should be created")
}

func TestRegisterRoutes(t *testing.T) {
	srv := testServer(t)
	r := chi.NewRouter()
	srv.RegisterRoutes(r)

	tests := []struct {
		method      string
		path        string
		shouldExist bool
	}{
		{"POST", "/api/v1/evaluate", true},
		{"POST", "/api/v1/bounds", true},
		{"GET", "/api/v1/problems", true},
		{"POST", "/rpc", true},
		{"GET", "/healthz", false}, // Not registered by server package
		{"GET", "/nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			// A 404 means the route does not exist
			if tt.shouldExist && rr.Code == http.StatusNotFound {
				t.Errorf("Route %s %s should exist but returned 404", tt.method, tt.path)
			}
		})
	}
}

func postJSON(t *testing.T, r chi.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandleEvaluate(t *testing.T) {
	srv := testServer(t)
	r := chi.NewRouter()
	srv.RegisterRoutes(r)

	t.Run("single point", func(t *testing.T) {
		rr := postJSON(t, r, "/api/v1/evaluate", map[string]interface{}{
			"suite":   "cec2013",
			"problem": 1,
			"dim":     10,
			"x":       make([]float64, 10),
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp evaluateResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp.Values, 1)
		assert.Equal(t, "CEC2013 - f1(sphere)", resp.Name)
	})

	t.Run("batch", func(t *testing.T) {
		rr := postJSON(t, r, "/api/v1/evaluate", map[string]interface{}{
			"suite":   "cec2014",
			"problem": 4,
			"dim":     10,
			"points":  [][]float64{make([]float64, 10), make([]float64, 10)},
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp evaluateResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp.Values, 2)
		// Same point evaluated twice must yield the same value
		assert.Equal(t, resp.Values[0], resp.Values[1])
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		rr := postJSON(t, r, "/api/v1/evaluate", map[string]interface{}{
			"suite":   "cec2013",
			"problem": 1,
			"dim":     10,
			"x":       make([]float64, 3),
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown suite", func(t *testing.T) {
		rr := postJSON(t, r, "/api/v1/evaluate", map[string]interface{}{
			"suite":   "cec2099",
			"problem": 1,
			"dim":     10,
			"x":       make([]float64, 10),
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid problem id", func(t *testing.T) {
		rr := postJSON(t, r, "/api/v1/evaluate", map[string]interface{}{
			"suite":   "cec2014",
			"problem": 31,
			"dim":     10,
			"x":       make([]float64, 10),
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no points", func(t *testing.T) {
		rr := postJSON(t, r, "/api/v1/evaluate", map[string]interface{}{
			"suite":   "cec2013",
			"problem": 1,
			"dim":     10,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleBounds(t *testing.T) {
	srv := testServer(t)
	r := chi.NewRouter()
	srv.RegisterRoutes(r)

	rr := postJSON(t, r, "/api/v1/bounds", map[string]interface{}{
		"suite":   "cec2013",
		"problem": 21,
		"dim":     10,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp boundsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 700.0, resp.Bias)
	require.Len(t, resp.Lower, 10)
	require.Len(t, resp.Upper, 10)
	for i := range resp.Lower {
		assert.Equal(t, -100.0, resp.Lower[i])
		assert.Equal(t, 100.0, resp.Upper[i])
	}
}

func TestHandleProblems(t *testing.T) {
	srv := testServer(t)
	r := chi.NewRouter()
	srv.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/problems", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Suites []suiteInfo `json:"suites"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Suites, 2)
	assert.Equal(t, "cec2013", resp.Suites[0].Suite)
	assert.Equal(t, 28, resp.Suites[0].Problems)
	assert.Equal(t, "cec2014", resp.Suites[1].Suite)
	assert.Equal(t, 30, resp.Suites[1].Problems)
	assert.Equal(t, 100.0, resp.Suites[1].Biases[0])
}

func TestJSONRPC(t *testing.T) {
	srv := testServer(t)
	r := chi.NewRouter()
	srv.RegisterRoutes(r)

	t.Run("evaluate", func(t *testing.T) {
		rr := postJSON(t, r, "/rpc", map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"method":  "benchmark.evaluate",
			"params": map[string]interface{}{
				"suite":   "cec2013",
				"problem": 1,
				"dim":     10,
				"x":       make([]float64, 10),
			},
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "2.0", resp["jsonrpc"])
		assert.NotNil(t, resp["result"])
		assert.Nil(t, resp["error"])
	})

	t.Run("info", func(t *testing.T) {
		rr := postJSON(t, r, "/rpc", map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      2,
			"method":  "benchmark.info",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.NotNil(t, resp["result"])
	})

	t.Run("invalid params code", func(t *testing.T) {
		rr := postJSON(t, r, "/rpc", map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      3,
			"method":  "benchmark.evaluate",
			"params": map[string]interface{}{
				"suite":   "cec2013",
				"problem": 99,
				"dim":     10,
				"x":       make([]float64, 10),
			},
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		errObj, ok := resp["error"].(map[string]interface{})
		require.True(t, ok, "response should contain error object")
		assert.Equal(t, float64(-32602), errObj["code"])
	})

	t.Run("method not found", func(t *testing.T) {
		rr := postJSON(t, r, "/rpc", map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      4,
			"method":  "benchmark.unknown",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		errObj, ok := resp["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(-32601), errObj["code"])
	})

	t.Run("wrong version", func(t *testing.T) {
		rr := postJSON(t, r, "/rpc", map[string]interface{}{
			"jsonrpc": "1.0",
			"id":      5,
			"method":  "benchmark.info",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		errObj, ok := resp["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(-32600), errObj["code"])
	})
}

func TestProblemCache(t *testing.T) {
	srv := testServer(t)

	p1, err := srv.problem("cec2013", 1, 10)
	require.NoError(t, err)
	p2, err := srv.problem("cec2013", 1, 10)
	require.NoError(t, err)
	assert.Same(t, p1, p2, "repeated construction should hit the cache")

	p3, err := srv.problem("cec2013", 1, 30)
	require.NoError(t, err)
	assert.NotSame(t, p1, p3, "different dimension is a different instance")
}

func TestClose(t *testing.T) {
	srv := testServer(t)
	_, err := srv.problem("cec2014", 23, 10)
	require.NoError(t, err)

	assert.NoError(t, srv.Close(), "Close should not return an error")
}

func TestRespondWithError(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name       string
		code       int
		message    string
		id         interface{}
		expectedID interface{}
		expectCode int
	}{
		{
			name:       "valid error response",
			code:       -32602,
			message:    "invalid input",
			id:         "123",
			expectedID: "123",
			expectCode: http.StatusOK, // respondWithError writes 200 with error in body
		},
		{
			name:       "nil id",
			code:       -32000,
			message:    "server error",
			id:         nil,
			expectedID: nil,
			expectCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			srv.respondWithError(rr, tt.code, tt.message, tt.id)

			assert.Equal(t, tt.expectCode, rr.Code, "status code should match")

			var response map[string]interface{}
			err := json.NewDecoder(rr.Body).Decode(&response)
			assert.NoError(t, err, "should decode response body")

			errObj, ok := response["error"].(map[string]interface{})
			assert.True(t, ok, "response should contain error object")
			assert.Equal(t, float64(tt.code), errObj["code"], "error code should match")
			assert.Equal(t, tt.message, errObj["message"], "error message should match")

			assert.Equal(t, tt.expectedID, response["id"], "response ID should match")
		})
	}
}
