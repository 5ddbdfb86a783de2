package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triagehq/mailtriage/internal/ai/mock"
	"github.com/triagehq/mailtriage/internal/cache"
)

// testCache fakes Redis with a controllable ping result.
type testCache struct {
	pingErr error
}

func (c *testCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }
func (c *testCache) Get(_ context.Context, _ string) ([]byte, bool, error)            { return nil, false, nil }
func (c *testCache) Delete(_ context.Context, _ string) error                         { return nil }
func (c *testCache) Ping(_ context.Context) error                                     { return c.pingErr }
func (c *testCache) Close() error                                                     { return nil }
func (c *testCache) IncrWithExpiry(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 1, nil
}

var _ cache.Cache = (*testCache)(nil)

func TestHealthHandler_AllOK(t *testing.T) {
	h := healthHandler(mock.NewMockProvider(), &testCache{})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
	services := data["services"].(map[string]any)
	assert.Equal(t, "mock", services["provider"])
	assert.Equal(t, "ok", services["cache"])
}

func TestHealthHandler_NoCacheConfigured(t *testing.T) {
	h := healthHandler(mock.NewMockProvider(), nil)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	services := data["services"].(map[string]any)
	assert.Equal(t, "disabled", services["cache"])
}

func TestHealthHandler_CacheDegraded(t *testing.T) {
	h := healthHandler(mock.NewMockProvider(), &testCache{pingErr: errors.New("redis down")})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "DEGRADED", errObj["code"])
}

func TestRun_FailsOnMissingConfig(t *testing.T) {
	for _, key := range []string{
		"AI_PROVIDER", "GROQ_API_KEY", "OPENAI_API_KEY", "REDIS_URL", "KAFKA_BROKERS",
	} {
		t.Setenv(key, "")
	}

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_FailsOnBadPolicyFile(t *testing.T) {
	t.Setenv("AI_PROVIDER", "ollama")
	t.Setenv("REDIS_URL", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("TRIAGE_POLICY_FILE", "/does/not/exist.yaml")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load triage policy")
}

func TestShutdownTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, shutdownTimeout)
}
