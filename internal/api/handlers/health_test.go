package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"crm-backend/internal/api/handlers"
	"crm-backend/internal/testutils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	healthy := handlers.NewHealthHandler(map[string]handlers.HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    handlers.RedisCheck(client),
	})
	broken := handlers.NewHealthHandler(map[string]handlers.HealthCheck{
		"database": func(context.Context) error { return errors.New("connection refused") },
	})

	httpSuite := testutils.SetupHTTPTest()
	httpSuite.Router.GET("/health", healthy.Health)
	httpSuite.Router.GET("/health/ready", healthy.Ready)
	httpSuite.Router.GET("/health/live", healthy.Live)
	httpSuite.Router.GET("/broken/health", broken.Health)
	httpSuite.Router.GET("/broken/ready", broken.Ready)

	t.Run("healthy", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodGet, "/health", nil)

		var resp handlers.HealthResponse
		testutils.AssertJSONResponse(t, w, http.StatusOK, &resp)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "healthy", resp.Services["redis"])
	})

	t.Run("ready", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodGet, "/health/ready", nil)

		var resp map[string]interface{}
		testutils.AssertJSONResponse(t, w, http.StatusOK, &resp)
		assert.Equal(t, true, resp["ready"])
	})

	t.Run("live", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodGet, "/health/live", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("database down", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodGet, "/broken/health", nil)

		var resp handlers.HealthResponse
		testutils.AssertJSONResponse(t, w, http.StatusServiceUnavailable, &resp)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "error: connection refused", resp.Services["database"])
	})

	t.Run("not ready", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodGet, "/broken/ready", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("redis down", func(t *testing.T) {
		unreachable := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
		defer unreachable.Close()
		h := handlers.NewHealthHandler(map[string]handlers.HealthCheck{"redis": handlers.RedisCheck(unreachable)})
		httpSuite.Router.GET("/unreachable/health", h.Health)

		w := httpSuite.MakeRequest(http.MethodGet, "/unreachable/health", nil)

		var resp handlers.HealthResponse
		testutils.AssertJSONResponse(t, w, http.StatusServiceUnavailable, &resp)
		assert.Contains(t, resp.Services["redis"], "error: ")
	})
}
