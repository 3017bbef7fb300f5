package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-backend/internal/api/routes"
	"crm-backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "development",
		JWTSecret:     "test-secret",
		JWTTTLMinutes: 60,
		BcryptCost:    4,
	}
}

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := routes.SetupRoutes(routes.Dependencies{Config: testConfig()})
	require.NoError(t, err)

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, route := range []string{
		"POST /api/auth/signup",
		"POST /api/auth/login",
		"POST /api/auth/invitations/accept",
		"PUT /api/v1/profile",
		"GET /api/v1/companies",
		"DELETE /api/v1/contacts/:id",
		"GET /api/v1/deals/pipeline",
		"POST /api/v1/deals/import",
		"PATCH /api/v1/deals/:id/stage",
		"PATCH /api/v1/tasks/:id/status",
		"GET /api/v1/dashboard",
		"GET /api/v1/team",
		"POST /api/v1/team/invitations",
		"DELETE /api/v1/team/invitations/:id",
		"GET /health/live",
	} {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestSetupRoutes_RequiresAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := routes.SetupRoutes(routes.Dependencies{Config: testConfig()})
	require.NoError(t, err)

	for _, path := range []string{"/api/v1/deals", "/api/v1/dashboard", "/api/v1/team"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
}

func TestSetupRoutes_InvalidAuthConfig(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""

	_, err := routes.SetupRoutes(routes.Dependencies{Config: cfg})
	assert.Error(t, err)
}
