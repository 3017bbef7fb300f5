package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"crm-backend/internal/api/handlers"
	"crm-backend/internal/mocks"
	"crm-backend/internal/service"
	"crm-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDashboardHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockDashboardServiceInterface(ctrl)
	orgID := uuid.New()

	handler := handlers.NewDashboardHandler(mockService)
	httpSuite := testutils.SetupHTTPTest()
	httpSuite.Router.GET("/api/v1/dashboard", withPrincipal(principalFor(orgID)), handler.GetDashboard)
	httpSuite.Router.GET("/anonymous/dashboard", withPrincipal(nil), handler.GetDashboard)

	t.Run("returns aggregates", func(t *testing.T) {
		mockService.EXPECT().GetStats(gomock.Any(), orgID).Return(&service.DashboardResponse{
			TotalRevenue:   decimal.NewFromInt(500),
			ActiveContacts: 3,
			PipelineValue:  decimal.NewFromInt(300),
			PendingTasks:   2,
			RecentActivity: []service.ActivityItem{{Type: service.ActivityDeal, ID: uuid.New(), Title: "Acme License"}},
			RevenueByMonth: []service.RevenuePoint{{Month: "Oct", Period: "2026-10", Revenue: decimal.NewFromInt(500)}},
		}, nil)

		w := httpSuite.MakeRequest(http.MethodGet, "/api/v1/dashboard", nil)

		var stats service.DashboardResponse
		testutils.AssertJSONResponse(t, w, http.StatusOK, &stats)
		assert.True(t, decimal.NewFromInt(500).Equal(stats.TotalRevenue))
		assert.True(t, decimal.NewFromInt(300).Equal(stats.PipelineValue))
		assert.Equal(t, int64(3), stats.ActiveContacts)
		require.Len(t, stats.RecentActivity, 1)
		assert.Equal(t, service.ActivityDeal, stats.RecentActivity[0].Type)
		assert.False(t, stats.RevenuePlaceholder)
	})

	t.Run("store failure", func(t *testing.T) {
		mockService.EXPECT().GetStats(gomock.Any(), orgID).Return(nil, errors.New("failed to sum revenue: timeout"))

		w := httpSuite.MakeRequest(http.MethodGet, "/api/v1/dashboard", nil)

		testutils.AssertErrorResponse(t, w, http.StatusInternalServerError, "Failed to load dashboard")
	})

	t.Run("no principal", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodGet, "/anonymous/dashboard", nil)

		testutils.AssertErrorResponse(t, w, http.StatusUnauthorized, "Unauthorized")
	})
}
