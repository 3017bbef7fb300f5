package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"crm-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRecentActivityLimit = 5
	recentPerType              = 3
	defaultRevenueMonths       = 6
)

// ActivityType tells which entity a recent activity item came from
type ActivityType string

const (
	ActivityDeal ActivityType = "deal"
	ActivityTask ActivityType = "task"
)

// ActivityItem is one entry of the recent activity feed
type ActivityItem struct {
	Type      ActivityType `json:"type"`
	ID        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	CreatedAt time.Time    `json:"created_at"`
}

// RevenuePoint is the Closed Won revenue of one calendar month
type RevenuePoint struct {
	Month   string          `json:"month"`
	Period  string          `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardResponse represents the dashboard of an organization
type DashboardResponse struct {
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	ActiveContacts     int64           `json:"active_contacts"`
	PipelineValue      decimal.Decimal `json:"pipeline_value"`
	PendingTasks       int64           `json:"pending_tasks"`
	RecentActivity     []ActivityItem  `json:"recent_activity"`
	RevenueByMonth     []RevenuePoint  `json:"revenue_by_month"`
	RevenuePlaceholder bool            `json:"revenue_placeholder"`
}

// DashboardService computes the aggregates of the dashboard
type DashboardService struct {
	repo repository.DashboardRepositoryInterface
	now  func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo repository.DashboardRepositoryInterface) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now}
}

var _ DashboardServiceInterface = (*DashboardService)(nil)

// TotalRevenue is the sum of all Closed Won deals
func (s *DashboardService) TotalRevenue(ctx context.Context, orgID uuid.UUID) (decimal.Decimal, error) {
	total, err := s.repo.TotalRevenue(ctx, orgID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute total revenue: %w", err)
	}
	return total, nil
}

// ActiveContacts counts every contact of the organization
func (s *DashboardService) ActiveContacts(ctx context.Context, orgID uuid.UUID) (int64, error) {
	count, err := s.repo.CountContacts(ctx, orgID)
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}

// PipelineValue is the sum of all deals still open
func (s *DashboardService) PipelineValue(ctx context.Context, orgID uuid.UUID) (decimal.Decimal, error) {
	total, err := s.repo.PipelineValue(ctx, orgID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute pipeline value: %w", err)
	}
	return total, nil
}

// PendingTasks counts the tasks not yet completed
func (s *DashboardService) PendingTasks(ctx context.Context, orgID uuid.UUID) (int64, error) {
	count, err := s.repo.CountPendingTasks(ctx, orgID)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending tasks: %w", err)
	}
	return count, nil
}

// RecentActivity merges the three newest deals and the three newest tasks, newest first,
// and keeps at most limit items. A non-positive limit means the default of five.
func (s *DashboardService) RecentActivity(ctx context.Context, orgID uuid.UUID, limit int) ([]ActivityItem, error) {
	if limit <= 0 {
		limit = defaultRecentActivityLimit
	}

	deals, err := s.repo.RecentDeals(ctx, orgID, recentPerType)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent deals: %w", err)
	}
	tasks, err := s.repo.RecentTasks(ctx, orgID, recentPerType)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent tasks: %w", err)
	}

	items := make([]ActivityItem, 0, len(deals)+len(tasks))
	for _, d := range deals {
		items = append(items, ActivityItem{Type: ActivityDeal, ID: d.ID, Title: d.Name, CreatedAt: d.CreatedAt})
	}
	for _, t := range tasks {
		items = append(items, ActivityItem{Type: ActivityTask, ID: t.ID, Title: t.Title, CreatedAt: t.CreatedAt})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// RevenueByMonth returns Closed Won revenue per calendar month for the current month and
// the months-1 before it, oldest first. Months without revenue are left out.
func (s *DashboardService) RevenueByMonth(ctx context.Context, orgID uuid.UUID, months int) ([]RevenuePoint, error) {
	if months <= 0 {
		months = defaultRevenueMonths
	}

	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	series, err := s.repo.RevenueByMonth(ctx, orgID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue by month: %w", err)
	}

	points := make([]RevenuePoint, len(series))
	for i, m := range series {
		points[i] = RevenuePoint{
			Month:   m.Month.Format("Jan"),
			Period:  m.Month.Format("2006-01"),
			Revenue: m.Revenue,
		}
	}
	return points, nil
}

// GetStats assembles the dashboard. The queries are independent and run concurrently.
func (s *DashboardService) GetStats(ctx context.Context, orgID uuid.UUID) (*DashboardResponse, error) {
	resp := &DashboardResponse{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.TotalRevenue, err = s.TotalRevenue(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		resp.ActiveContacts, err = s.ActiveContacts(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		resp.PipelineValue, err = s.PipelineValue(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		resp.PendingTasks, err = s.PendingTasks(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		resp.RecentActivity, err = s.RecentActivity(gctx, orgID, defaultRecentActivityLimit)
		return err
	})
	g.Go(func() (err error) {
		resp.RevenueByMonth, err = s.RevenueByMonth(gctx, orgID, defaultRevenueMonths)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(resp.RevenueByMonth) == 0 {
		resp.RevenueByMonth = placeholderRevenue(s.now().UTC().Year())
		resp.RevenuePlaceholder = true
	}
	return resp, nil
}

// placeholderRevenue is the zero series the chart shows before any deal is won
func placeholderRevenue(year int) []RevenuePoint {
	points := make([]RevenuePoint, 0, 6)
	for m := time.January; m <= time.June; m++ {
		t := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		points = append(points, RevenuePoint{
			Month:   t.Format("Jan"),
			Period:  t.Format("2006-01"),
			Revenue: decimal.Zero,
		})
	}
	return points
}
