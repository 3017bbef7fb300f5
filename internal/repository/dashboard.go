package repository

import (
	"context"
	"time"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository runs the aggregate queries of the dashboard. It never writes.
type DashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

var _ DashboardRepositoryInterface = (*DashboardRepository)(nil)

// TotalRevenue sums the amount of Closed Won deals; zero when there are none
func (r *DashboardRepository) TotalRevenue(ctx context.Context, orgID uuid.UUID) (decimal.Decimal, error) {
	return r.sumAmount(ctx, orgID, "stage = ?", models.DealStageClosedWon)
}

// PipelineValue sums the amount of deals that are neither won nor lost
func (r *DashboardRepository) PipelineValue(ctx context.Context, orgID uuid.UUID) (decimal.Decimal, error) {
	return r.sumAmount(ctx, orgID, "stage NOT IN ?", []models.DealStage{models.DealStageClosedWon, models.DealStageClosedLost})
}

func (r *DashboardRepository) sumAmount(ctx context.Context, orgID uuid.UUID, query string, args ...interface{}) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Deal{}).
		Scopes(ForOrganization(orgID)).
		Where(query, args...).
		Select("COALESCE(SUM(amount), 0)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CountContacts counts every contact of the organization
func (r *DashboardRepository) CountContacts(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Contact{}).Scopes(ForOrganization(orgID)).Count(&count).Error
	return count, err
}

// CountPendingTasks counts the organization's tasks still Pending
func (r *DashboardRepository) CountPendingTasks(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(ForOrganization(orgID)).
		Where("status = ?", models.TaskStatusPending).
		Count(&count).Error
	return count, err
}

// RecentDeals returns the newest deals
func (r *DashboardRepository) RecentDeals(ctx context.Context, orgID uuid.UUID, limit int) ([]models.Deal, error) {
	var deals []models.Deal
	err := r.db.WithContext(ctx).
		Scopes(ForOrganization(orgID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}

// RecentTasks returns the newest tasks
func (r *DashboardRepository) RecentTasks(ctx context.Context, orgID uuid.UUID, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Scopes(ForOrganization(orgID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// RevenueByMonth sums Closed Won amounts per calendar month of close_date, oldest month first.
// Months without revenue are absent from the result.
func (r *DashboardRepository) RevenueByMonth(ctx context.Context, orgID uuid.UUID, since time.Time) ([]MonthlyRevenue, error) {
	rows, err := r.db.WithContext(ctx).
		Model(&models.Deal{}).
		Scopes(ForOrganization(orgID)).
		Select("date_trunc('month', close_date) AS month, COALESCE(SUM(amount), 0) AS revenue").
		Where("stage = ? AND close_date IS NOT NULL AND close_date >= ?", models.DealStageClosedWon, since).
		Group("date_trunc('month', close_date)").
		Order("month ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []MonthlyRevenue
	for rows.Next() {
		var point MonthlyRevenue
		if err := rows.Scan(&point.Month, &point.Revenue); err != nil {
			return nil, err
		}
		series = append(series, point)
	}
	return series, rows.Err()
}
