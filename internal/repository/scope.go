package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation
const uniqueViolation = "23505"

// ForOrganization scopes a query to one tenant
func ForOrganization(orgID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", orgID)
	}
}

// IsUniqueViolation reports whether err was raised by a unique index or constraint
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// updateScoped applies updates to the row matching both id and organization.
// A row owned by another organization is reported exactly like a missing one.
func updateScoped(ctx context.Context, db *gorm.DB, model interface{}, orgID, id uuid.UUID, updates map[string]interface{}) error {
	result := db.WithContext(ctx).Model(model).
		Where("id = ? AND organization_id = ?", id, orgID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// deleteScoped removes the row matching both id and organization
func deleteScoped(ctx context.Context, db *gorm.DB, model interface{}, orgID, id uuid.UUID) error {
	result := db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
