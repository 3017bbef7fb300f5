package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/repository"
	"crm-backend/internal/revalidate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// notify signals changed pages. A failed signal never fails the write that caused it.
func notify(ctx context.Context, n revalidate.Notifier, orgID uuid.UUID, paths ...string) {
	if n == nil {
		return
	}
	if err := n.Changed(ctx, orgID, paths...); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("paths", paths).Warn("failed to signal revalidation")
	}
}

// notFound maps a missing row to the entity's NotFound error and wraps anything else
func notFound(err error, entityErr error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entityErr
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// references checks that linked records belong to the same organization as the row pointing at them
type references struct {
	companies repository.CompanyRepositoryInterface
	contacts  repository.ContactRepositoryInterface
}

func (r references) company(ctx context.Context, orgID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := r.companies.GetByID(ctx, orgID, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("validation failed: %w", apperrors.NewValidationError("company_id", "company does not exist in this organization"))
		}
		return fmt.Errorf("failed to check company: %w", err)
	}
	return nil
}

func (r references) contact(ctx context.Context, orgID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := r.contacts.GetByID(ctx, orgID, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("validation failed: %w", apperrors.NewValidationError("contact_id", "contact does not exist in this organization"))
		}
		return fmt.Errorf("failed to check contact: %w", err)
	}
	return nil
}
