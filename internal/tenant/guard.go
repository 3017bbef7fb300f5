package tenant

import (
	"context"

	apperrors "crm-backend/internal/errors"

	"github.com/google/uuid"
)

// Principal is the authenticated caller of a request
type Principal struct {
	UserID         uuid.UUID
	Email          string
	OrganizationID *uuid.UUID
}

// ResolveOrganization returns the organization every data operation of the request must be scoped to.
// It fails with ErrUnauthorized when there is no principal or it is not bound to an organization.
func ResolveOrganization(p *Principal) (uuid.UUID, error) {
	if p == nil || p.OrganizationID == nil || *p.OrganizationID == uuid.Nil {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return *p.OrganizationID, nil
}

type principalKey struct{}

// NewContext returns a copy of ctx carrying the principal
func NewContext(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext extracts the principal stored by NewContext
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}
