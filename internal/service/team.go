package service

import (
	"context"
	"fmt"
	"time"

	"crm-backend/internal/repository"
	"crm-backend/internal/revalidate"
	"crm-backend/internal/security"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultInvitationTTL is how long an invitation can be accepted
const DefaultInvitationTTL = 7 * 24 * time.Hour

// TeamService handles organization membership and invitations
type TeamService struct {
	userRepo       repository.UserRepositoryInterface
	invitationRepo repository.InvitationRepositoryInterface
	dispatcher     InvitationDispatcher
	hasher         security.PasswordHasher
	notifier       revalidate.Notifier
	validator      *validator.Validate
	invitationTTL  time.Duration
	now            func() time.Time
	newToken       func() (string, error)
}

// NewTeamService creates a new team service. A zero ttl means DefaultInvitationTTL.
func NewTeamService(
	userRepo repository.UserRepositoryInterface,
	invitationRepo repository.InvitationRepositoryInterface,
	dispatcher InvitationDispatcher,
	hasher security.PasswordHasher,
	notifier revalidate.Notifier,
	validator *validator.Validate,
	invitationTTL time.Duration,
) *TeamService {
	if invitationTTL <= 0 {
		invitationTTL = DefaultInvitationTTL
	}
	return &TeamService{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		dispatcher:     dispatcher,
		hasher:         hasher,
		notifier:       notifier,
		validator:      validator,
		invitationTTL:  invitationTTL,
		now:            time.Now,
		newToken: func() (string, error) {
			return security.GenerateToken(security.InvitationTokenBytes)
		},
	}
}

var _ TeamServiceInterface = (*TeamService)(nil)

// MemberResponse is a user of the organization
type MemberResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt string    `json:"created_at"`
}

// TeamResponse lists the members and the open invitations of an organization
type TeamResponse struct {
	Members     []MemberResponse     `json:"members"`
	Invitations []InvitationResponse `json:"invitations"`
}

// Members retrieves the users and invitations of the organization, newest first
func (s *TeamService) Members(ctx context.Context, orgID uuid.UUID) (*TeamResponse, error) {
	users, err := s.userRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	invitations, err := s.invitationRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	resp := &TeamResponse{
		Members:     make([]MemberResponse, len(users)),
		Invitations: make([]InvitationResponse, len(invitations)),
	}
	for i, u := range users {
		resp.Members[i] = MemberResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: formatTime(u.CreatedAt),
		}
	}
	for i := range invitations {
		resp.Invitations[i] = *toInvitationResponse(&invitations[i])
	}
	return resp, nil
}
