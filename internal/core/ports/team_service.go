package ports

import (
	"context"

	"github.com/cipco/cms-backend/internal/core/domain"
)

type CreateTeamMemberInput struct {
	Name        string
	Designation string
	Image       *domain.Image
}

type UpdateTeamMemberInput struct {
	Name        *string
	Designation *string
	Image       *domain.Image
}

type TeamService interface {
	List(ctx context.Context) ([]*domain.TeamMember, error)
	Create(ctx context.Context, in CreateTeamMemberInput) (*domain.TeamMember, error)
	Update(ctx context.Context, id string, in UpdateTeamMemberInput) (*domain.TeamMember, error)
	Delete(ctx context.Context, id string) error
}
