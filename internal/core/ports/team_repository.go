package ports

import (
	"context"

	"github.com/cipco/cms-backend/internal/core/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	FindByID(ctx context.Context, id string) (*domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.TeamMember, error)
}
