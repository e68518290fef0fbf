package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

type TeamService struct {
	repo     ports.TeamRepository
	uploader ports.ImageUploader
	log      zerolog.Logger
}

func NewTeamService(repo ports.TeamRepository, uploader ports.ImageUploader, log zerolog.Logger) *TeamService {
	return &TeamService{repo: repo, uploader: uploader, log: log}
}

func (s *TeamService) List(ctx context.Context) ([]*domain.TeamMember, error) {
	return s.repo.List(ctx)
}

func (s *TeamService) Create(ctx context.Context, in ports.CreateTeamMemberInput) (*domain.TeamMember, error) {
	m := &domain.TeamMember{
		Name:        strings.TrimSpace(in.Name),
		Designation: strings.TrimSpace(in.Designation),
	}
	if err := validateTeamMember(m); err != nil {
		return nil, err
	}

	url, err := uploadImage(ctx, s.uploader, in.Image)
	if err != nil {
		s.log.Error().Err(err).Msg("team image upload failed")
		return nil, err
	}
	m.Image = url

	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	return s.repo.Create(ctx, m)
}

func (s *TeamService) Update(ctx context.Context, id string, in ports.UpdateTeamMemberInput) (*domain.TeamMember, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Designation != nil {
		m.Designation = strings.TrimSpace(*in.Designation)
	}
	if err := validateTeamMember(m); err != nil {
		return nil, err
	}

	if in.Image != nil {
		url, err := uploadImage(ctx, s.uploader, in.Image)
		if err != nil {
			s.log.Error().Err(err).Str("member_id", id).Msg("team image upload failed")
			return nil, err
		}
		if url != "" {
			m.Image = url
		}
	}

	m.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, m)
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateTeamMember(m *domain.TeamMember) error {
	if m.Name == "" || m.Designation == "" {
		return fmt.Errorf("%w: name and designation are required", domain.ErrInvalidInput)
	}
	return nil
}
