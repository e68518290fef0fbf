package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

type stubTeamRepo struct {
	members map[string]*domain.TeamMember
}

func (r *stubTeamRepo) Create(_ context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	cp := *m
	cp.ID = "t1"
	r.members[cp.ID] = &cp
	return &cp, nil
}

func (r *stubTeamRepo) FindByID(_ context.Context, id string) (*domain.TeamMember, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, domain.ErrTeamMemberNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubTeamRepo) Update(_ context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	cp := *m
	r.members[m.ID] = &cp
	return &cp, nil
}

func (r *stubTeamRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.members[id]; !ok {
		return domain.ErrTeamMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *stubTeamRepo) List(context.Context) ([]*domain.TeamMember, error) { return nil, nil }

func TestTeamService_CreateAndUpdate(t *testing.T) {
	repo := &stubTeamRepo{members: map[string]*domain.TeamMember{}}
	up := &stubUploader{url: "https://img/portrait.png"}
	svc := NewTeamService(repo, up, zerolog.Nop())
	ctx := context.Background()

	m, err := svc.Create(ctx, ports.CreateTeamMemberInput{
		Name: "Dr. Rao", Designation: "Chief Scientist", Image: &domain.Image{Data: pngBytes},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Image != up.url {
		t.Fatalf("image not stored: %q", m.Image)
	}

	up.url = "https://img/new.png"
	updated, err := svc.Update(ctx, m.ID, ports.UpdateTeamMemberInput{Designation: strPtr("Director")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Designation != "Director" || updated.Name != "Dr. Rao" || updated.Image != "https://img/portrait.png" {
		t.Fatalf("unexpected member: %+v", updated)
	}
}

func TestTeamService_Validation(t *testing.T) {
	svc := NewTeamService(&stubTeamRepo{members: map[string]*domain.TeamMember{}}, &stubUploader{}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateTeamMemberInput{Name: "Only name"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrTeamMemberNotFound) {
		t.Fatalf("expected ErrTeamMemberNotFound, got %v", err)
	}
}
