package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

type ContactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, log: log}
}

func (s *ContactService) Submit(ctx context.Context, in ports.SubmitContactInput) (*domain.Contact, error) {
	now := time.Now().UTC()
	c := &domain.Contact{
		Name:      strings.TrimSpace(in.Name),
		Email:     domain.NormalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Company:   strings.TrimSpace(in.Company),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		Status:    domain.ContactStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateContact(c); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("contact_id", created.ID).Msg("contact inquiry received")
	return created, nil
}

func (s *ContactService) List(ctx context.Context) ([]*domain.Contact, error) {
	return s.repo.List(ctx)
}

func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ContactService) Update(ctx context.Context, id string, in ports.UpdateContactInput) (*domain.Contact, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.Name, in.Name)
	set(&c.Phone, in.Phone)
	set(&c.Company, in.Company)
	set(&c.Subject, in.Subject)
	set(&c.Message, in.Message)
	if in.Email != nil {
		c.Email = domain.NormalizeEmail(*in.Email)
	}
	if in.Status != nil {
		c.Status = domain.ContactStatus(*in.Status)
	}
	if err := validateContact(c); err != nil {
		return nil, err
	}

	c.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, c)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateContact(c *domain.Contact) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	case c.Subject == "":
		return fmt.Errorf("%w: subject is required", domain.ErrInvalidInput)
	case c.Message == "":
		return fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	case !c.Status.Valid():
		return fmt.Errorf("%w: status must be one of: new, read, replied", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("%w: email must be a valid email", domain.ErrInvalidInput)
	}
	return nil
}
