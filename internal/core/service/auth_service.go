package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
	"github.com/cipco/cms-backend/internal/pkg/metrics"
)

// LoginThrottle abstracts the per-email attempt counter (Redis).
type LoginThrottle interface {
	// Acquire counts one attempt and reports whether it is within the limit.
	Acquire(ctx context.Context, email string) (bool, error)
	Reset(ctx context.Context, email string) error
}

// dummyHash is compared against when the email is unknown so a miss costs the
// same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// AuthService implements login and profile lookup.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	throttle LoginThrottle
	log      zerolog.Logger
}

// NewAuthService wires the login flow. throttle may be nil.
func NewAuthService(users ports.UserRepository, tokens ports.TokenService, throttle LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		ok, err := s.throttle.Acquire(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if !ok {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("login: %w", err)
	}

	if user == nil || !user.IsActive {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, s.failed(email)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.failed(email)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")

	return &ports.LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// failed logs a rejected attempt and returns the uniform credentials error.
// The attempt was already counted by the throttle.
func (s *AuthService) failed(email string) error {
	metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
	s.log.Info().Str("email", email).Msg("login rejected")
	return domain.ErrInvalidCredentials
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
