package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cipco/cms-backend/internal/core/domain"
	redisdb "github.com/cipco/cms-backend/internal/infrastructure/db/redis"
)

type stubThrottle struct {
	blocked  bool
	checkErr error
	attempts map[string]int
	resets   map[string]int
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{attempts: map[string]int{}, resets: map[string]int{}}
}

func (s *stubThrottle) Acquire(_ context.Context, email string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	s.attempts[email]++
	return !s.blocked, nil
}

func (s *stubThrottle) Reset(_ context.Context, email string) error {
	s.resets[email]++
	return nil
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password, role string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, _ := repo.Save(context.Background(), &domain.User{
		Email: email, PasswordHash: string(hash), Name: "Test", Role: role, IsActive: active,
	})
	return u
}

func newTestAuthService(t *testing.T) (*AuthService, *stubUserRepo, *stubThrottle) {
	t.Helper()
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	return NewAuthService(repo, newTestTokenService(t, time.Hour), throttle, zerolog.Nop()), repo, throttle
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, throttle := newTestAuthService(t)
	seeded := seedUser(t, repo, "ana@cipco.io", "pass123", domain.RoleAdmin, true)

	res, err := svc.Login(context.Background(), "  Ana@CIPCO.io ", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}
	if res.User.ID != seeded.ID {
		t.Fatalf("unexpected user %q", res.User.ID)
	}
	if throttle.resets["ana@cipco.io"] != 1 {
		t.Fatalf("expected throttle reset on success")
	}
}

func TestAuthService_Login_FailuresLookIdentical(t *testing.T) {
	svc, repo, throttle := newTestAuthService(t)
	seedUser(t, repo, "ana@cipco.io", "pass123", domain.RoleAdmin, true)
	seedUser(t, repo, "old@cipco.io", "pass123", domain.RoleAdmin, false)

	tests := map[string][2]string{
		"unknown email":  {"ghost@cipco.io", "pass123"},
		"wrong password": {"ana@cipco.io", "nope"},
		"inactive user":  {"old@cipco.io", "pass123"},
		"empty password": {"ana@cipco.io", ""},
	}
	for name, creds := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), creds[0], creds[1])
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if res != nil {
				t.Fatalf("expected nil result")
			}
		})
	}

	if throttle.attempts["ghost@cipco.io"] != 1 {
		t.Fatalf("unknown emails must be counted too")
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	svc, repo, throttle := newTestAuthService(t)
	seedUser(t, repo, "ana@cipco.io", "pass123", domain.RoleAdmin, true)
	throttle.blocked = true

	if _, err := svc.Login(context.Background(), "ana@cipco.io", "pass123"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if repo.lookups != 0 {
		t.Fatalf("a throttled attempt must not reach the credential check")
	}
}

func TestAuthService_Login_ConcurrentBurstIsCapped(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newStubUserRepo()
	seedUser(t, repo, "ana@cipco.io", "pass123", domain.RoleAdmin, true)
	svc := NewAuthService(repo, newTestTokenService(t, time.Hour), redisdb.NewLoginThrottle(client, 5, time.Minute), zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Login(context.Background(), "ana@cipco.io", "wrong")
		}()
	}
	wg.Wait()

	if got := repo.lookupCount(); got > 5 {
		t.Fatalf("%d attempts reached the password check, limit is 5", got)
	}
	if _, err := svc.Login(context.Background(), "ana@cipco.io", "pass123"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts after the burst, got %v", err)
	}
}

func TestAuthService_Login_ThrottleOutageDegradesOpen(t *testing.T) {
	svc, repo, throttle := newTestAuthService(t)
	seedUser(t, repo, "ana@cipco.io", "pass123", domain.RoleAdmin, true)
	throttle.checkErr = errors.New("redis down")

	if _, err := svc.Login(context.Background(), "ana@cipco.io", "pass123"); err != nil {
		t.Fatalf("expected login to proceed, got %v", err)
	}
}

func TestAuthService_Login_NilThrottle(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "ana@cipco.io", "pass123", domain.RoleAdmin, true)
	svc := NewAuthService(repo, newTestTokenService(t, time.Hour), nil, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "ana@cipco.io", "pass123"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
}

func TestAuthService_Login_TokenCarriesRole(t *testing.T) {
	repo := newStubUserRepo()
	tokens := newTestTokenService(t, time.Hour)
	u := seedUser(t, repo, "root@cipco.io", "pass123", domain.RoleSuperAdmin, true)
	svc := NewAuthService(repo, tokens, nil, zerolog.Nop())

	res, err := svc.Login(context.Background(), "root@cipco.io", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	claims, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != u.ID || claims.Role != domain.RoleSuperAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAuthService_Profile(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	u := seedUser(t, repo, "ana@cipco.io", "pass123", domain.RoleAdmin, true)

	got, err := svc.Profile(context.Background(), u.ID)
	if err != nil || got.Email != "ana@cipco.io" {
		t.Fatalf("unexpected profile %+v, %v", got, err)
	}
	if _, err := svc.Profile(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
