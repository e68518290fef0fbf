package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cipco/cms-backend/internal/core/ports"
)

// Counter is anything that can count its documents.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type StatsService struct {
	blogs    Counter
	contacts Counter
	users    Counter
}

func NewStatsService(blogs, contacts, users Counter) *StatsService {
	return &StatsService{blogs: blogs, contacts: contacts, users: users}
}

// Dashboard counts blogs, contacts and users concurrently.
func (s *StatsService) Dashboard(ctx context.Context) (*ports.DashboardStats, error) {
	var out ports.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { out.Blogs, err = s.blogs.Count(ctx); return })
	g.Go(func() (err error) { out.Contacts, err = s.contacts.Count(ctx); return })
	g.Go(func() (err error) { out.Users, err = s.users.Count(ctx); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &out, nil
}
