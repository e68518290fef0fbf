package ports

import "context"

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	Blogs    int64
	Contacts int64
	Users    int64
}

type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}
