package api

import (
	"context"

	"sisexpo/pkg/models"
)

// StatisticsService covers the read-only statistics endpoints.
type StatisticsService struct {
	t *Transport
}

// Global returns the site-wide statistics snapshot.
func (s *StatisticsService) Global(ctx context.Context) Result[models.GlobalStatistics] {
	return Decode[models.GlobalStatistics](s.t.Get(ctx, "/statistics/global", nil))
}

// Registrations returns the registration breakdown, optionally scoped to an
// edition. A nil editionID omits the parameter (all editions).
func (s *StatisticsService) Registrations(ctx context.Context, editionID *string) Result[models.RegistrationStatistics] {
	q := NewQuery()
	q.String("editionId", editionID)
	return Decode[models.RegistrationStatistics](s.t.Get(ctx, "/statistics/inscriptions", q))
}

// Dashboard returns the admin dashboard aggregate.
func (s *StatisticsService) Dashboard(ctx context.Context) Result[models.DashboardStatistics] {
	return Decode[models.DashboardStatistics](s.t.Get(ctx, "/statistics/dashboard", nil))
}
