package state

import (
	"context"
	"sync"
	"time"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

// StatsBoard manages the statistics snapshots shown on dashboards, with an
// optional fixed-interval auto-refresh.
type StatsBoard struct {
	svc *api.StatisticsService

	global        *Caller[models.GlobalStatistics]
	registrations *Caller[models.RegistrationStatistics]

	mu        sync.Mutex
	editionID *string

	pollMu     sync.Mutex
	pollCancel context.CancelFunc
}

// NewStatsBoard creates an empty board. notifier may be nil.
func NewStatsBoard(svc *api.StatisticsService, notifier Notifier) *StatsBoard {
	return &StatsBoard{
		svc:           svc,
		global:        NewCaller[models.GlobalStatistics](notifier),
		registrations: NewCaller[models.RegistrationStatistics](notifier),
	}
}

// Load fetches both snapshots; editionID scopes the registration breakdown
// and may be nil for all editions.
func (b *StatsBoard) Load(ctx context.Context, editionID *string) {
	b.mu.Lock()
	b.editionID = editionID
	b.mu.Unlock()

	b.global.Call(func() api.Result[models.GlobalStatistics] {
		return b.svc.Global(ctx)
	}, CallOptions[models.GlobalStatistics]{Quiet: true})

	b.registrations.Call(func() api.Result[models.RegistrationStatistics] {
		return b.svc.Registrations(ctx, editionID)
	}, CallOptions[models.RegistrationStatistics]{Quiet: true})
}

// Refresh re-fetches both snapshots with the current edition scope.
func (b *StatsBoard) Refresh(ctx context.Context) {
	b.mu.Lock()
	editionID := b.editionID
	b.mu.Unlock()
	b.Load(ctx, editionID)
}

// AutoRefresh re-fetches at a fixed interval until StopAutoRefresh or Close.
// No backoff, no pause on inactive views.
func (b *StatsBoard) AutoRefresh(ctx context.Context, interval time.Duration) {
	b.pollMu.Lock()
	defer b.pollMu.Unlock()
	if b.pollCancel != nil {
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	b.pollCancel = cancel

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				b.Refresh(pollCtx)
			}
		}
	}()
}

// StopAutoRefresh cancels the refresh loop, if running.
func (b *StatsBoard) StopAutoRefresh() {
	b.pollMu.Lock()
	defer b.pollMu.Unlock()
	if b.pollCancel != nil {
		b.pollCancel()
		b.pollCancel = nil
	}
}

// Close stops auto-refresh and resets the board.
func (b *StatsBoard) Close() {
	b.StopAutoRefresh()
	b.global.Reset()
	b.registrations.Reset()
	b.mu.Lock()
	b.editionID = nil
	b.mu.Unlock()
}

// Global returns the latest global snapshot, nil before the first load.
func (b *StatsBoard) Global() *models.GlobalStatistics {
	return b.global.Data()
}

// Registrations returns the latest registration breakdown, nil before the
// first load.
func (b *StatsBoard) Registrations() *models.RegistrationStatistics {
	return b.registrations.Data()
}

// Loading reports whether either snapshot fetch is in flight.
func (b *StatsBoard) Loading() bool {
	return b.global.Loading() || b.registrations.Loading()
}

// Err returns the first error of the two snapshot fetches, if any.
func (b *StatsBoard) Err() (msg, code string) {
	if m, c := b.global.Err(); m != "" {
		return m, c
	}
	return b.registrations.Err()
}
