package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/store"
)

// HousekeepingService periodically deletes expired sessions and abandoned
// auth requests.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults interval to one hour when not positive.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Stop must be called to end it.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one pass. Each deletion is independent.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := time.Now()

	requests, err := s.Store.AuthRequests().DeleteExpiredAuthRequests(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired auth requests", "error", err)
	}

	sessions, err := s.Store.Sessions().DeleteExpiredSessions(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
	}

	s.Logger.Info("housekeeping cleanup completed",
		"auth_requests_deleted", requests,
		"sessions_deleted", sessions,
	)
}
