// Package autosave periodically flushes the engine state to a StateStore.
package autosave

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/PabloGalante/fillyourcup/internal/domain"
	"github.com/PabloGalante/fillyourcup/internal/observability"
)

// Source is the part of cup.Engine the scheduler reads from.
type Source interface {
	State() domain.State
	Version() uint64
}

// Scheduler wraps a cron job that saves the state whenever it changed.
type Scheduler struct {
	cron   *cron.Cron
	store  domain.StateStore
	source Source
	userID domain.UserID

	mu        sync.Mutex
	saved     uint64
	hasSaved  bool
	jobCtx    context.Context
	cancelJob context.CancelFunc
}

func NewScheduler(store domain.StateStore, source Source, userID domain.UserID, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		store:     store,
		source:    source,
		userID:    userID,
		jobCtx:    ctx,
		cancelJob: cancel,
	}
}

// Every registers the periodic save and starts the scheduler. cron works in
// whole seconds, so interval must be a positive multiple of a second.
func (s *Scheduler) Every(interval time.Duration) (cron.EntryID, error) {
	if interval < time.Second || interval%time.Second != 0 {
		return 0, fmt.Errorf("autosave interval must be a whole number of seconds, got %s", interval)
	}

	id := s.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		if err := s.SaveNow(s.jobCtx); err != nil {
			observability.Logger().Error("autosave failed", "user_id", s.userID, "error", err)
		}
	}))
	s.cron.Start()
	return id, nil
}

// SaveNow writes the current state unless it was already saved at this version.
func (s *Scheduler) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := s.source.Version()
	if s.hasSaved && version == s.saved {
		return nil
	}

	st := s.source.State()
	if err := s.store.SaveState(ctx, s.userID, &st); err != nil {
		return err
	}
	s.saved = version
	s.hasSaved = true

	observability.LoggerFromContext(ctx).Debug("state saved", "user_id", s.userID, "version", version)
	return nil
}

// Stop waits for a running job, then saves one last time.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.cancelJob()
		return ctx.Err()
	}
	s.cancelJob()
	return s.SaveNow(ctx)
}
