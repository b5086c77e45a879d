package services

import (
	"context"
	"fmt"
	"time"

	"roomfinder/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// pruneTimeout bounds one cleanup run
const pruneTimeout = 2 * time.Minute

// CronService runs periodic store maintenance
type CronService struct {
	store    repositories.Store
	schedule string
	log      *zap.Logger
	cron     *cron.Cron
}

// NewCronService creates a cron service. An empty schedule disables it.
func NewCronService(store repositories.Store, schedule string, log *zap.Logger) *CronService {
	return &CronService{
		store:    store,
		schedule: schedule,
		log:      log,
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if s.schedule == "" {
		s.log.Info("maintenance cron disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		defer cancel()

		if _, err := s.PruneSavedListings(ctx); err != nil {
			s.log.Error("prune saved listings failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.log.Info("maintenance cron started", zap.String("schedule", s.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running job
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
}

// PruneSavedListings drops saved listing ids whose listing no longer exists.
// Saved ids are read before listings: an id saved later points at a listing
// that already existed, so only ids of deleted listings are removed.
func (s *CronService) PruneSavedListings(ctx context.Context) (int64, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return 0, err
	}
	saved := make(map[string]struct{})
	for _, u := range users {
		for _, id := range u.SavedListingIDs {
			saved[id] = struct{}{}
		}
	}
	if len(saved) == 0 {
		return 0, nil
	}

	listings, err := s.store.Listers().ListListings(ctx)
	if err != nil {
		return 0, err
	}
	for _, l := range listings {
		delete(saved, l.ID)
	}

	dangling := make([]string, 0, len(saved))
	for id := range saved {
		dangling = append(dangling, id)
	}
	if len(dangling) == 0 {
		return 0, nil
	}

	removed, err := s.store.Users().RemoveSavedListings(ctx, dangling)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("pruned dangling saved listings", zap.Int64("removed", removed))
	}
	return removed, nil
}
