package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/quizdeck/triviacast/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Store is the read access the aggregator needs to rebuild a snapshot.
type Store interface {
	GetSession(ctx context.Context) (*models.Session, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error)
}

// Broadcaster pushes a rebuilt snapshot to connected stations.
type Broadcaster interface {
	BroadcastSnapshot(snap *GameSnapshot)
}

// Aggregator rebuilds the full game snapshot whenever the change feed says
// anything changed. Notifications arriving during a rebuild coalesce into a
// single follow-up rebuild, so a burst of events costs at most two refetches.
type Aggregator struct {
	store       Store
	broadcaster Broadcaster
	clock       clockwork.Clock

	trigger chan struct{}

	mu      sync.RWMutex
	current *GameSnapshot
}

func NewAggregator(store Store, broadcaster Broadcaster, clock clockwork.Clock) *Aggregator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Aggregator{
		store:       store,
		broadcaster: broadcaster,
		clock:       clock,
		trigger:     make(chan struct{}, 1),
	}
}

// Notify requests a resync. Safe from any goroutine; never blocks.
func (a *Aggregator) Notify() {
	select {
	case a.trigger <- struct{}{}:
	default:
	}
}

// Current returns the latest snapshot, nil before the first successful resync.
func (a *Aggregator) Current() *GameSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// Start performs an initial resync and then serves notifications until ctx
// is cancelled.
func (a *Aggregator) Start(ctx context.Context) {
	log.Info().Msg("aggregator started")
	a.Resync(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("aggregator shutting down")
			return
		case <-a.trigger:
			a.Resync(ctx)
		}
	}
}

// Resync refetches everything and broadcasts the rebuilt snapshot. A failed
// session read aborts the rebuild and keeps the previous snapshot; failures
// on the secondary reads degrade that part of the snapshot instead.
func (a *Aggregator) Resync(ctx context.Context) {
	sess, err := a.store.GetSession(ctx)
	if err != nil {
		log.Error().Err(err).Msg("resync aborted, failed to read session")
		return
	}

	snap := &GameSnapshot{
		Session:  *sess,
		SyncedAt: a.clock.Now(),
	}

	if snap.Teams, err = a.store.ListTeams(ctx); err != nil {
		log.Error().Err(err).Msg("resync degraded, failed to list teams")
		snap.Teams = nil
	}

	if snap.Categories, err = a.store.ListCategories(ctx); err != nil {
		log.Error().Err(err).Msg("resync degraded, failed to list categories")
		snap.Categories = nil
	}

	if sess.CurrentCategoryID != nil {
		snap.CurrentCategoryName = UnknownCategoryName
		for _, c := range snap.Categories {
			if c.ID == *sess.CurrentCategoryID {
				snap.CurrentCategoryName = c.Name
				break
			}
		}
	}

	if sess.CurrentQuestionID != nil {
		q, err := a.store.GetQuestion(ctx, *sess.CurrentQuestionID)
		if err != nil {
			log.Error().Err(err).Msg("resync degraded, failed to read current question")
		} else {
			snap.CurrentQuestion = q
			for _, c := range snap.Categories {
				if c.ID == q.CategoryID {
					snap.CurrentQuestionCategory = c.Name
					break
				}
			}
		}
	}

	a.mu.Lock()
	a.current = snap
	a.mu.Unlock()

	a.broadcaster.BroadcastSnapshot(snap)
	log.Debug().Time("synced_at", snap.SyncedAt).Msg("snapshot rebuilt")
}
