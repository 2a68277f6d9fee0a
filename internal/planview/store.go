package planview

import (
	"context"
	"log/slog"
	"sync"

	"github.com/meltforce/planview/internal/planclient"
)

// Store runs the collection and detail loaders against a plan source and
// applies their results through Reduce. Fetch failures are logged and leave
// the previous state in place. The error is also returned so that callers
// reporting to a user can surface it; interactive callers may ignore it.
type Store struct {
	src planclient.Source
	log *slog.Logger

	mu        sync.Mutex
	state     State
	lastToken uint64
}

// NewStore creates a Store in the initial state.
func NewStore(src planclient.Source, log *slog.Logger) *Store {
	return &Store{src: src, log: log}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) dispatch(ev Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, ev)
	return s.state
}

// SetTrainer selects a trainer and loads its plans. Each change of trainer id
// makes exactly one request; repeating the current id or passing an empty one
// makes none.
func (s *Store) SetTrainer(ctx context.Context, trainerID string) error {
	if trainerID == "" {
		s.log.Warn("collection load skipped: empty trainer id")
		return nil
	}

	s.mu.Lock()
	if trainerID == s.state.TrainerID {
		s.mu.Unlock()
		return nil
	}
	s.state = Reduce(s.state, TrainerSelected{TrainerID: trainerID})
	s.mu.Unlock()

	plans, err := s.src.ListWorkoutPlans(ctx, trainerID)
	if err != nil {
		s.log.Error("fetching workout plans failed",
			"trainer_id", trainerID,
			"kind", planclient.Kind(err),
			"error", err,
		)
		s.dispatch(CollectionLoadFailed{TrainerID: trainerID, Err: err})
		return err
	}

	s.dispatch(CollectionLoaded{TrainerID: trainerID, Plans: plans})
	s.log.Info("workout plans loaded", "trainer_id", trainerID, "plans", len(plans))
	return nil
}

// SelectPlan loads one plan's detail and opens the overlay on success. When
// calls overlap, only the most recently started one is applied; a superseded
// call returns nil.
func (s *Store) SelectPlan(ctx context.Context, planID string) error {
	s.mu.Lock()
	s.lastToken++
	token := s.lastToken
	s.state = Reduce(s.state, DetailLoadRequested{Token: token, PlanID: planID})
	s.mu.Unlock()

	detail, err := s.src.GetWorkoutPlan(ctx, planID)
	if err != nil {
		s.log.Error("fetching workout detail failed",
			"plan_id", planID,
			"kind", planclient.Kind(err),
			"error", err,
		)
		s.dispatch(DetailLoadFailed{Token: token, Err: err})
		return err
	}

	next := s.dispatch(DetailLoaded{Token: token, Detail: detail})
	if detail == nil || next.Selected != detail {
		s.log.Debug("stale workout detail dropped", "plan_id", planID, "token", token)
		return nil
	}
	s.log.Debug("fetched workout details", "plan_id", planID, "exercises", len(detail.Exercises))
	return nil
}

// CloseOverlay dismisses the overlay and clears the selected detail.
func (s *Store) CloseOverlay() {
	s.dispatch(OverlayClosed{})
}
