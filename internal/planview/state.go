// Package planview holds the client-side state of the trainer plan view: the
// plan collection, the selected plan detail and the overlay flag. State only
// changes through Reduce.
package planview

import (
	"github.com/meltforce/planview/internal/models"
)

// State is the complete view state. The zero value is the initial state:
// no trainer, empty collection, overlay closed.
type State struct {
	TrainerID string
	Plans     []models.WorkoutSummary

	// Selected and Grouped are non-nil/non-empty only while OverlayOpen.
	Selected    *models.WorkoutDetail
	Grouped     models.GroupedExercises
	OverlayOpen bool

	// DetailToken identifies the latest detail request; older results are dropped.
	DetailToken uint64
	Loading     bool
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// TrainerSelected switches the view to a trainer. The caller fetches its plans.
type TrainerSelected struct {
	TrainerID string
}

// CollectionLoaded carries the plans fetched for TrainerID.
type CollectionLoaded struct {
	TrainerID string
	Plans     []models.WorkoutSummary
}

// CollectionLoadFailed records a failed collection fetch. It leaves state as is.
type CollectionLoadFailed struct {
	TrainerID string
	Err       error
}

// DetailLoadRequested marks the start of a detail fetch with a fresh token.
type DetailLoadRequested struct {
	Token  uint64
	PlanID string
}

// DetailLoaded carries a fetched plan for the request identified by Token.
type DetailLoaded struct {
	Token  uint64
	Detail *models.WorkoutDetail
}

// DetailLoadFailed records a failed detail fetch.
type DetailLoadFailed struct {
	Token uint64
	Err   error
}

// OverlayClosed is an explicit dismissal of the detail overlay.
type OverlayClosed struct{}

func (TrainerSelected) isEvent()      {}
func (CollectionLoaded) isEvent()     {}
func (CollectionLoadFailed) isEvent() {}
func (DetailLoadRequested) isEvent()  {}
func (DetailLoaded) isEvent()         {}
func (DetailLoadFailed) isEvent()     {}
func (OverlayClosed) isEvent()        {}

// Reduce returns the state that follows s after ev. It never mutates s.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case TrainerSelected:
		if ev.TrainerID == s.TrainerID {
			return s
		}
		// The previous trainer's plans stay visible until the new ones arrive.
		s.TrainerID = ev.TrainerID
		return s

	case CollectionLoaded:
		if ev.TrainerID != s.TrainerID {
			return s
		}
		plans := ev.Plans
		if plans == nil {
			plans = []models.WorkoutSummary{}
		}
		s.Plans = plans
		return s

	case CollectionLoadFailed:
		return s

	case DetailLoadRequested:
		if ev.Token <= s.DetailToken {
			return s
		}
		s.DetailToken = ev.Token
		s.Loading = true
		return s

	case DetailLoaded:
		if ev.Token != s.DetailToken {
			return s
		}
		if ev.Detail == nil {
			s.Loading = false
			return s
		}
		s.Selected = ev.Detail
		s.Grouped = ev.Detail.Grouped()
		s.OverlayOpen = true
		s.Loading = false
		return s

	case DetailLoadFailed:
		if ev.Token != s.DetailToken {
			return s
		}
		s.Loading = false
		return s

	case OverlayClosed:
		s.OverlayOpen = false
		s.Selected = nil
		s.Grouped = models.GroupedExercises{}
		return s
	}
	return s
}
