package planview

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/meltforce/planview/internal/models"
	"github.com/meltforce/planview/internal/planclient"
)

// fakeSource is an in-memory planclient.Source. Detail calls for ids present
// in gates block until the gate channel is closed.
type fakeSource struct {
	mu          sync.Mutex
	plans       map[string][]models.WorkoutSummary
	details     map[string]*models.WorkoutDetail
	listErr     error
	detailErr   error
	gates       map[string]chan struct{}
	listCalls   []string
	detailCalls []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		plans:   map[string][]models.WorkoutSummary{},
		details: map[string]*models.WorkoutDetail{},
		gates:   map[string]chan struct{}{},
	}
}

func (f *fakeSource) ListWorkoutPlans(_ context.Context, trainerID string) ([]models.WorkoutSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, trainerID)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.plans[trainerID], nil
}

func (f *fakeSource) GetWorkoutPlan(_ context.Context, planID string) (*models.WorkoutDetail, error) {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, planID)
	gate := f.gates[planID]
	err := f.detailErr
	detail := f.details[planID]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return detail, nil
}

var _ planclient.Source = (*fakeSource)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSetTrainerLoadsOnce verifies one request per trainer id change.
func TestSetTrainerLoadsOnce(t *testing.T) {
	src := newFakeSource()
	src.plans["t1"] = samplePlans()
	src.plans["t2"] = []models.WorkoutSummary{{ID: "9"}}
	store := NewStore(src, discardLogger())
	ctx := context.Background()

	store.SetTrainer(ctx, "t1")
	store.SetTrainer(ctx, "t1")
	if got := len(src.listCalls); got != 1 {
		t.Fatalf("list calls = %d, want 1", got)
	}
	if len(store.State().Plans) != 2 {
		t.Errorf("plans = %+v", store.State().Plans)
	}

	store.SetTrainer(ctx, "t2")
	store.SetTrainer(ctx, "t1")
	if got := strings.Join(src.listCalls, ","); got != "t1,t2,t1" {
		t.Errorf("list calls = %s, want t1,t2,t1", got)
	}
	if len(store.State().Plans) != 2 {
		t.Errorf("plans after switching back = %+v", store.State().Plans)
	}
}

// TestSetTrainerEmpty verifies an empty trainer id makes no request.
func TestSetTrainerEmpty(t *testing.T) {
	src := newFakeSource()
	store := NewStore(src, discardLogger())
	store.SetTrainer(context.Background(), "")
	if len(src.listCalls) != 0 {
		t.Errorf("list calls = %v, want none", src.listCalls)
	}
}

// TestSetTrainerFailureLogsAndKeepsState verifies the fail-silent policy for
// the collection: error logged, prior plans kept, no retry.
func TestSetTrainerFailureLogsAndKeepsState(t *testing.T) {
	src := newFakeSource()
	src.plans["t1"] = samplePlans()
	var logs bytes.Buffer
	store := NewStore(src, slog.New(slog.NewTextHandler(&logs, nil)))
	ctx := context.Background()

	store.SetTrainer(ctx, "t1")

	src.listErr = &planclient.HTTPError{Path: "/trainers/t2/workoutplans", StatusCode: 503}
	err := store.SetTrainer(ctx, "t2")
	var httpErr *planclient.HTTPError
	if !errors.As(err, &httpErr) {
		t.Errorf("SetTrainer err = %v, want HTTPError", err)
	}

	st := store.State()
	if !equalIDs(st.Plans, "1", "2") {
		t.Errorf("plans = %+v, want prior collection", st.Plans)
	}
	if st.TrainerID != "t2" {
		t.Errorf("trainer = %q, want t2", st.TrainerID)
	}
	if len(src.listCalls) != 2 {
		t.Errorf("list calls = %d, want 2 (no retry)", len(src.listCalls))
	}
	if !strings.Contains(logs.String(), "fetching workout plans failed") || !strings.Contains(logs.String(), "kind=http") {
		t.Errorf("log output missing failure: %s", logs.String())
	}
}

// TestSelectPlanOpensOverlay verifies detail success populates the selection.
func TestSelectPlanOpensOverlay(t *testing.T) {
	src := newFakeSource()
	detail := sampleDetail()
	src.details["1"] = detail
	store := NewStore(src, discardLogger())

	if err := store.SelectPlan(context.Background(), "1"); err != nil {
		t.Fatalf("SelectPlan: %v", err)
	}

	st := store.State()
	if !st.OverlayOpen || st.Selected != detail {
		t.Fatalf("overlay=%v selected=%v", st.OverlayOpen, st.Selected)
	}
	if st.Grouped.Len() != 2 {
		t.Errorf("grouped days = %d, want 2", st.Grouped.Len())
	}
}

// TestSelectPlanFailure verifies a failed detail load leaves the overlay closed.
func TestSelectPlanFailure(t *testing.T) {
	src := newFakeSource()
	src.detailErr = &planclient.ParseError{Path: "/workoutplans/1", Err: errors.New("bad json")}
	var logs bytes.Buffer
	store := NewStore(src, slog.New(slog.NewTextHandler(&logs, nil)))

	if err := store.SelectPlan(context.Background(), "1"); err == nil {
		t.Error("SelectPlan err = nil, want parse error")
	}

	st := store.State()
	if st.OverlayOpen || st.Selected != nil {
		t.Errorf("overlay=%v selected=%v, want closed", st.OverlayOpen, st.Selected)
	}
	if !strings.Contains(logs.String(), "kind=parse") {
		t.Errorf("log output missing parse failure: %s", logs.String())
	}
}

// TestCloseOverlay verifies closing clears the selected detail.
func TestCloseOverlay(t *testing.T) {
	src := newFakeSource()
	src.details["1"] = sampleDetail()
	store := NewStore(src, discardLogger())

	store.SelectPlan(context.Background(), "1")
	store.CloseOverlay()

	st := store.State()
	if st.OverlayOpen || st.Selected != nil || !st.Grouped.IsEmpty() {
		t.Errorf("state after close = %+v", st)
	}
}

// TestSelectPlanLatestWins verifies that when an earlier request resolves
// after a later one, the later one's detail stays displayed.
func TestSelectPlanLatestWins(t *testing.T) {
	src := newFakeSource()
	src.details["1"] = sampleDetail()
	src.details["2"] = &models.WorkoutDetail{WorkoutSummary: models.WorkoutSummary{ID: "2", Name: "Peak"}}
	gate := make(chan struct{})
	src.gates["1"] = gate
	store := NewStore(src, discardLogger())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		store.SelectPlan(ctx, "1")
	}()

	// Wait until the first request is in flight.
	for {
		src.mu.Lock()
		n := len(src.detailCalls)
		src.mu.Unlock()
		if n == 1 {
			break
		}
	}

	store.SelectPlan(ctx, "2")
	close(gate)
	<-done

	st := store.State()
	if st.Selected == nil || st.Selected.ID != "2" {
		t.Errorf("selected = %+v, want plan 2", st.Selected)
	}
}

// TestSelectPlanNilDetail verifies a nil payload never opens the overlay.
func TestSelectPlanNilDetail(t *testing.T) {
	store := NewStore(newFakeSource(), discardLogger())
	if err := store.SelectPlan(context.Background(), "404"); err != nil {
		t.Fatalf("SelectPlan: %v", err)
	}
	if st := store.State(); st.OverlayOpen || st.Loading {
		t.Errorf("state = %+v, want closed and idle", st)
	}
}

func equalIDs(plans []models.WorkoutSummary, ids ...models.ID) bool {
	if len(plans) != len(ids) {
		return false
	}
	for i := range plans {
		if plans[i].ID != ids[i] {
			return false
		}
	}
	return true
}
