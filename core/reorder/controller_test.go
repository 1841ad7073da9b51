package reorder_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/bembemg/lista-de-tarefas/core/reorder"
	"github.com/bembemg/lista-de-tarefas/sdk/logger"
)

// ============================================================================
// Stubbed Syncer Implementation
// ============================================================================

type StubSyncer struct {
	mu sync.Mutex

	server       []reorder.Task
	fetchCount   int
	reorderCount int
	lastPairs    []reorder.Reposition

	fetchErr   error
	reorderErr error
}

func NewStubSyncer(tasks ...reorder.Task) *StubSyncer {
	return &StubSyncer{server: tasks}
}

func (s *StubSyncer) Fetch(ctx context.Context) ([]reorder.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetchCount++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}

	out := make([]reorder.Task, len(s.server))
	copy(out, s.server)
	return out, nil
}

func (s *StubSyncer) Reorder(ctx context.Context, pairs []reorder.Reposition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reorderCount++
	s.lastPairs = append([]reorder.Reposition{}, pairs...)
	if s.reorderErr != nil {
		return s.reorderErr
	}

	// Apply the pairs the way the real backend would.
	byID := make(map[string]int64, len(pairs))
	for _, p := range pairs {
		byID[p.ID] = p.Position
	}
	updated := make([]reorder.Task, len(s.server))
	copy(updated, s.server)
	for i := range updated {
		if pos, ok := byID[updated[i].ID]; ok {
			updated[i].Position = pos
		}
	}
	for i := range updated {
		for j := i + 1; j < len(updated); j++ {
			if updated[j].Position < updated[i].Position {
				updated[i], updated[j] = updated[j], updated[i]
			}
		}
	}
	s.server = updated
	return nil
}

// ============================================================================

func threeTasks() []reorder.Task {
	return []reorder.Task{
		{ID: "A", Name: "first", Position: 1},
		{ID: "B", Name: "second", Position: 2},
		{ID: "C", Name: "third", Position: 3},
	}
}

func newTestController(t *testing.T, syncer reorder.Syncer, transitions *[]string) *reorder.Controller {
	t.Helper()

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	opts := []reorder.Option{}
	if transitions != nil {
		opts = append(opts, reorder.WithTransitionHook(func(from, to reorder.State) {
			*transitions = append(*transitions, from.String()+">"+to.String())
		}))
	}

	c := reorder.NewController(log, syncer, opts...)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("loading controller: %s", err)
	}
	return c
}

func ids(tasks []reorder.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func assertOrder(t *testing.T, tasks []reorder.Task, want ...string) {
	t.Helper()

	got := ids(tasks)
	if len(got) != len(want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestDropMovesAndSyncs(t *testing.T) {
	syncer := NewStubSyncer(threeTasks()...)
	var transitions []string
	c := newTestController(t, syncer, &transitions)

	if err := c.BeginDrag(1); err != nil {
		t.Fatalf("begin drag: %s", err)
	}
	if err := c.Drop(context.Background(), 0); err != nil {
		t.Fatalf("drop: %s", err)
	}

	assertOrder(t, c.Tasks(), "B", "A", "C")

	// Positions travel as absolute 1-based ranks for the whole list.
	wantPairs := []reorder.Reposition{{ID: "B", Position: 1}, {ID: "A", Position: 2}, {ID: "C", Position: 3}}
	if len(syncer.lastPairs) != len(wantPairs) {
		t.Fatalf("expected %d pairs, got %d", len(wantPairs), len(syncer.lastPairs))
	}
	for i, p := range wantPairs {
		if syncer.lastPairs[i] != p {
			t.Errorf("pair %d: expected %+v, got %+v", i, p, syncer.lastPairs[i])
		}
	}

	if c.State() != reorder.StateIdle {
		t.Errorf("expected idle after drop, got %s", c.State())
	}

	want := []string{
		"idle>dragging",
		"dragging>optimistic-applied",
		"optimistic-applied>syncing",
		"syncing>idle",
	}
	if len(transitions) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("expected transitions %v, got %v", want, transitions)
		}
	}
}

func TestDropSuccessSkipsRefetch(t *testing.T) {
	syncer := NewStubSyncer(threeTasks()...)
	c := newTestController(t, syncer, nil)
	fetchesAfterLoad := syncer.fetchCount

	if err := c.BeginDrag(2); err != nil {
		t.Fatalf("begin drag: %s", err)
	}
	if err := c.Drop(context.Background(), 0); err != nil {
		t.Fatalf("drop: %s", err)
	}

	if syncer.fetchCount != fetchesAfterLoad {
		t.Errorf("successful sync must not re-fetch, got %d extra fetches", syncer.fetchCount-fetchesAfterLoad)
	}
	assertOrder(t, c.Tasks(), "C", "A", "B")
}

func TestDropSameIndexIsLocalNoop(t *testing.T) {
	syncer := NewStubSyncer(threeTasks()...)
	var transitions []string
	c := newTestController(t, syncer, &transitions)
	fetchesAfterLoad := syncer.fetchCount
	transitions = transitions[:0]

	if err := c.BeginDrag(1); err != nil {
		t.Fatalf("begin drag: %s", err)
	}
	if err := c.Drop(context.Background(), 1); err != nil {
		t.Fatalf("drop: %s", err)
	}

	if syncer.reorderCount != 0 {
		t.Errorf("same-index drop must not hit the network, got %d reorder calls", syncer.reorderCount)
	}
	if syncer.fetchCount != fetchesAfterLoad {
		t.Errorf("same-index drop must not fetch, got %d extra", syncer.fetchCount-fetchesAfterLoad)
	}
	assertOrder(t, c.Tasks(), "A", "B", "C")

	// Only the gesture transitions happen, nothing optimistic.
	want := []string{"idle>dragging", "dragging>idle"}
	if len(transitions) != len(want) || transitions[0] != want[0] || transitions[1] != want[1] {
		t.Fatalf("expected transitions %v, got %v", want, transitions)
	}
}

func TestDropFailureReconcilesToServerOrder(t *testing.T) {
	syncer := NewStubSyncer(threeTasks()...)
	var transitions []string
	c := newTestController(t, syncer, &transitions)
	transitions = transitions[:0]

	syncer.reorderErr = errors.New("boom")

	if err := c.BeginDrag(0); err != nil {
		t.Fatalf("begin drag: %s", err)
	}
	err := c.Drop(context.Background(), 2)
	if err == nil {
		t.Fatal("expected the sync error to surface")
	}

	// The optimistic order is discarded; the visible list equals the last
	// successfully persisted server order.
	assertOrder(t, c.Tasks(), "A", "B", "C")
	if c.State() != reorder.StateIdle {
		t.Errorf("expected idle after reconciliation, got %s", c.State())
	}

	want := []string{
		"idle>dragging",
		"dragging>optimistic-applied",
		"optimistic-applied>syncing",
		"syncing>reconciling",
		"reconciling>idle",
	}
	if len(transitions) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("expected transitions %v, got %v", want, transitions)
		}
	}
}

func TestDropFailureWithFetchFailureRestoresConfirmed(t *testing.T) {
	syncer := NewStubSyncer(threeTasks()...)
	c := newTestController(t, syncer, nil)

	syncer.reorderErr = errors.New("write failed")
	syncer.fetchErr = errors.New("fetch failed")

	if err := c.BeginDrag(0); err != nil {
		t.Fatalf("begin drag: %s", err)
	}
	if err := c.Drop(context.Background(), 1); err == nil {
		t.Fatal("expected an error")
	}

	// Both calls failed: fall back to the last confirmed snapshot rather
	// than showing the rejected optimistic order.
	assertOrder(t, c.Tasks(), "A", "B", "C")
	if c.State() != reorder.StateIdle {
		t.Errorf("expected idle, got %s", c.State())
	}
}

func TestRepeatedDragsStayIdempotent(t *testing.T) {
	syncer := NewStubSyncer(threeTasks()...)
	c := newTestController(t, syncer, nil)
	ctx := context.Background()

	// Move B to the front twice: second submission recomputes the same
	// absolute ranks instead of accumulating deltas.
	if err := c.BeginDrag(1); err != nil {
		t.Fatalf("begin drag: %s", err)
	}
	if err := c.Drop(ctx, 0); err != nil {
		t.Fatalf("first drop: %s", err)
	}
	first := append([]reorder.Reposition{}, syncer.lastPairs...)

	if err := c.BeginDrag(0); err != nil {
		t.Fatalf("second begin drag: %s", err)
	}
	if err := c.Drop(ctx, 1); err != nil {
		t.Fatalf("second drop: %s", err)
	}
	if err := c.BeginDrag(1); err != nil {
		t.Fatalf("third begin drag: %s", err)
	}
	if err := c.Drop(ctx, 0); err != nil {
		t.Fatalf("third drop: %s", err)
	}

	for i, p := range syncer.lastPairs {
		if first[i] != p {
			t.Fatalf("resubmitted order produced different pairs: %+v vs %+v", first, syncer.lastPairs)
		}
	}
	assertOrder(t, c.Tasks(), "B", "A", "C")
}

func TestGestureGuards(t *testing.T) {
	syncer := NewStubSyncer(threeTasks()...)
	c := newTestController(t, syncer, nil)
	ctx := context.Background()

	if err := c.Drop(ctx, 0); !errors.Is(err, reorder.ErrNotDragging) {
		t.Errorf("expected ErrNotDragging, got %v", err)
	}
	if err := c.BeginDrag(7); !errors.Is(err, reorder.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}

	if err := c.BeginDrag(0); err != nil {
		t.Fatalf("begin drag: %s", err)
	}
	c.CancelDrag()
	if c.State() != reorder.StateIdle {
		t.Errorf("expected idle after cancel, got %s", c.State())
	}
	if syncer.reorderCount != 0 {
		t.Errorf("cancel must not hit the network")
	}
}
