// Package reorder provides the client-side orchestration for drag-and-drop
// reordering: it computes the new order after a completed gesture, applies it
// optimistically to the visible list, synchronizes it to the server, and
// reconciles failures by re-fetching the authoritative order.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bembemg/lista-de-tarefas/sdk/logger"
)

// State enumerates the controller's states.
type State int

const (
	// StateIdle means the visible list reflects the last known server state.
	StateIdle State = iota
	// StateDragging means a gesture is in progress; transitions out of it
	// are purely local.
	StateDragging
	// StateOptimisticApplied means the new order is visible but not yet
	// confirmed by the server.
	StateOptimisticApplied
	// StateSyncing means the reposition request is in flight. This is the
	// only state that waits on the network.
	StateSyncing
	// StateReconciling means a sync failed and the authoritative order is
	// being re-fetched.
	StateReconciling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateOptimisticApplied:
		return "optimistic-applied"
	case StateSyncing:
		return "syncing"
	case StateReconciling:
		return "reconciling"
	}
	return "unknown"
}

// Set of error values for controller misuse.
var (
	ErrNotDragging = errors.New("no drag in progress")
	ErrOutOfRange  = errors.New("index out of range")
)

// Task is the controller's view of a list entry. LimitDate stays in the wire
// text form; the controller only ever rearranges, never edits.
type Task struct {
	ID        string
	Name      string
	Cost      float64
	LimitDate string
	Position  int64
}

// Reposition pairs a task id with its new 1-based rank.
type Reposition struct {
	ID       string
	Position int64
}

// Syncer is the controller's view of the backend.
type Syncer interface {
	Fetch(ctx context.Context) ([]Task, error)
	Reorder(ctx context.Context, pairs []Reposition) error
}

// Controller holds the locally visible ordered task list and drives the
// reorder protocol over it. One gesture and at most one in-flight sync at a
// time; Drop blocks until the sync settles, matching the single-session model
// of the backend.
type Controller struct {
	mu     sync.Mutex
	log    *logger.Logger
	syncer Syncer

	state  State
	tasks  []Task
	source int

	// confirmed is the last order the server acknowledged. It is what the
	// list falls back to when both the sync and the reconciling fetch fail.
	confirmed []Task

	onTransition func(from, to State)
}

// Option configures a Controller.
type Option func(*Controller)

// WithTransitionHook registers a callback fired on every state change. The
// callback runs with the controller lock held; it must not call back in.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(c *Controller) {
		c.onTransition = fn
	}
}

// NewController creates a controller starting Idle with an empty list.
func NewController(log *logger.Logger, syncer Syncer, opts ...Option) *Controller {
	c := &Controller{
		log:    log,
		syncer: syncer,
		state:  StateIdle,
		source: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tasks returns a copy of the visible ordered list.
func (c *Controller) Tasks() []Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyTasks(c.tasks)
}

// Load fetches the authoritative order and replaces the visible list.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks, err := c.syncer.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	c.tasks = copyTasks(tasks)
	c.confirmed = copyTasks(tasks)
	c.setState(StateIdle)

	return nil
}

// BeginDrag records the source index of a gesture. Purely local.
func (c *Controller) BeginDrag(source int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return fmt.Errorf("begin drag in state %s", c.state)
	}
	if source < 0 || source >= len(c.tasks) {
		return fmt.Errorf("source %d: %w", source, ErrOutOfRange)
	}

	c.source = source
	c.setState(StateDragging)

	return nil
}

// CancelDrag abandons the gesture without touching the list.
func (c *Controller) CancelDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return
	}
	c.source = -1
	c.setState(StateIdle)
}

// Drop completes the gesture at the destination index. Dropping on the source
// index is a no-op with no network call. Otherwise the new order is applied
// optimistically, positions are recomputed as absolute 1-based ranks (never
// deltas, so resubmitting the same order is idempotent), and the full pair
// set is synced. On sync failure the optimistic order is discarded and the
// authoritative order re-fetched, so the visible list never disagrees with
// the server after Drop returns.
func (c *Controller) Drop(ctx context.Context, dest int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return ErrNotDragging
	}

	source := c.source
	c.source = -1

	if dest == source {
		c.setState(StateIdle)
		return nil
	}
	if dest < 0 || dest >= len(c.tasks) {
		c.setState(StateIdle)
		return fmt.Errorf("destination %d: %w", dest, ErrOutOfRange)
	}

	// Local splice: remove from the source index, insert at the destination.
	items := copyTasks(c.tasks)
	moved := items[source]
	items = append(items[:source], items[source+1:]...)
	items = append(items[:dest], append([]Task{moved}, items[dest:]...)...)

	pairs := make([]Reposition, len(items))
	for i := range items {
		items[i].Position = int64(i + 1)
		pairs[i] = Reposition{ID: items[i].ID, Position: items[i].Position}
	}

	c.tasks = items
	c.setState(StateOptimisticApplied)

	c.setState(StateSyncing)
	syncErr := c.syncer.Reorder(ctx, pairs)
	if syncErr == nil {
		c.confirmed = copyTasks(items)
		c.setState(StateIdle)
		return nil
	}

	c.log.ErrorContext(ctx, "reorder sync failed, reconciling", "err", syncErr)
	c.setState(StateReconciling)

	fresh, fetchErr := c.syncer.Fetch(ctx)
	if fetchErr != nil {
		// Keep the last confirmed snapshot rather than the rejected
		// optimistic order.
		c.log.ErrorContext(ctx, "reconcile fetch failed, restoring last confirmed order", "err", fetchErr)
		c.tasks = copyTasks(c.confirmed)
		c.setState(StateIdle)
		return fmt.Errorf("sync reorder: %w (reconcile fetch: %v)", syncErr, fetchErr)
	}

	c.tasks = copyTasks(fresh)
	c.confirmed = copyTasks(fresh)
	c.setState(StateIdle)

	return fmt.Errorf("sync reorder: %w", syncErr)
}

func (c *Controller) setState(to State) {
	from := c.state
	c.state = to
	if c.onTransition != nil && from != to {
		c.onTransition(from, to)
	}
}

func copyTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
