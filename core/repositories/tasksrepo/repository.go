// Package tasksrepo provides business access to the task list.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bembemg/lista-de-tarefas/sdk/logger"
	"github.com/bembemg/lista-de-tarefas/sdk/validation"
)

// Set of error values for CRUD operations on the task resource.
var (
	ErrNotFound   = errors.New("task not found")
	ErrUniqueName = errors.New("task name already exists")
)

// ValidationError reports input that was rejected before touching storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Storer defines the data storage contract for tasks.
//
// List returns every task ordered by position ascending. Create assigns a
// fresh id and position max+1 (1 when the table is empty). Update and Delete
// return ErrNotFound for an unknown id. BulkReposition applies every pair
// atomically: either all positions change or none do, and a concurrent List
// never observes a half-applied batch.
type Storer interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, nt NewTask) (Task, error)
	Update(ctx context.Context, taskID string, ut UpdateTask) (Task, error)
	Delete(ctx context.Context, taskID string) error
	BulkReposition(ctx context.Context, pairs []Reposition) error
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Task repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns all tasks ordered by position ascending.
func (r *Repository) List(ctx context.Context) ([]Task, error) {
	records, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository list: %w", err)
	}

	return records, nil
}

// Create validates the input and appends a new task to the end of the list.
// Names are unique case-insensitively across the list; this is enforced here
// rather than in the store so every caller gets the same product behavior.
func (r *Repository) Create(ctx context.Context, nt NewTask) (Task, error) {
	nt.Name = strings.TrimSpace(nt.Name)

	if nt.Name == "" {
		return Task{}, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !validation.ValidCost(nt.Cost) {
		return Task{}, ValidationError{Field: "cost", Reason: "must be a non-negative number"}
	}
	if nt.LimitDate.IsZero() {
		return Task{}, ValidationError{Field: "limit_date", Reason: "must be a valid date"}
	}

	if err := r.checkUniqueName(ctx, nt.Name, ""); err != nil {
		return Task{}, err
	}

	task, err := r.storer.Create(ctx, nt)
	if err != nil {
		return Task{}, fmt.Errorf("task repository create: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", task.TaskID, "position", task.Position)

	return task, nil
}

// Update modifies name, cost and limit date of an existing task. Position is
// never touched through this path.
func (r *Repository) Update(ctx context.Context, taskID string, ut UpdateTask) (Task, error) {
	if ut.Name != nil {
		trimmed := strings.TrimSpace(*ut.Name)
		if trimmed == "" {
			return Task{}, ValidationError{Field: "name", Reason: "must not be empty"}
		}
		ut.Name = &trimmed

		if err := r.checkUniqueName(ctx, trimmed, taskID); err != nil {
			return Task{}, err
		}
	}
	if ut.Cost != nil && !validation.ValidCost(*ut.Cost) {
		return Task{}, ValidationError{Field: "cost", Reason: "must be a non-negative number"}
	}
	if ut.LimitDate != nil && ut.LimitDate.IsZero() {
		return Task{}, ValidationError{Field: "limit_date", Reason: "must be a valid date"}
	}

	task, err := r.storer.Update(ctx, taskID, ut)
	if err != nil {
		return Task{}, fmt.Errorf("task repository update [%s]: %w", taskID, err)
	}

	r.log.InfoContext(ctx, "task updated", "task_id", taskID)

	return task, nil
}

// Delete removes a task. Deleting an unknown id returns ErrNotFound; the
// operation is deliberately not idempotent so callers can distinguish a stale
// id from a successful removal. Remaining positions are not renumbered.
func (r *Repository) Delete(ctx context.Context, taskID string) error {
	if err := r.storer.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("task repository delete [%s]: %w", taskID, err)
	}

	r.log.InfoContext(ctx, "task deleted", "task_id", taskID)

	return nil
}

// Reorder validates and applies a bulk reposition. Every pair must reference
// an existing task; rejecting unknown ids here keeps them a validation
// failure instead of a storage one, so the store's all-or-nothing transaction
// only backstops genuine write failures.
func (r *Repository) Reorder(ctx context.Context, pairs []Reposition) error {
	if len(pairs) == 0 {
		return ValidationError{Field: "tasks", Reason: "must not be empty"}
	}

	seenIDs := make(map[string]bool, len(pairs))
	seenPositions := make(map[int64]bool, len(pairs))
	for _, p := range pairs {
		if p.TaskID == "" {
			return ValidationError{Field: "tasks", Reason: "every entry needs an id"}
		}
		if p.Position < 1 {
			return ValidationError{Field: "tasks", Reason: fmt.Sprintf("position %d is not a positive rank", p.Position)}
		}
		if seenIDs[p.TaskID] {
			return ValidationError{Field: "tasks", Reason: fmt.Sprintf("duplicate id %s", p.TaskID)}
		}
		if seenPositions[p.Position] {
			return ValidationError{Field: "tasks", Reason: fmt.Sprintf("duplicate position %d", p.Position)}
		}
		seenIDs[p.TaskID] = true
		seenPositions[p.Position] = true
	}

	existing, err := r.storer.List(ctx)
	if err != nil {
		return fmt.Errorf("task repository reorder list: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[t.TaskID] = true
	}
	for _, p := range pairs {
		if !known[p.TaskID] {
			return ValidationError{Field: "tasks", Reason: fmt.Sprintf("unknown id %s", p.TaskID)}
		}
	}

	if err := r.storer.BulkReposition(ctx, pairs); err != nil {
		return fmt.Errorf("task repository reorder: %w", err)
	}

	r.log.InfoContext(ctx, "tasks reordered", "count", len(pairs))

	return nil
}

// checkUniqueName rejects a name already used by another task. The match is
// case-insensitive on the trimmed name. excludeID skips the task being
// updated so a task can keep its own name.
func (r *Repository) checkUniqueName(ctx context.Context, name string, excludeID string) error {
	existing, err := r.storer.List(ctx)
	if err != nil {
		return fmt.Errorf("task repository unique name check: %w", err)
	}

	for _, t := range existing {
		if t.TaskID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(t.Name), name) {
			return fmt.Errorf("%q: %w", name, ErrUniqueName)
		}
	}

	return nil
}
