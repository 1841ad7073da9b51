// Package tasksmemstore implements the tasksrepo.Storer contract in memory.
// It mirrors the SQL store's semantics exactly (append position assignment,
// no renumbering on delete, all-or-nothing repositioning) and backs the test
// suites and the end-to-end client tests.
package tasksmemstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/bembemg/lista-de-tarefas/core/repositories/tasksrepo"
)

type Store struct {
	mu    sync.RWMutex
	tasks map[string]tasksrepo.Task
}

func NewStore() *Store {
	return &Store{
		tasks: make(map[string]tasksrepo.Task),
	}
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]tasksrepo.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Position < tasks[j].Position
	})

	return tasks, nil
}

func (s *Store) Create(ctx context.Context, nt tasksrepo.NewTask) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxPos int64
	for _, t := range s.tasks {
		if t.Position > maxPos {
			maxPos = t.Position
		}
	}

	task := tasksrepo.Task{
		TaskID:    uuid.NewString(),
		Name:      nt.Name,
		Cost:      nt.Cost,
		LimitDate: nt.LimitDate,
		Position:  maxPos + 1,
	}
	s.tasks[task.TaskID] = task

	return task, nil
}

func (s *Store) Update(ctx context.Context, taskID string, ut tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return tasksrepo.Task{}, tasksrepo.ErrNotFound
	}

	if ut.Name != nil {
		task.Name = *ut.Name
	}
	if ut.Cost != nil {
		task.Cost = *ut.Cost
	}
	if ut.LimitDate != nil {
		task.LimitDate = *ut.LimitDate
	}
	s.tasks[taskID] = task

	return task, nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return tasksrepo.ErrNotFound
	}
	delete(s.tasks, taskID)

	return nil
}

func (s *Store) BulkReposition(ctx context.Context, pairs []tasksrepo.Reposition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching anything so a failure leaves
	// every position unchanged.
	for _, p := range pairs {
		if _, ok := s.tasks[p.TaskID]; !ok {
			return fmt.Errorf("reposition task [%s]: %w", p.TaskID, tasksrepo.ErrNotFound)
		}
	}

	for _, p := range pairs {
		task := s.tasks[p.TaskID]
		task.Position = p.Position
		s.tasks[p.TaskID] = task
	}

	return nil
}
