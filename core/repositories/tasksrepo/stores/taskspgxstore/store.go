// Package taskspgxstore implements the tasksrepo.Storer contract against
// PostgreSQL.
package taskspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bembemg/lista-de-tarefas/core/repositories/tasksrepo"
	"github.com/bembemg/lista-de-tarefas/infrastructure/postgresdb"
	"github.com/bembemg/lista-de-tarefas/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// List returns all tasks ordered by position ascending.
func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	const q = `
	SELECT
		task_id, name, cost, limit_date, position
	FROM
		tasks
	ORDER BY
		position ASC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", postgresdb.HandlePgError(err))
	}
	defer rows.Close()

	tasks := []tasksrepo.Task{}
	for rows.Next() {
		var t tasksrepo.Task
		if err := rows.Scan(&t.TaskID, &t.Name, &t.Cost, &t.LimitDate, &t.Position); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", postgresdb.HandlePgError(err))
	}

	return tasks, nil
}

// Create inserts a task at the end of the list. The position subquery and the
// insert run as one statement, so concurrent creates cannot pick the same
// rank.
func (s *Store) Create(ctx context.Context, nt tasksrepo.NewTask) (tasksrepo.Task, error) {
	const q = `
	INSERT INTO tasks
		(task_id, name, cost, limit_date, position)
	VALUES
		($1, $2, $3, $4, (SELECT COALESCE(MAX(position), 0) + 1 FROM tasks))
	RETURNING
		position`

	task := tasksrepo.Task{
		TaskID:    uuid.NewString(),
		Name:      nt.Name,
		Cost:      nt.Cost,
		LimitDate: nt.LimitDate,
	}

	if err := s.pool.QueryRow(ctx, q, task.TaskID, task.Name, task.Cost, task.LimitDate).Scan(&task.Position); err != nil {
		return tasksrepo.Task{}, fmt.Errorf("insert task: %w", postgresdb.HandlePgError(err))
	}

	return task, nil
}

// Update changes the mutable fields of a task. Position is not part of the
// statement. Absent fields keep their stored value.
func (s *Store) Update(ctx context.Context, taskID string, ut tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	const q = `
	UPDATE tasks SET
		name       = COALESCE($2, name),
		cost       = COALESCE($3, cost),
		limit_date = COALESCE($4, limit_date)
	WHERE
		task_id = $1
	RETURNING
		task_id, name, cost, limit_date, position`

	var t tasksrepo.Task
	err := s.pool.QueryRow(ctx, q, taskID, ut.Name, ut.Cost, ut.LimitDate).
		Scan(&t.TaskID, &t.Name, &t.Cost, &t.LimitDate, &t.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, tasksrepo.ErrNotFound
		}
		return tasksrepo.Task{}, fmt.Errorf("update task: %w", postgresdb.HandlePgError(err))
	}

	return t, nil
}

// Delete removes a task. Remaining rows keep their positions.
func (s *Store) Delete(ctx context.Context, taskID string) error {
	const q = `
	DELETE FROM
		tasks
	WHERE
		task_id = $1`

	tag, err := s.pool.Exec(ctx, q, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", postgresdb.HandlePgError(err))
	}
	if tag.RowsAffected() == 0 {
		return tasksrepo.ErrNotFound
	}

	return nil
}

// BulkReposition applies every pair inside a single transaction. Any failure,
// including a pair that matches no row, rolls the whole batch back so readers
// only ever observe the order fully before or fully after the call.
func (s *Store) BulkReposition(ctx context.Context, pairs []tasksrepo.Reposition) error {
	const q = `
	UPDATE tasks SET
		position = $2
	WHERE
		task_id = $1`

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reposition: %w", postgresdb.HandlePgError(err))
	}
	defer tx.Rollback(ctx)

	for _, p := range pairs {
		tag, err := tx.Exec(ctx, q, p.TaskID, p.Position)
		if err != nil {
			return fmt.Errorf("reposition task [%s]: %w", p.TaskID, postgresdb.HandlePgError(err))
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("reposition task [%s]: %w", p.TaskID, tasksrepo.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reposition: %w", postgresdb.HandlePgError(err))
	}

	return nil
}
