package tasksrepobridge

import (
	"fmt"

	"github.com/bembemg/lista-de-tarefas/core/repositories/tasksrepo"
	"github.com/bembemg/lista-de-tarefas/sdk/validation"
)

// MarshalToBridge converts a core model to the wire model.
func MarshalToBridge(task tasksrepo.Task) Task {
	return Task{
		ID:        task.TaskID,
		Name:      task.Name,
		Cost:      task.Cost,
		LimitDate: validation.FormatClientDate(task.LimitDate),
		Position:  task.Position,
	}
}

// MarshalListToBridge converts a list of core models to wire models.
func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	bridgeTasks := make([]Task, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task)
	}
	return bridgeTasks
}

// MarshalCreateToRepository converts bridge create input to repository input.
func MarshalCreateToRepository(input TaskInput) (tasksrepo.NewTask, error) {
	limitDate, err := validation.ParseFlexibleDate(input.LimitDate)
	if err != nil {
		return tasksrepo.NewTask{}, fmt.Errorf("limit_date: %w", err)
	}

	return tasksrepo.NewTask{
		Name:      input.Name,
		Cost:      *input.Cost,
		LimitDate: limitDate,
	}, nil
}

// MarshalUpdateToRepository converts bridge update input to repository input.
func MarshalUpdateToRepository(input TaskInput) (tasksrepo.UpdateTask, error) {
	limitDate, err := validation.ParseFlexibleDate(input.LimitDate)
	if err != nil {
		return tasksrepo.UpdateTask{}, fmt.Errorf("limit_date: %w", err)
	}

	return tasksrepo.UpdateTask{
		Name:      &input.Name,
		Cost:      input.Cost,
		LimitDate: &limitDate,
	}, nil
}

// MarshalReorderToRepository converts the reorder payload to repository pairs.
func MarshalReorderToRepository(input ReorderInput) []tasksrepo.Reposition {
	pairs := make([]tasksrepo.Reposition, len(input.Tasks))
	for i, t := range input.Tasks {
		pairs[i] = tasksrepo.Reposition{
			TaskID:   t.ID,
			Position: t.Position,
		}
	}
	return pairs
}
