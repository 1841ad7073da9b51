package taskclient

import (
	"context"

	"github.com/bembemg/lista-de-tarefas/core/reorder"
)

// SyncAdapter adapts a Client to the reorder.Syncer contract.
type SyncAdapter struct {
	Client *Client
}

func (a SyncAdapter) Fetch(ctx context.Context) ([]reorder.Task, error) {
	tasks, err := a.Client.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]reorder.Task, len(tasks))
	for i, t := range tasks {
		out[i] = reorder.Task{
			ID:        t.ID,
			Name:      t.Name,
			Cost:      t.Cost,
			LimitDate: t.LimitDate,
			Position:  t.Position,
		}
	}
	return out, nil
}

func (a SyncAdapter) Reorder(ctx context.Context, pairs []reorder.Reposition) error {
	wire := make([]Reposition, len(pairs))
	for i, p := range pairs {
		wire[i] = Reposition{ID: p.ID, Position: p.Position}
	}
	return a.Client.Reorder(ctx, wire)
}
