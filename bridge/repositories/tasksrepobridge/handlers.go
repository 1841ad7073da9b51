package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/bembemg/lista-de-tarefas/bridge/scaffolding/errs"
	"github.com/bembemg/lista-de-tarefas/core/repositories/tasksrepo"
	"github.com/bembemg/lista-de-tarefas/infrastructure/web"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	tasks, err := b.tasksRepository.List(ctx)
	if err != nil {
		return errs.Newf(errs.Internal, "list tasks: %s", err)
	}

	return web.NewJSONResponse(MarshalListToBridge(tasks))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input TaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	nt, err := MarshalCreateToRepository(input)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	task, err := b.tasksRepository.Create(ctx, nt)
	if err != nil {
		return toAppError(err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(task), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	taskID := web.Param(r, "task_id")
	if taskID == "" {
		return errs.Newf(errs.InvalidArgument, "task_id is required")
	}

	var input TaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	ut, err := MarshalUpdateToRepository(input)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	task, err := b.tasksRepository.Update(ctx, taskID, ut)
	if err != nil {
		return toAppError(err)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	taskID := web.Param(r, "task_id")
	if taskID == "" {
		return errs.Newf(errs.InvalidArgument, "task_id is required")
	}

	if err := b.tasksRepository.Delete(ctx, taskID); err != nil {
		return toAppError(err)
	}

	return MessageResponse{Message: "Tarefa deletada com sucesso!"}
}

func (b *bridge) httpReorder(ctx context.Context, r *http.Request) web.Encoder {
	var input ReorderInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	if err := b.tasksRepository.Reorder(ctx, MarshalReorderToRepository(input)); err != nil {
		return toAppError(err)
	}

	return MessageResponse{Message: "Ordem atualizada com sucesso!"}
}

// toAppError translates repository errors into API errors without leaking
// storage internals.
func toAppError(err error) *errs.Error {
	var verr tasksrepo.ValidationError

	switch {
	case errors.As(err, &verr):
		return errs.New(errs.InvalidArgument, verr)
	case errors.Is(err, tasksrepo.ErrUniqueName):
		return errs.Newf(errs.InvalidArgument, "task name already exists")
	case errors.Is(err, tasksrepo.ErrNotFound):
		return errs.Newf(errs.NotFound, "task not found")
	default:
		return errs.New(errs.Internal, err)
	}
}
