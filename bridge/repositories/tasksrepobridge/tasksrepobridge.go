package tasksrepobridge

import (
	"github.com/bembemg/lista-de-tarefas/core/repositories/tasksrepo"
)

type bridge struct {
	tasksRepository *tasksrepo.Repository
}

func newBridge(tasksRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		tasksRepository: tasksRepository,
	}
}
