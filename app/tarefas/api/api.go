// Package api wires the HTTP routes for the task list application.
package api

import (
	"github.com/bembemg/lista-de-tarefas/app/tarefas/config"
	"github.com/bembemg/lista-de-tarefas/bridge/repositories/tasksrepobridge"
	"github.com/bembemg/lista-de-tarefas/infrastructure/web"
)

// AddHandlers registers all application routes on the web handler.
func AddHandlers(wh *web.WebHandler, cfg config.Tarefas) {
	group := wh.Group("")

	tasksrepobridge.AddHttpRoutes(group, tasksrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Tasks,
	})

	addCheckRoutes(group, cfg)
}
