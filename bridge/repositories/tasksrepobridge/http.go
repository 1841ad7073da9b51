// Package tasksrepobridge contains HTTP route registration and handlers for
// the task list.
package tasksrepobridge

import (
	"github.com/bembemg/lista-de-tarefas/core/repositories/tasksrepo"
	"github.com/bembemg/lista-de-tarefas/infrastructure/web"
	"github.com/bembemg/lista-de-tarefas/sdk/logger"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for the task list. The reorder
// route and the {task_id} routes share the PUT /tasks prefix; the mux picks
// the literal segment over the wildcard, so /tasks/reorder never captures an
// id.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Repository)

	group.GET("/tasks", b.httpList, cfg.Middleware...)
	group.POST("/tasks", b.httpCreate, cfg.Middleware...)
	group.PUT("/tasks/reorder", b.httpReorder, cfg.Middleware...)
	group.PUT("/tasks/{task_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/tasks/{task_id}", b.httpDelete, cfg.Middleware...)
}
