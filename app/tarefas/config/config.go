package config

import (
	"github.com/bembemg/lista-de-tarefas/core/repositories/tasksrepo"
	"github.com/bembemg/lista-de-tarefas/infrastructure/postgresdb"
	"github.com/bembemg/lista-de-tarefas/sdk/logger"
	"github.com/bembemg/lista-de-tarefas/sdk/telemetry"
)

// Repositories represents the specific repositories this instance needs.
type Repositories struct {
	Tasks *tasksrepo.Repository
}

// Tarefas is the overall configuration for the task list application.
type Tarefas struct {
	Build  string
	Logger *logger.Logger

	Repositories Repositories
	Telemetry    telemetry.Telemetry

	DB *postgresdb.Pool
}
