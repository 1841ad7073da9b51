package api

import (
	"context"
	"net/http"
	"os"
	"runtime"

	"github.com/bembemg/lista-de-tarefas/app/tarefas/config"
	"github.com/bembemg/lista-de-tarefas/bridge/scaffolding/errs"
	"github.com/bembemg/lista-de-tarefas/infrastructure/postgresdb"
	"github.com/bembemg/lista-de-tarefas/infrastructure/web"
)

type checkInfo struct {
	Status     string `json:"status"`
	Build      string `json:"build,omitempty"`
	Host       string `json:"host,omitempty"`
	GoMaxProcs int    `json:"go_max_procs,omitempty"`
}

func addCheckRoutes(group *web.RouteGroup, cfg config.Tarefas) {
	liveness := func(ctx context.Context, r *http.Request) web.Encoder {
		host, _ := os.Hostname()

		return web.NewJSONResponse(checkInfo{
			Status:     "up",
			Build:      cfg.Build,
			Host:       host,
			GoMaxProcs: runtime.GOMAXPROCS(0),
		})
	}

	// Readiness pings the database so orchestration only routes traffic when
	// the store is reachable.
	readiness := func(ctx context.Context, r *http.Request) web.Encoder {
		if err := postgresdb.StatusCheck(ctx, cfg.DB); err != nil {
			return errs.Newf(errs.Internal, "database not ready: %s", err)
		}

		return web.NewJSONResponse(checkInfo{Status: "ready"})
	}

	group.GET("/liveness", liveness)
	group.GET("/readiness", readiness)
}
