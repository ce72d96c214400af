package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/bootstrap"
	"github.com/convoycubano1-glitch/boostify-progress/internal/config"
	"github.com/convoycubano1-glitch/boostify-progress/internal/infra/cache"
	"github.com/convoycubano1-glitch/boostify-progress/internal/infra/db"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/handler"
	"github.com/convoycubano1-glitch/boostify-progress/internal/router"
	"github.com/convoycubano1-glitch/boostify-progress/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//	@title			Boostify Progress API
//	@version		0.0.1
//	@description	Production progress tracking for Boostify projects: phases, tasks, notes and collaborators.
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync() //nolint:errcheck

	// Tracing first so the DB/Redis plugins pick up the global provider.
	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Fatal("failed to set up tracing", zap.Error(err))
	}

	gdb := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)
	if tp != nil {
		if err := db.RegisterOpenTelemetryPlugin(gdb); err != nil {
			log.Warn("failed to register gorm otel plugin", zap.Error(err))
		}
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Warn("failed to register redis otel plugin", zap.Error(err))
		}
	}

	r := router.NewRouter(router.RouterDeps{
		Config:              cfg,
		Log:                 log,
		ProjectHandler:      do.MustInvoke[*handler.ProjectHandler](inj),
		PhaseHandler:        do.MustInvoke[*handler.PhaseHandler](inj),
		TaskHandler:         do.MustInvoke[*handler.TaskHandler](inj),
		NoteHandler:         do.MustInvoke[*handler.NoteHandler](inj),
		CollaboratorHandler: do.MustInvoke[*handler.CollaboratorHandler](inj),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	go func() {
		log.Info("server starting", zap.Int("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if err := telemetry.ShutdownTracing(ctx); err != nil {
		log.Warn("failed to shut down tracing", zap.Error(err))
	}
	if err := cache.Close(rdb); err != nil {
		log.Warn("failed to close redis", zap.Error(err))
	}
	if err := inj.Shutdown(); err != nil {
		log.Warn("container shutdown", zap.Error(err))
	}
}
