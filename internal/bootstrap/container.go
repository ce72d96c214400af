package bootstrap

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/config"
	"github.com/convoycubano1-glitch/boostify-progress/internal/infra/cache"
	"github.com/convoycubano1-glitch/boostify-progress/internal/infra/db"
	"github.com/convoycubano1-glitch/boostify-progress/internal/infra/logger"
	mq "github.com/convoycubano1-glitch/boostify-progress/internal/infra/queue"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/handler"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/repo"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := d.AutoMigrate(
				&model.Project{},
				&model.Phase{},
				&model.Task{},
				&model.Note{},
				&model.Collaborator{},
			); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})

	// Progress cache
	do.Provide(inj, func(i *do.Injector) (*service.ProgressCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb := do.MustInvoke[*redis.Client](i)
		ttl := time.Duration(cfg.Redis.ProgressTTLSec) * time.Second
		return service.NewProgressCache(rdb, ttl), nil
	})

	// RabbitMQ connection. Optional: a disabled queue leaves the publisher
	// nil and mutations simply skip event publishing.
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.RabbitMQ.Enabled {
			return nil, nil
		}
		useTLS := cfg.RabbitMQ.EnableTLS || strings.HasPrefix(cfg.RabbitMQ.URL, "amqps://")
		if useTLS {
			tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
			url := cfg.RabbitMQ.URL
			if strings.HasPrefix(url, "amqp://") {
				url = strings.Replace(url, "amqp://", "amqps://", 1)
			}
			return amqp.DialTLS(url, tlsConfig)
		}
		return amqp.Dial(cfg.RabbitMQ.URL)
	})

	// RabbitMQ publisher
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn := do.MustInvoke[*amqp.Connection](i)
		log := do.MustInvoke[*zap.Logger](i)
		if conn == nil {
			return nil, nil
		}
		return mq.NewPublisher(conn, log, cfg)
	})

	// repos
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PhaseRepo, error) {
		return repo.NewPhaseRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.NoteRepo, error) {
		return repo.NewNoteRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CollaboratorRepo, error) {
		return repo.NewCollaboratorRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// services
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.PhaseRepo](i),
			do.MustInvoke[*service.ProgressCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PhaseService, error) {
		return service.NewPhaseService(
			do.MustInvoke[repo.PhaseRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*service.ProgressCache](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.PhaseRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*service.ProgressCache](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.NoteService, error) {
		return service.NewNoteService(
			do.MustInvoke[repo.NoteRepo](i),
			do.MustInvoke[repo.PhaseRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CollaboratorService, error) {
		return service.NewCollaboratorService(
			do.MustInvoke[repo.CollaboratorRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
		), nil
	})

	// handlers
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PhaseHandler, error) {
		return handler.NewPhaseHandler(do.MustInvoke[service.PhaseService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.NoteHandler, error) {
		return handler.NewNoteHandler(do.MustInvoke[service.NoteService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CollaboratorHandler, error) {
		return handler.NewCollaboratorHandler(do.MustInvoke[service.CollaboratorService](i)), nil
	})

	return inj
}
