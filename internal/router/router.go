package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/convoycubano1-glitch/boostify-progress/docs"
	"github.com/convoycubano1-glitch/boostify-progress/internal/config"
	"github.com/convoycubano1-glitch/boostify-progress/internal/middleware"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/handler"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config              *config.Config
	Log                 *zap.Logger
	ProjectHandler      *handler.ProjectHandler
	PhaseHandler        *handler.PhaseHandler
	TaskHandler         *handler.TaskHandler
	NoteHandler         *handler.NoteHandler
	CollaboratorHandler *handler.CollaboratorHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)
	if err := handler.RegisterValidations(); err != nil {
		d.Log.Warn("failed to register custom validations", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.OwnerAuth(d.Config))

		project := v1.Group("/project")
		{
			project.GET("", d.ProjectHandler.GetProjects)
			project.POST("", d.ProjectHandler.CreateProject)
			project.GET("/:project_id", d.ProjectHandler.GetProject)
			project.PATCH("/:project_id", d.ProjectHandler.UpdateProject)
			project.DELETE("/:project_id", d.ProjectHandler.DeleteProject)

			project.GET("/:project_id/progress", d.ProjectHandler.GetProgress)

			project.GET("/:project_id/phase", d.PhaseHandler.GetPhases)
			project.POST("/:project_id/phase", d.PhaseHandler.CreatePhase)

			project.GET("/:project_id/collaborator", d.CollaboratorHandler.GetCollaborators)
		}

		phase := v1.Group("/phase")
		{
			phase.DELETE("/:phase_id", d.PhaseHandler.DeletePhase)
			phase.PATCH("/:phase_id/status", d.PhaseHandler.UpdatePhaseStatus)
			phase.PATCH("/:phase_id/progress", d.PhaseHandler.UpdatePhaseProgress)

			phase.GET("/:phase_id/task", d.TaskHandler.GetTasks)
			phase.POST("/:phase_id/task", d.TaskHandler.CreateTask)

			phase.GET("/:phase_id/note", d.NoteHandler.GetNotes)
			phase.POST("/:phase_id/note", d.NoteHandler.CreateNote)
		}

		task := v1.Group("/task")
		{
			task.PATCH("/:task_id/toggle", d.TaskHandler.ToggleTask)
			task.DELETE("/:task_id", d.TaskHandler.DeleteTask)
		}

		note := v1.Group("/note")
		{
			note.DELETE("/:note_id", d.NoteHandler.DeleteNote)
		}
	}

	return r
}
