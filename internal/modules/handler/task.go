package handler

import (
	"net/http"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/serializer"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type CreateTaskReq struct {
	Name string `json:"name" binding:"required" example:"Record drum takes"`
}

// CreateTask godoc
//
//	@Summary		Create task
//	@Description	Add a checklist task to a phase. The phase progress is recomputed in the same transaction.
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			phase_id	path	string			true	"Phase ID"	format(uuid)
//	@Param			body		body	CreateTaskReq	true	"Task"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.TaskMutationOutput}
//	@Failure		404	{object}	serializer.Response
//	@Router			/phase/{phase_id}/task [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	phaseID, err := uuid.Parse(c.Param("phase_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := CreateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.CreateTask(c.Request.Context(), service.CreateTaskInput{
		OwnerID: owner,
		PhaseID: phaseID,
		Name:    req.Name,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// GetTasks godoc
//
//	@Summary		List tasks
//	@Tags			task
//	@Produce		json
//	@Param			phase_id	path	string	true	"Phase ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Failure		404	{object}	serializer.Response
//	@Router			/phase/{phase_id}/task [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	phaseID, err := uuid.Parse(c.Param("phase_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, err := h.svc.ListTasks(c.Request.Context(), owner, phaseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

// ToggleTask godoc
//
//	@Summary		Toggle task completion
//	@Description	Flip the task's completed flag and recompute its phase's progress atomically. Returns the task and the phase after recompute.
//	@Tags			task
//	@Produce		json
//	@Param			task_id	path	string	true	"Task ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.TaskMutationOutput}
//	@Failure		404	{object}	serializer.Response
//	@Router			/task/{task_id}/toggle [patch]
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.ToggleTask(c.Request.Context(), owner, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// DeleteTask godoc
//
//	@Summary		Delete task
//	@Description	Remove the task and recompute its phase's progress atomically. Returns the phase after recompute.
//	@Tags			task
//	@Produce		json
//	@Param			task_id	path	string	true	"Task ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Phase}
//	@Failure		404	{object}	serializer.Response
//	@Router			/task/{task_id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ph, err := h.svc.DeleteTask(c.Request.Context(), owner, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: ph})
}
