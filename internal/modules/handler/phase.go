package handler

import (
	"net/http"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/serializer"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PhaseHandler struct {
	svc service.PhaseService
}

func NewPhaseHandler(s service.PhaseService) *PhaseHandler {
	return &PhaseHandler{svc: s}
}

type CreatePhaseReq struct {
	Name     string  `json:"name" binding:"required" example:"Recording"`
	Priority string  `json:"priority" binding:"omitempty,oneof=low medium high" example:"high"`
	ETA      *string `json:"eta" example:"2 weeks"`
}

// CreatePhase godoc
//
//	@Summary		Create phase
//	@Description	Add a phase to a project. New phases start pending at 0%%.
//	@Tags			phase
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string			true	"Project ID"	format(uuid)
//	@Param			body		body	CreatePhaseReq	true	"Phase"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Phase}
//	@Failure		404	{object}	serializer.Response
//	@Router			/project/{project_id}/phase [post]
func (h *PhaseHandler) CreatePhase(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := CreatePhaseReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ph, err := h.svc.CreatePhase(c.Request.Context(), service.CreatePhaseInput{
		OwnerID:   owner,
		ProjectID: projectID,
		Name:      req.Name,
		Priority:  req.Priority,
		ETA:       req.ETA,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: ph})
}

// GetPhases godoc
//
//	@Summary		List phases
//	@Tags			phase
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Phase}
//	@Failure		404	{object}	serializer.Response
//	@Router			/project/{project_id}/phase [get]
func (h *PhaseHandler) GetPhases(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, err := h.svc.ListPhases(c.Request.Context(), owner, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

type UpdatePhaseStatusReq struct {
	Status string `json:"status" binding:"required,oneof=pending in-progress completed delayed"`
}

// UpdatePhaseStatus godoc
//
//	@Summary		Update phase status
//	@Description	Transition a phase's status. Completing forces progress to 100 and stamps the completion date.
//	@Tags			phase
//	@Accept			json
//	@Produce		json
//	@Param			phase_id	path	string					true	"Phase ID"	format(uuid)
//	@Param			body		body	UpdatePhaseStatusReq	true	"Status"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Phase}
//	@Failure		404	{object}	serializer.Response
//	@Router			/phase/{phase_id}/status [patch]
func (h *PhaseHandler) UpdatePhaseStatus(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	phaseID, err := uuid.Parse(c.Param("phase_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdatePhaseStatusReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid status value, must be one of: pending, in-progress, completed, delayed", err))
		return
	}

	ph, err := h.svc.SetPhaseStatus(c.Request.Context(), service.SetPhaseStatusInput{
		OwnerID: owner,
		PhaseID: phaseID,
		Status:  req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: ph})
}

type UpdatePhaseProgressReq struct {
	Progress *int `json:"progress" binding:"required,min=0,max=100" example:"60"`
}

// UpdatePhaseProgress godoc
//
//	@Summary		Update phase progress
//	@Description	Set a phase's progress manually. 100 promotes the phase to completed; below 100 demotes a completed phase to in-progress.
//	@Tags			phase
//	@Accept			json
//	@Produce		json
//	@Param			phase_id	path	string					true	"Phase ID"	format(uuid)
//	@Param			body		body	UpdatePhaseProgressReq	true	"Progress"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Phase}
//	@Failure		404	{object}	serializer.Response
//	@Router			/phase/{phase_id}/progress [patch]
func (h *PhaseHandler) UpdatePhaseProgress(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	phaseID, err := uuid.Parse(c.Param("phase_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdatePhaseProgressReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("progress must be an integer between 0 and 100", err))
		return
	}

	ph, err := h.svc.SetPhaseProgress(c.Request.Context(), service.SetPhaseProgressInput{
		OwnerID:  owner,
		PhaseID:  phaseID,
		Progress: *req.Progress,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: ph})
}

// DeletePhase godoc
//
//	@Summary		Delete phase
//	@Description	Delete the phase with all its tasks and notes
//	@Tags			phase
//	@Produce		json
//	@Param			phase_id	path	string	true	"Phase ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/phase/{phase_id} [delete]
func (h *PhaseHandler) DeletePhase(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	phaseID, err := uuid.Parse(c.Param("phase_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.DeletePhase(c.Request.Context(), owner, phaseID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}
