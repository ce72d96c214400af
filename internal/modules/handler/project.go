package handler

import (
	"net/http"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/serializer"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	Name                 string                 `json:"name" binding:"required" example:"Debut EP"`
	Description          string                 `json:"description" example:"Five-track EP with live strings"`
	StartDate            string                 `json:"start_date" binding:"required,dateonly" example:"2026-01-15"`
	TargetCompletionDate *string                `json:"target_completion_date" binding:"omitempty,dateonly" example:"2026-06-30"`
	Metadata             map[string]interface{} `json:"metadata"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a production project owned by the authenticated account
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			body	body	CreateProjectReq	true	"Project"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		400	{object}	serializer.Response
//	@Router			/project [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid start_date", err))
		return
	}
	target, err := parseDatePtr(req.TargetCompletionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid target_completion_date", err))
		return
	}

	p, err := h.svc.CreateProject(c.Request.Context(), service.CreateProjectInput{
		OwnerID:              owner,
		Name:                 req.Name,
		Description:          req.Description,
		StartDate:            startDate,
		TargetCompletionDate: target,
		Metadata:             req.Metadata,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// GetProjects godoc
//
//	@Summary		List projects
//	@Description	List every project the authenticated account owns, newest first
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/project [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	items, err := h.svc.ListProjects(c.Request.Context(), owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

// GetProject godoc
//
//	@Summary		Get project
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		404	{object}	serializer.Response
//	@Router			/project/{project_id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.GetProject(c.Request.Context(), owner, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

type UpdateProjectReq struct {
	Name                 *string `json:"name"`
	Description          *string `json:"description"`
	Status               *string `json:"status" binding:"omitempty,oneof=on-track at-risk delayed completed"`
	StartDate            *string `json:"start_date" binding:"omitempty,dateonly"`
	TargetCompletionDate *string `json:"target_completion_date" binding:"omitempty,dateonly"`
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Shallow patch of name, description, status and dates
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string				true	"Project ID"	format(uuid)
//	@Param			body		body	UpdateProjectReq	true	"Fields to patch"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		404	{object}	serializer.Response
//	@Router			/project/{project_id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid start_date", err))
		return
	}
	target, err := parseDatePtr(req.TargetCompletionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid target_completion_date", err))
		return
	}

	p, err := h.svc.UpdateProject(c.Request.Context(), service.UpdateProjectInput{
		OwnerID:              owner,
		ProjectID:            projectID,
		Name:                 req.Name,
		Description:          req.Description,
		Status:               req.Status,
		StartDate:            startDate,
		TargetCompletionDate: target,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Delete the project with all its phases, tasks, notes and collaborators
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/project/{project_id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.DeleteProject(c.Request.Context(), owner, projectID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

// GetProgress godoc
//
//	@Summary		Get project progress
//	@Description	Aggregate completion across the project's phases
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ProjectProgressSummary}
//	@Failure		404	{object}	serializer.Response
//	@Router			/project/{project_id}/progress [get]
func (h *ProjectHandler) GetProgress(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	summary, err := h.svc.GetProgress(c.Request.Context(), owner, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: summary})
}
