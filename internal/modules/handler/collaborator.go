package handler

import (
	"net/http"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/serializer"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CollaboratorHandler struct {
	svc service.CollaboratorService
}

func NewCollaboratorHandler(s service.CollaboratorService) *CollaboratorHandler {
	return &CollaboratorHandler{svc: s}
}

// GetCollaborators godoc
//
//	@Summary		List collaborators
//	@Description	List the accounts invited to a project. Invitations are managed by the account service.
//	@Tags			collaborator
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Collaborator}
//	@Failure		404	{object}	serializer.Response
//	@Router			/project/{project_id}/collaborator [get]
func (h *CollaboratorHandler) GetCollaborators(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, err := h.svc.ListCollaborators(c.Request.Context(), owner, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: items})
}
