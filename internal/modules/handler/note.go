package handler

import (
	"net/http"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/serializer"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NoteHandler struct {
	svc service.NoteService
}

func NewNoteHandler(s service.NoteService) *NoteHandler {
	return &NoteHandler{svc: s}
}

type CreateNoteReq struct {
	Content string `json:"content" binding:"required" example:"Re-tracked the bridge vocals"`
}

// CreateNote godoc
//
//	@Summary		Create note
//	@Description	Append a note to a phase. Notes are immutable once written.
//	@Tags			note
//	@Accept			json
//	@Produce		json
//	@Param			phase_id	path	string			true	"Phase ID"	format(uuid)
//	@Param			body		body	CreateNoteReq	true	"Note"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Note}
//	@Failure		404	{object}	serializer.Response
//	@Router			/phase/{phase_id}/note [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	phaseID, err := uuid.Parse(c.Param("phase_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := CreateNoteReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	n, err := h.svc.CreateNote(c.Request.Context(), service.CreateNoteInput{
		OwnerID:   owner,
		OwnerName: ownerName(c),
		PhaseID:   phaseID,
		Content:   req.Content,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: n})
}

type GetNotesReq struct {
	Limit    int    `form:"limit,default=20" json:"limit" binding:"required,min=1,max=200" example:"20"`
	Cursor   string `form:"cursor" json:"cursor"`
	TimeDesc bool   `form:"time_desc,default=false" json:"time_desc" example:"false"`
}

// GetNotes godoc
//
//	@Summary		List notes
//	@Description	List a phase's notes with cursor-based pagination
//	@Tags			note
//	@Produce		json
//	@Param			phase_id	path	string	true	"Phase ID"	format(uuid)
//	@Param			limit		query	integer	false	"Limit of notes to return, default 20. Max 200."
//	@Param			cursor		query	string	false	"Cursor from the previous response"
//	@Param			time_desc	query	boolean	false	"Order by created_at descending if true"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListNotesOutput}
//	@Failure		404	{object}	serializer.Response
//	@Router			/phase/{phase_id}/note [get]
func (h *NoteHandler) GetNotes(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	phaseID, err := uuid.Parse(c.Param("phase_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := GetNotesReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.ListNotes(c.Request.Context(), service.ListNotesInput{
		OwnerID:  owner,
		PhaseID:  phaseID,
		Limit:    req.Limit,
		Cursor:   req.Cursor,
		TimeDesc: req.TimeDesc,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// DeleteNote godoc
//
//	@Summary		Delete note
//	@Tags			note
//	@Produce		json
//	@Param			note_id	path	string	true	"Note ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/note/{note_id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.DeleteNote(c.Request.Context(), owner, noteID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}
