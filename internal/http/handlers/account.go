package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/newsroom-backend/internal/http/response"
	"github.com/yungbote/newsroom-backend/internal/platform/ctxutil"
	"github.com/yungbote/newsroom-backend/internal/services"
)

type AccountHandler struct {
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) List(c *gin.Context) {
	rows, err := h.accountService.List(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"accounts": rows})
}

func (h *AccountHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	row, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"account": row})
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req services.AccountInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	row, err := h.accountService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"account": row})
}

func (h *AccountHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	var req services.AccountInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	row, err := h.accountService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"account": row})
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if err := h.accountService.Delete(c.Request.Context(), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/profile
func (h *AccountHandler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	row, err := h.accountService.GetProfile(ctx, ctxutil.CallerID(ctx))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": row})
}

// PUT /api/profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req services.ProfileInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	ctx := c.Request.Context()
	row, err := h.accountService.UpdateProfile(ctx, ctxutil.CallerID(ctx), req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": row})
}
