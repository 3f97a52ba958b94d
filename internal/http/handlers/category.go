package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/newsroom-backend/internal/http/response"
	"github.com/yungbote/newsroom-backend/internal/services"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GET /api/categories?active=true
func (h *CategoryHandler) List(c *gin.Context) {
	active, err := queryBool(c, "active")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	rows, err := h.categoryService.List(c.Request.Context(), active != nil && *active)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"categories": rows})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	row, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"category": row})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CategoryInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	row, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"category": row})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	var req services.CategoryInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	row, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"category": row})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
