package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/http/response"
	"github.com/yungbote/newsroom-backend/internal/platform/ctxutil"
	"github.com/yungbote/newsroom-backend/internal/services"
)

type ArticleHandler struct {
	articleService services.ArticleService
}

func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// GET /api/articles?published=&category_id=&tag=&q=
func (h *ArticleHandler) List(c *gin.Context) {
	published, err := queryBool(c, "published")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	categoryID, err := queryUint(c, "category_id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	filter := types.ArticleFilter{
		Published:  published,
		CategoryID: categoryID,
		TagName:    strings.TrimSpace(c.Query("tag")),
		Query:      strings.TrimSpace(c.Query("q")),
	}
	rows, err := h.articleService.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"articles": rows})
}

// GET /api/articles/mine
func (h *ArticleHandler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.articleService.ListByAuthor(ctx, ctxutil.CallerID(ctx))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"articles": rows})
}

func (h *ArticleHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	row, err := h.articleService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"article": row})
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var req services.ArticleInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	ctx := c.Request.Context()
	row, err := h.articleService.Create(ctx, ctxutil.CallerID(ctx), req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"article": row})
}

func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	var req services.ArticleInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	ctx := c.Request.Context()
	row, err := h.articleService.Update(ctx, ctxutil.CallerID(ctx), id, req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"article": row})
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
