package handlers

import (
	"github.com/gin-gonic/gin"

	httpMW "github.com/yungbote/newsroom-backend/internal/http/middleware"
	"github.com/yungbote/newsroom-backend/internal/http/response"
	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
	"github.com/yungbote/newsroom-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.RespondErr(c, err)
		return
	}
	res, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"token":      res.Token,
		"token_type": "Bearer",
		"expires_at": res.ExpiresAt,
		"account":    res.Account,
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	claims := httpMW.ClaimsFrom(c)
	if claims == nil {
		response.RespondErr(c, apierr.Unauthorized("unauthorized", "authentication required"))
		return
	}
	if err := ah.authService.Logout(c.Request.Context(), claims); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AuthHandler) WhoAmI(c *gin.Context) {
	claims := httpMW.ClaimsFrom(c)
	if claims == nil {
		response.RespondErr(c, apierr.Unauthorized("unauthorized", "authentication required"))
		return
	}
	response.RespondOK(c, gin.H{"me": ah.authService.WhoAmI(claims)})
}
