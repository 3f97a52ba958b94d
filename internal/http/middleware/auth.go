package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/http/response"
	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
	"github.com/yungbote/newsroom-backend/internal/platform/ctxutil"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
	"github.com/yungbote/newsroom-backend/internal/services"
)

const claimsKey = "auth_claims"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), authService: authService}
}

// RequireAuth verifies the bearer token and attaches the caller to the
// request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.RespondErr(c, apierr.Unauthorized("unauthorized", "missing or invalid token"))
			return
		}
		claims, err := am.authService.ParseToken(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("Token rejected", "error", err)
			response.RespondErr(c, err)
			return
		}
		rd := &ctxutil.RequestData{
			AccountID: claims.AccountID(),
			Email:     claims.Email,
			Name:      claims.Name,
			Role:      int(claims.Role),
			TokenID:   claims.ID,
		}
		if claims.ExpiresAt != nil {
			rd.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRoles lets the request through only when the caller holds one of
// roles. It must run after RequireAuth.
func (am *AuthMiddleware) RequireRoles(roles ...types.Role) gin.HandlerFunc {
	allowed := make(map[types.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return am.requireRole(func(r types.Role) bool { return allowed[r] })
}

// RequireAdmin admits only callers whose role manages accounts.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return am.requireRole(types.Role.Administrative)
}

func (am *AuthMiddleware) requireRole(ok func(types.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.AccountID == 0 {
			response.RespondErr(c, apierr.Unauthorized("unauthorized", "authentication required"))
			return
		}
		if role := types.Role(rd.Role); !ok(role) {
			response.RespondErr(c, apierr.Forbidden("forbidden", "role %s may not perform this action", role))
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the verified token claims set by RequireAuth.
func ClaimsFrom(c *gin.Context) *services.JWTClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.JWTClaims)
	return claims
}

func bearerToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
