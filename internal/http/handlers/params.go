package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
)

// pathID parses the ":id" path parameter.
func pathID(c *gin.Context) (uint, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apierr.Invalid("invalid_id", "invalid id %q", raw)
	}
	return uint(id), nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apierr.Invalid("invalid_query", "query %s must be a boolean", key)
	}
	return &b, nil
}

func queryUint(c *gin.Context, key string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apierr.Invalid("invalid_query", "query %s must be a positive integer", key)
	}
	v := uint(n)
	return &v, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apierr.Invalid("invalid_request", "invalid request body: %v", err)
	}
	return nil
}
