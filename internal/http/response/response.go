package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
)

type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondErr writes a classified error with its status. Anything else is a
// 500 with a generic message; the cause is recorded on the gin context for
// the request logger.
func RespondErr(c *gin.Context, err error) {
	if err == nil {
		RespondError(c, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	_ = c.Error(err)
	ae, ok := apierr.As(err)
	if !ok || ae.Status == 0 || ae.Status >= http.StatusInternalServerError {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorEnvelope{
			Error: APIError{Message: "internal server error", Code: "internal_error"},
		})
		return
	}
	c.AbortWithStatusJSON(ae.Status, ErrorEnvelope{
		Error: APIError{Message: ae.Error(), Code: ae.Code, Fields: ae.Fields},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
