package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
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

// RespondAPIError derives status and code from the error's kind. Untagged
// errors are reported as internal without leaking their text.
func RespondAPIError(c *gin.Context, err error) {
	kind := apierr.KindOf(err)
	if kind == "" || kind == apierr.KindInternal || kind == apierr.KindPersistence {
		if kind == "" {
			kind = apierr.KindInternal
		}
		_ = c.Error(err)
		c.JSON(apierr.StatusOf(err), ErrorEnvelope{
			Error: APIError{Message: "internal error", Code: string(kind)},
		})
		return
	}
	RespondError(c, apierr.StatusOf(err), string(kind), err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
