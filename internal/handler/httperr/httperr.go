package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the flat error body every endpoint emits.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

// Abort writes the error body and records the original error on the context
// for the logging and error middleware. err may be nil when there is no
// underlying cause worth logging.
func Abort(c *gin.Context, status int, err error, msg string) {
	resp := Response{Status: status, Error: msg}

	if err != nil {
		_ = c.Error(gin.Error{
			Err:  err,
			Type: gin.ErrorTypePublic,
			Meta: resp,
		})
	}
	c.AbortWithStatusJSON(status, resp)
}
