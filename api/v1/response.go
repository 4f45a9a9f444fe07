package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/grantdesk-api/access"
	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/middleware"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindNotFound:        http.StatusNotFound,
	apperr.KindUnauthorized:    http.StatusUnauthorized,
	apperr.KindForbidden:       http.StatusForbidden,
	apperr.KindConflict:        http.StatusConflict,
	apperr.KindInvalidArgument: http.StatusBadRequest,
	apperr.KindServiceError:    http.StatusBadGateway,
}

// respondError writes err as {"status":"error","code":kind,"message":...}
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok || apperr.IsStorage(err) {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		klog.ErrorS(err, "Request failed", "method", c.Request.Method, "path", c.FullPath())
	}

	c.JSON(status, gin.H{
		"status":  "error",
		"code":    kind,
		"message": apperr.MessageOf(err),
	})
}

// respondInvalid reports a request body or query that failed binding
func respondInvalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"code":    apperr.KindInvalidArgument,
		"message": "Invalid request data: " + err.Error(),
	})
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

// actorFrom returns the caller set by the auth middleware, answering 401 when absent
func actorFrom(c *gin.Context) (access.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, apperr.Unauthorized("User not authenticated"))
	}
	return actor, ok
}
