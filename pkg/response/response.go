package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the single error shape every endpoint returns
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is returned by endpoints that only acknowledge an action
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes body with the given status, defaulting to 200
func JSON(ctx *gin.Context, status int, body any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, body)
}

// Error writes {"error": message} and aborts the handler chain
func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{Error: message})
}
