package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/authkeeper/internal/auth"
)

// Envelope codes. Failed account operations are answered with HTTP 400 but
// carry CodeError in the body, matching existing clients.
const (
	CodeSuccess = http.StatusOK
	CodeError   = http.StatusInternalServerError
)

const (
	MessageSuccess        = "Success"
	MessageInvalidBody    = "Invalid request body"
	MessageInternalError  = "Internal server error"
	MessageDBUnavailable  = "Database unavailable"
	MessageMissingSubject = "User ID not found"
)

// Response is the envelope every JSON endpoint answers with. It is shared
// with the request gate so 401 rejections have the same shape.
type Response = auth.Envelope

func respondSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: CodeSuccess, Message: MessageSuccess, Data: data})
}

// respondBadRequest sends HTTP 400 with the error envelope.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Code: CodeError, Message: message})
}

// respondInternalError sends HTTP 500. The cause is logged by the caller,
// never returned.
func respondInternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{Code: CodeError, Message: MessageInternalError})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Code: status, Message: message})
}
