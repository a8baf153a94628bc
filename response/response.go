package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pavithranrajkumar/devbuddy-backend/apperr"
	"github.com/pavithranrajkumar/devbuddy-backend/logutils"
)

// Response is the JSON envelope every endpoint answers with.
type Response[T any] struct {
	Code ErrorCode `json:"code"`
	Data T         `json:"data"`
	Msg  string    `json:"msg"`
}

func wrapResponse(c *gin.Context, httpCode int, msg string, data any, code ErrorCode) {
	c.JSON(httpCode, gin.H{
		"code": code,
		"data": data,
		"msg":  msg,
	})
}

// Success sends a 200 response with the provided data in the envelope.
func Success(c *gin.Context, data any) {
	wrapResponse(c, http.StatusOK, "", data, OK)
}

// Created sends a 201 response with the provided data in the envelope.
func Created(c *gin.Context, data any) {
	wrapResponse(c, http.StatusCreated, "", data, OK)
}

// HTTPError sends an error response with the specified HTTP code, error message, and error code.
func HTTPError(c *gin.Context, httpCode int, msg string, errorCode ErrorCode) {
	wrapResponse(c, httpCode, msg, nil, errorCode)
}

// Used when Gin ShouldBindJSON, ShouldBindQuery etc. fail to bind parameters
func BadRequestError(c *gin.Context, msg string) {
	HTTPError(c, http.StatusBadRequest, msg, InvalidRequest)
}

// Error maps a service error to its wire form. Typed apperr errors keep
// their semantic status and message; anything else becomes a generic 500
// so persistence internals never leak to the caller.
func Error(c *gin.Context, err error) {
	if appErr, ok := apperr.As(err); ok {
		code := NotSpecified
		switch appErr.Status {
		case http.StatusNotFound:
			code = NotFound
		case http.StatusBadRequest:
			code = InvalidRequest
		case http.StatusUnauthorized:
			code = InvalidToken
		}
		HTTPError(c, appErr.Status, appErr.Message, code)
		return
	}
	logutils.Log.WithField("path", c.FullPath()).Error(err)
	HTTPError(c, http.StatusInternalServerError, "Internal server error", InternalError)
}
