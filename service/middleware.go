package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pavithranrajkumar/devbuddy-backend/dao/model"
	"github.com/pavithranrajkumar/devbuddy-backend/logutils"
	"github.com/pavithranrajkumar/devbuddy-backend/response"
	"github.com/pavithranrajkumar/devbuddy-backend/util"
)

const authContextKey = "auth"

// AuthMiddleware validates the Bearer token and stores the decoded
// identity on the context. Token issuance is handled elsewhere; this
// only authenticates.
func AuthMiddleware(tm *util.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.HTTPError(c, http.StatusUnauthorized, "No token provided", response.InvalidToken)
			c.Abort()
			return
		}
		msg, err := tm.CheckToken(token)
		if err != nil {
			response.HTTPError(c, http.StatusUnauthorized, "Invalid token", response.InvalidToken)
			c.Abort()
			return
		}
		c.Set(authContextKey, msg)
		c.Next()
	}
}

// RequireUserType guards a route to the given account types.
func RequireUserType(types ...model.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg := authMessage(c)
		for _, t := range types {
			if msg.UserType == t {
				c.Next()
				return
			}
		}
		response.HTTPError(c, http.StatusForbidden, "Access denied for this role", response.InvalidRole)
		c.Abort()
	}
}

func authMessage(c *gin.Context) util.JWTMessage {
	v, ok := c.Get(authContextKey)
	if !ok {
		return util.JWTMessage{}
	}
	msg, _ := v.(util.JWTMessage)
	return msg
}

// RequestLogger tags every request with an id and logs its outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("requestID", requestID)
		start := time.Now()
		c.Next()
		logutils.Log.WithFields(logutils.Fields{
			"requestId": requestID,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"elapsed":   time.Since(start).String(),
		}).Info("request")
	}
}
