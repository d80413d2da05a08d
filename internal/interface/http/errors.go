package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/relief-directory/internal/application"
	"github.com/oksasatya/relief-directory/internal/interface/middleware"
	"github.com/oksasatya/relief-directory/pkg/response"
)

// StatusFor maps a service error kind to its HTTP status.
func StatusFor(err error) int {
	switch application.KindOf(err) {
	case application.KindInvalidInput:
		return http.StatusBadRequest
	case application.KindUnauthorized, application.KindInvalidCredentials:
		return http.StatusUnauthorized
	case application.KindForbidden:
		return http.StatusForbidden
	case application.KindNotFound:
		return http.StatusNotFound
	case application.KindDuplicateEmail:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error": ...}. Internal causes are logged with
// the request id and never echoed back.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.CtxRequestIDKey),
			"path":       c.FullPath(),
		}).WithError(err).Error("request failed")
	}
	_ = c.Error(err)
	response.Error(c, status, application.PublicMessage(err))
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{IP: middleware.ClientIP(c), UserAgent: c.GetHeader("User-Agent")}
}
