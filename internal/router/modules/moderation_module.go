package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/relief-directory/internal/interface/http"
	"github.com/oksasatya/relief-directory/internal/interface/middleware"
)

// ModerationModule requires a session; the moderator role is checked by the service.
type ModerationModule struct {
	Handler  *handlers.ModerationHandler
	Verifier middleware.SessionVerifier
}

func NewModerationModule(h *handlers.ModerationHandler, v middleware.SessionVerifier) *ModerationModule {
	return &ModerationModule{Handler: h, Verifier: v}
}

func (m *ModerationModule) Register(rg *gin.RouterGroup) {
	mod := rg.Group("/moderation")
	mod.Use(middleware.SessionAuth(m.Verifier))
	{
		mod.GET("/resources", m.Handler.List)
		mod.PATCH("/resources/:id", m.Handler.SetStatus)
	}
}
