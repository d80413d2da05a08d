package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/relief-directory/internal/interface/http"
)

// AuthModule exposes registration, login and logout. All public.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)
}
