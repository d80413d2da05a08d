package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/relief-directory/internal/interface/http"
	"github.com/oksasatya/relief-directory/internal/interface/middleware"
)

// ResourceModule: public GET /resources, session-protected POST /resources
type ResourceModule struct {
	Handler  *handlers.ResourceHandler
	Verifier middleware.SessionVerifier
}

func NewResourceModule(h *handlers.ResourceHandler, v middleware.SessionVerifier) *ResourceModule {
	return &ResourceModule{Handler: h, Verifier: v}
}

func (m *ResourceModule) Register(rg *gin.RouterGroup) {
	rg.GET("/resources", m.Handler.List)
	rg.POST("/resources", middleware.SessionAuth(m.Verifier), m.Handler.Create)
}
