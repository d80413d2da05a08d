package modules

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/relief-directory/pkg/response"
)

// PingFunc checks a backing dependency
type PingFunc func(ctx context.Context) error

// HealthModule serves /healthz and, when enabled, expvar at /debug/vars
type HealthModule struct {
	Ping         PingFunc
	DebugMetrics  bool
}

func NewHealthModule(ping PingFunc, debugMetrics bool) *HealthModule {
	return &HealthModule{Ping: ping, DebugMetrics: debugMetrics}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.healthz)
	if m.DebugMetrics {
		rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	}
}

func (m *HealthModule) healthz(c *gin.Context) {
	if m.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := m.Ping(ctx); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}
