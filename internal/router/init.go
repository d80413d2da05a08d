package router

import (
	"github.com/oksasatya/relief-directory/internal/container"
	handlers "github.com/oksasatya/relief-directory/internal/interface/http"
	"github.com/oksasatya/relief-directory/internal/router/modules"
)

// InitModules builds the handlers from the container and registers every
// module. Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config

	authHandler := handlers.NewAuthHandler(c.AuthService, c.Logger, cfg.CookieDomain, cfg.CookieSecure)
	resourceHandler := handlers.NewResourceHandler(c.ResourceService, c.Logger)
	moderationHandler := handlers.NewModerationHandler(c.ResourceService, c.Logger)

	r.Add(modules.NewHealthModule(c.Ping, cfg.DebugMetricsEnabled))
	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewResourceModule(resourceHandler, c.AuthService))
	r.Add(modules.NewModerationModule(moderationHandler, c.AuthService))
}
