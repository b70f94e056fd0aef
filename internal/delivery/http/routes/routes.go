package routes

import (
	"applytrack/internal/delivery/http/handler"
	"applytrack/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	graphql *handler.GraphQLHandler
	authMw  *middleware.AuthMiddleware
}

func NewRegistry(health *handler.HealthHandler, graphql *handler.GraphQLHandler, authMw *middleware.AuthMiddleware) *Registry {
	return &Registry{health: health, graphql: graphql, authMw: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

// registerAPI mounts the operation endpoint. Identity resolution is
// optional, so the auth middleware only runs on this group.
func (r *Registry) registerAPI(app *fiber.App) {
	if r.graphql == nil {
		return
	}

	api := app.Group("")
	if r.authMw != nil {
		api = app.Group("", r.authMw.Middleware())
	}
	r.graphql.RegisterRoutes(api)
}
