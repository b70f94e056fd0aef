package app

import (
	"fmt"
	"strings"

	"applytrack/internal/config"
	"applytrack/internal/delivery/graphql"
	"applytrack/internal/delivery/http/handler"
	"applytrack/internal/delivery/http/middleware"
	"applytrack/internal/delivery/http/routes"
	"applytrack/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of an already initialised container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Log)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, log *logger.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, log *logger.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(log.With("component", "http"))
	errMw := middleware.NewErrorMiddleware(log)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	health := handler.NewHealthHandler(c.DB, c.Log)
	schema := graphql.NewAppSchema(c.Services)
	gql := handler.NewGraphQLHandler(schema, c.Log.With("component", "graphql"))
	authMw := middleware.NewAuthMiddleware(c.Services.Auth)

	routes.NewRegistry(health, gql, authMw).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
