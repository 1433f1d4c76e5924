package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skillified/internal/config"
	"skillified/internal/delivery/http/handler"
	"skillified/internal/delivery/http/middleware"
	"skillified/internal/delivery/http/routes"
	v1 "skillified/internal/delivery/http/routes/v1"
	"skillified/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
	"go.uber.org/zap"
)

const maxBodySize = 8 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	errMw := middleware.NewErrorMiddleware(c.Logger)

	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		BodyLimit:    maxBodySize,
		ErrorHandler: errMw.Handler,
	})

	registerGlobalMiddleware(f, c.Logger, errMw)
	registerStatic(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// releases everything the container opened.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	c.Start(ctx)

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger, errMw *middleware.ErrorMiddleware) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(errMw.Middleware())
}

func registerStatic(app *fiber.App, c *Container) {
	if c.Pictures == nil {
		return
	}
	prefix := c.Config.Media.BaseURL
	if !strings.HasPrefix(prefix, "/") {
		return
	}
	app.Get(prefix+"/*", static.New(c.Pictures.Dir(), static.Config{MaxAge: int((24 * time.Hour).Seconds())}))
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	checks := map[string]handler.Pinger{}
	if c.DB != nil {
		checks["database"] = c.DB
	}
	if c.Config.Redis.Enabled() {
		checks["redis"] = c.Cache
	}

	uc := c.Usecases
	authMw := middleware.NewAuthMiddleware(uc.Auth)

	routes.NewRegistry(
		handler.NewHealthHandler(checks),
		v1.Handlers{
			Auth:     handler.NewAuthHandler(uc.Auth),
			Catalog:  handler.NewCatalogHandler(uc.Catalog),
			Skills:   handler.NewSkillHandler(uc.Skills),
			Events:   handler.NewEventHandler(uc.Events),
			Profile:  handler.NewProfileHandler(uc.Profiles),
			Settings: handler.NewSettingsHandler(uc.Settings),
			Contact:  handler.NewContactHandler(uc.Contact),
			Messages: handler.NewMessageHandler(uc.Messages),
			WS:       ws.NewHandler(c.Hub, uc.Auth, c.Logger.Named("ws")),
		},
		authMw.Middleware(),
	).Register(app)
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
