// Package web hosts the settings menu and forms over HTTP.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/deltagreen-vtt/dgsettings/internal/auth"
	accesslog "github.com/deltagreen-vtt/dgsettings/internal/logger/adapter/fiber"
	"github.com/deltagreen-vtt/dgsettings/internal/web/handler"
	"github.com/deltagreen-vtt/dgsettings/internal/web/handler/settings"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"
	// MetricsPath serves the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	deps         handler.Dependencies
	fastShutDown bool
	alive        atomic.Bool
}

// Start listens on the configured port until the app is shut down.
func (s *Service) Start() error {
	addr := fmt.Sprintf(":%d", s.deps.Cfg.Webserver.Port)

	log.Info().Str("addr", addr).Msg("starting http server")

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and shuts the app down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// let load balancers drop this instance while /checkalive fails
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.deps.Cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.deps.Cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers load balancer health checks.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

func newViews(deps handler.Dependencies) *html.Engine {
	engine := html.NewFileSystem(subFS("templates"), ".gohtml")

	// in dev mode, use local filesystem for templates
	if deps.Cfg.DevMode {
		engine = html.New("./internal/web/templates", ".gohtml")
		engine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	engine.AddFunc("localize", deps.Localizer.Localize)
	engine.AddFunc("contains", func(ids []string, id string) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}

		return false
	})

	return engine
}

// New creates the web service and registers all routes.
func New(deps handler.Dependencies) *Service {
	if !deps.Valid() || deps.Localizer == nil {
		panic(handler.ErrNilDepsFatalLogMsg)
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192, //nolint:mnd
			AppName:        deps.Cfg.Title,
			CaseSensitive:  true,
			Immutable:      true,
			Views:          newViews(deps),

			// username and gameMaster locals are read by layouts/base
			PassLocalsToViews: true,
		},
	)

	service := &Service{
		App:          app,
		deps:         deps,
		fastShutDown: deps.Cfg.DevMode,
	}
	service.alive.Store(true)

	app.Use(recover.New())
	app.Use(accesslog.New(accesslog.Config{
		Config:        deps.Cfg.Log,
		CheckAliveURI: CheckAlivePath,
		UserLocal:     auth.LocalUsername,
	}))

	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root: subFS("static"),
			},
		),
	)

	// unauthenticated operational endpoints
	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(auth.BasicAuth(deps.Auth, deps.Cfg.Webserver.Realm))
	app.Use(auth.ClientContext())
	app.Use(auth.AddPermissionsToLocals(deps.Auth))

	settings.Handler.Init(app, deps)

	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(settings.Path)
	})

	return service
}
