// Package fiber provides a zerolog access log middleware for fiber.
package fiber

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/deltagreen-vtt/dgsettings/internal/logger"
)

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// CacheControlError is set on responses whose handler chain failed.
	CacheControlError string

	// CheckAliveURI is not logged when Config.DisableCheckAlive is set.
	CheckAliveURI string

	// UserLocal is the fiber.Ctx local holding the authenticated user name.
	UserLocal string
}

// ConfigDefault is the default config for fiber.
var ConfigDefault = Config{
	CacheControlError: "max-age=0",
	UserLocal:         "username",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	if cfg.UserLocal == "" {
		cfg.UserLocal = ConfigDefault.UserLocal
	}

	return cfg
}

func accessWriters(cfg logger.Log) []io.Writer {
	var writers []io.Writer

	if cfg.File.Enabled {
		if err := os.MkdirAll(cfg.File.Path, 0o750); err != nil { //nolint:mnd
			log.Error().Err(err).Str("path", cfg.File.Path).Msg("can't create log directory")
		} else {
			writers = append(writers, logger.NewRollingFile(cfg.File.Path, cfg.File.Access))
		}
	}

	if cfg.Console.Enabled && cfg.EnableAccessLogToConsole {
		if cfg.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{"level"},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	return writers
}

// New creates the access log middleware. Each request is logged as one line
// after the rest of the chain ran; chain errors are passed to the app's
// error handler first so the logged status is the one sent.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	access := zerolog.New(zerolog.MultiLevelWriter(accessWriters(cfg.Config)...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if errH := ctx.App().ErrorHandler(ctx, chainErr); errH != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck
			}

			ctx.Response().Header.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
		}

		elapsed := time.Since(start).Seconds()
		ctx.Response().Header.Set("X-Performance", strconv.FormatFloat(elapsed, 'f', 6, 64))

		if cfg.Config.DisableCheckAlive && ctx.Path() == cfg.CheckAliveURI {
			return nil
		}

		// ctx.Path keeps the path as requested, fasthttp normalizes only for routing
		uri := ctx.Path()
		if q := ctx.Request().URI().QueryString(); len(q) > 0 {
			uri += "?" + string(q)
		}

		event := access.Log().
			Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", uri).
			Str("method", ctx.Method()).
			Bytes("host", ctx.Request().Host()).
			Str(fiber.HeaderXForwardedFor, ctx.Get(fiber.HeaderXForwardedFor)).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderReferer, ctx.Get(fiber.HeaderReferer))

		if user, ok := ctx.Locals(cfg.UserLocal).(string); ok && user != "" {
			event.Str("user", user)
		}

		if chainErr != nil {
			event.Err(chainErr)
		}

		event.Send()

		return nil
	}
}
