package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deltagreen-vtt/dgsettings/internal/auth"
	"github.com/deltagreen-vtt/dgsettings/internal/config"
	"github.com/deltagreen-vtt/dgsettings/internal/settings"
)

// Messages are the localization keys of submission notifications.
type Messages struct {
	Saved          string
	PartialFailure string
	ReloadRequired string
}

// Dependencies are shared by all handlers.
type Dependencies struct {
	Cfg       *config.Config
	Store     settings.Store
	Schema    *settings.Schema
	Localizer settings.Localizer
	Auth      *auth.Service
	Messages  Messages
}

// Valid reports whether the required dependencies are set.
func (d Dependencies) Valid() bool {
	return d.Cfg != nil && d.Store != nil && d.Schema != nil && d.Auth != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps Dependencies)
}
