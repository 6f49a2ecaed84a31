// Package settings provides the handlers of the settings menu and its forms.
package settings

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/deltagreen-vtt/dgsettings/internal/auth"
	engine "github.com/deltagreen-vtt/dgsettings/internal/settings"
	"github.com/deltagreen-vtt/dgsettings/internal/web/handler"
	"github.com/deltagreen-vtt/dgsettings/internal/web/navigation"
)

const (
	// Path is the path of the settings menu.
	Path = handler.RootPath + "settings"

	// TemplateMenu is the name of the settings menu template.
	TemplateMenu = "settings/index"

	// TemplateForm is the name of the settings form template.
	TemplateForm = "settings/form"

	namespaceParam = "namespace"
	section        = "settings"
)

// Service is the settings handler service.
type Service struct {
	deps    handler.Dependencies
	metrics *Metrics
}

// Handler is the settings handler.
var Handler = Service{}

// Init registers the settings routes.
func (s *Service) Init(app *fiber.App, deps handler.Dependencies) {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	if deps.Localizer == nil {
		deps.Localizer = engine.KeyLocalizer
	}

	s.deps = deps
	s.metrics = NewMetrics()

	view := auth.RequirePermission(deps.Auth, auth.PermSettingsView)

	app.Get(Path, view, s.Menu)
	app.Get(Path+"/:"+namespaceParam, view, s.Get)
	app.Post(Path+"/:"+namespaceParam, view, s.Post)
}

// Menu renders the menu entries visible to the user.
func (s *Service) Menu(c *fiber.Ctx) error {
	nav := s.navigation(c, "", "")

	return c.Render(TemplateMenu, fiber.Map{
		"Navigation": nav,
		"Entries":    s.entries(c),
	}, handler.BaseLayout)
}

// Get renders the form of a namespace with the stored values.
func (s *Service) Get(c *fiber.Ctx) error {
	binding, err := s.binding(c)
	if err != nil {
		return err
	}

	form, err := engine.Assemble(c.UserContext(), s.deps.Store, s.deps.Schema, binding.Namespace, s.deps.Localizer)
	if err != nil {
		log.Error().Err(err).Str("namespace", string(binding.Namespace)).Msg("failed to assemble settings form")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	return c.Render(TemplateForm, fiber.Map{
		"Navigation": s.navigation(c, binding.Namespace, s.deps.Localizer.Localize(binding.Name)),
		"Form":       form,
		"Locked":     s.locked(c, binding.Namespace),
	}, handler.BaseLayout)
}

// Post submits the form of a namespace. Every field is written on its own;
// the page reports the fields that failed and shows the values now stored.
func (s *Service) Post(c *fiber.Ctx) error {
	binding, err := s.binding(c)
	if err != nil {
		return err
	}

	ns := binding.Namespace

	values, err := s.decode(c, ns)
	if err != nil {
		return err
	}

	var notice Notice

	result, err := engine.Submit(c.UserContext(), s.deps.Store, s.deps.Schema, ns, values,
		engine.NotifierFunc(func(_ context.Context, r engine.Result) {
			notice = s.notice(r)
			s.metrics.Observe(r)
			s.log(c, r)
		}),
		engine.SubmitOptions{
			Concurrency: s.deps.Cfg.Submit.Concurrency,
			ClientOnly:  !s.privileged(c),
		},
	)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	form, err := engine.Assemble(c.UserContext(), s.deps.Store, s.deps.Schema, ns, s.deps.Localizer)
	if err != nil {
		log.Error().Err(err).Str("namespace", string(ns)).Msg("failed to assemble settings form")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	data := fiber.Map{
		"Navigation": s.navigation(c, ns, s.deps.Localizer.Localize(binding.Name)),
		"Form":       form,
		"Locked":     s.locked(c, ns),
		"Reload":     notice.Reload,
	}

	if !result.OK() {
		data["Error"] = notice.Message
		data["Failed"] = result.FailedIDs()

		return c.Status(failureStatus(result)).Render(TemplateForm, data, handler.BaseLayout)
	}

	data["Success"] = notice.Message

	return c.Render(TemplateForm, data, handler.BaseLayout)
}

// binding resolves the namespace route parameter and checks access to it.
func (s *Service) binding(c *fiber.Ctx) (engine.Binding, error) {
	ns := engine.Namespace(c.Params(namespaceParam))

	binding, ok := s.deps.Schema.Binding(ns)
	if !ok {
		return engine.Binding{}, fiber.NewError(fiber.StatusNotFound, "unknown settings namespace")
	}

	if !binding.Visible(s.privileged(c)) {
		log.Warn().Str("user", auth.Username(c)).Str("namespace", string(ns)).
			Msg("User lacks permission for restricted settings")

		return engine.Binding{}, fiber.NewError(fiber.StatusForbidden, "restricted settings")
	}

	return binding, nil
}

// decode maps the posted form to setting ids. Browsers omit unchecked
// checkboxes, so absent toggles the user may write are submitted as off.
func (s *Service) decode(c *fiber.Ctx, ns engine.Namespace) (map[string]any, error) {
	flat := make(map[string]string)

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		flat[string(key)] = string(value)
	})

	values := engine.ExpandSubmission(s.deps.Schema.Module(), flat)

	defs, err := s.deps.Schema.Definitions(ns)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	privileged := s.privileged(c)

	for _, d := range defs {
		if !privileged && d.EffectiveScope() != engine.ScopeClient {
			continue
		}

		if _, ok := values[d.ID]; !ok && d.Type == engine.TypeBoolean {
			values[d.ID] = false
		}
	}

	return values, nil
}

func (s *Service) privileged(c *fiber.Ctx) bool {
	return auth.GameMaster(c)
}

// locked lists the world scoped settings of a namespace a player sees but
// may not change.
func (s *Service) locked(c *fiber.Ctx, ns engine.Namespace) []string {
	if s.privileged(c) {
		return nil
	}

	defs, _ := s.deps.Schema.Definitions(ns)

	var ids []string

	for _, d := range defs {
		if d.EffectiveScope() != engine.ScopeClient {
			ids = append(ids, d.ID)
		}
	}

	return ids
}

func (s *Service) entries(c *fiber.Ctx) []engine.MenuEntry {
	return engine.Menu(s.deps.Schema.Bindings(), s.deps.Localizer, s.privileged(c))
}

func (s *Service) navigation(c *fiber.Ctx, ns engine.Namespace, title string) *navigation.Context {
	pageTitle := title
	if pageTitle == "" {
		pageTitle = s.deps.Cfg.Title
	}

	nav := navigation.NewContext(pageTitle, section, string(ns)).
		AddBreadcrumb(s.deps.Cfg.Title, Path, ns == "")

	if ns != "" {
		nav.AddBreadcrumb(title, Path+"/"+string(ns), true)
	}

	for _, e := range s.entries(c) {
		nav.AddMenuItem(e.Title, Path+"/"+string(e.Namespace), e.Icon, string(e.Namespace))
	}

	return nav
}

func (s *Service) log(c *fiber.Ctx, r engine.Result) {
	event := log.Info()
	if !r.OK() {
		event = log.Warn()

		for _, f := range r.Failures {
			log.Error().Err(f.Err).Str("namespace", string(r.Namespace)).Str("setting", f.ID).
				Msg("failed to save setting")
		}
	}

	event.Str("user", auth.Username(c)).
		Str("namespace", string(r.Namespace)).
		Strs("applied", r.Applied).
		Str("failed", strings.Join(r.FailedIDs(), ",")).
		Bool("reload", r.RequiresReload()).
		Msg("settings submitted")
}

// failureStatus is 422 when every failure is a rejected value and 500 when
// the store failed.
func failureStatus(r engine.Result) int {
	for _, f := range r.Failures {
		if !rejected(f.Err) {
			return fiber.StatusInternalServerError
		}
	}

	return fiber.StatusUnprocessableEntity
}

func rejected(err error) bool {
	for _, target := range []error{
		engine.ErrTypeMismatch,
		engine.ErrInvalidChoice,
		engine.ErrOutOfRange,
		engine.ErrUnknownSetting,
		engine.ErrRestricted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
