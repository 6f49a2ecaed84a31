package settings

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltagreen-vtt/dgsettings/internal/auth"
	"github.com/deltagreen-vtt/dgsettings/internal/config"
	"github.com/deltagreen-vtt/dgsettings/internal/deltagreen"
	"github.com/deltagreen-vtt/dgsettings/internal/i18n"
	engine "github.com/deltagreen-vtt/dgsettings/internal/settings"
	"github.com/deltagreen-vtt/dgsettings/internal/web/handler"
)

const (
	handlerPass = "handler-pass"
	agentPass   = "agent-pass"
)

// recordingViews is a minimal Fiber Views engine used for tests.
// It keeps the data of the last render and writes the template name.
type recordingViews struct {
	mu   sync.Mutex
	name string
	data fiber.Map
}

func (*recordingViews) Load() error { return nil }

func (v *recordingViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.name = name
	v.data, _ = data.(fiber.Map)

	_, _ = io.WriteString(w, name)

	return nil
}

func (v *recordingViews) last() (string, fiber.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.name, v.data
}

// failingStore fails writes of selected settings.
type failingStore struct {
	engine.Store
	fail map[string]bool
}

func (s failingStore) Set(ctx context.Context, key engine.Key, value any) error {
	if s.fail[key.ID] {
		return engine.ErrStoreUnavailable
	}

	return s.Store.Set(ctx, key, value)
}

type testEnv struct {
	app   *fiber.App
	views *recordingViews
	store engine.Store
	deps  handler.Dependencies
}

var (
	usersOnce sync.Once
	users     map[string]config.User
)

func testUsers(t *testing.T) map[string]config.User {
	t.Helper()

	usersOnce.Do(func() {
		handlerHash, err := auth.HashPassword(handlerPass)
		require.NoError(t, err)

		agentHash, err := auth.HashPassword(agentPass)
		require.NoError(t, err)

		users = map[string]config.User{
			"handler": {Hash: handlerHash, GameMaster: true},
			"agent":   {Hash: agentHash},
		}
	})

	return users
}

func newTestEnv(t *testing.T, failing ...string) *testEnv {
	t.Helper()

	catalog, err := i18n.New("en")
	require.NoError(t, err)

	persisted := engine.NewStore(engine.NewMemoryBackend())
	schema := deltagreen.Schema()
	require.NoError(t, engine.RegisterAll(context.Background(), persisted, schema, catalog))

	var store engine.Store = persisted
	if len(failing) > 0 {
		fail := make(map[string]bool)
		for _, id := range failing {
			fail[id] = true
		}

		store = failingStore{Store: persisted, fail: fail}
	}

	authService := auth.NewService(testUsers(t))

	deps := handler.Dependencies{
		Cfg:       &config.Config{Title: "Delta Green Settings"},
		Store:     store,
		Schema:    schema,
		Localizer: catalog,
		Auth:      authService,
		Messages: handler.Messages{
			Saved:          deltagreen.SavedKey,
			PartialFailure: deltagreen.PartialFailureKey,
			ReloadRequired: deltagreen.ReloadRequiredKey,
		},
	}

	views := &recordingViews{}
	app := fiber.New(fiber.Config{Views: views})
	app.Use(auth.BasicAuth(authService, "test"), auth.ClientContext(), auth.AddPermissionsToLocals(authService))

	s := &Service{}
	s.Init(app, deps)

	return &testEnv{app: app, views: views, store: store, deps: deps}
}

func (e *testEnv) do(t *testing.T, method, target, user, pass string, form url.Values) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	req.SetBasicAuth(user, pass)

	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func (e *testEnv) value(t *testing.T, ctx context.Context, id string) any {
	t.Helper()

	v, found, err := e.store.Get(ctx, e.deps.Schema.Key(id))
	require.NoError(t, err)

	if !found {
		return nil
	}

	return v
}

func TestMenu(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct {
		name  string
		user  string
		pass  string
		wantN int
	}{
		{name: "player sees unrestricted entries", user: "agent", pass: agentPass, wantN: 1},
		{name: "game master sees all entries", user: "handler", pass: handlerPass, wantN: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, fiber.MethodGet, Path, tc.user, tc.pass, nil)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			name, data := env.views.last()
			assert.Equal(t, TemplateMenu, name)

			entries, ok := data["Entries"].([]engine.MenuEntry)
			require.True(t, ok)
			assert.Len(t, entries, tc.wantN)
		})
	}
}

func TestGet(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct {
		name       string
		user       string
		pass       string
		target     string
		wantStatus int
		wantGroups int
	}{
		{name: "restricted form as player", user: "agent", pass: agentPass, target: Path + "/handler", wantStatus: fiber.StatusForbidden},
		{name: "restricted form as game master", user: "handler", pass: handlerPass, target: Path + "/handler", wantStatus: fiber.StatusOK, wantGroups: 4},
		{name: "open form as player", user: "agent", pass: agentPass, target: Path + "/display", wantStatus: fiber.StatusOK, wantGroups: 2},
		{name: "unknown namespace", user: "handler", pass: handlerPass, target: Path + "/ghost", wantStatus: fiber.StatusNotFound},
		{name: "wrong password", user: "handler", pass: agentPass, target: Path + "/display", wantStatus: fiber.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, fiber.MethodGet, tc.target, tc.user, tc.pass, nil)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			if tc.wantStatus != fiber.StatusOK {
				return
			}

			name, data := env.views.last()
			assert.Equal(t, TemplateForm, name)

			form, ok := data["Form"].(engine.Form)
			require.True(t, ok)
			assert.Len(t, form.Groups, tc.wantGroups)
		})
	}
}

func TestPostSaves(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.do(t, fiber.MethodPost, Path+"/handler", "handler", handlerPass, url.Values{
		"deltagreen.keepSanityPrivate":       {"on"},
		"deltagreen.skillImprovementFormula": {"1d3"},
		"othermodule.volume":                 {"11"},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, data := env.views.last()
	assert.Equal(t, "Settings saved.", data["Success"])
	assert.Equal(t, "Some changes take effect after a reload.", data["Reload"])

	assert.Equal(t, true, env.value(t, ctx, "keepSanityPrivate"))
	assert.Equal(t, "1d3", env.value(t, ctx, "skillImprovementFormula"))
	// unchecked boxes are not posted
	assert.Equal(t, false, env.value(t, ctx, "showImpossibleLandscapesContent"))

	form, ok := data["Form"].(engine.Form)
	require.True(t, ok)

	field, ok := form.Field("skillImprovementFormula")
	require.True(t, ok)
	assert.Equal(t, "1d3", field.Value)
}

func TestPostInvalidChoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.do(t, fiber.MethodPost, Path+"/handler", "handler", handlerPass, url.Values{
		"deltagreen.keepSanityPrivate":       {"on"},
		"deltagreen.skillImprovementFormula": {"1d5"},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	_, data := env.views.last()
	assert.Contains(t, data["Error"], "skillImprovementFormula")
	assert.Equal(t, []string{"skillImprovementFormula"}, data["Failed"])

	assert.Equal(t, "1d4", env.value(t, ctx, "skillImprovementFormula"))
	assert.Equal(t, true, env.value(t, ctx, "keepSanityPrivate"))
}

func TestPostStoreFailure(t *testing.T) {
	env := newTestEnv(t, "skillFailure")

	resp := env.do(t, fiber.MethodPost, Path+"/automation", "handler", handlerPass, url.Values{
		"deltagreen.skillFailure": {"on"},
	})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	_, data := env.views.last()
	assert.Equal(t, "Some settings could not be saved: skillFailure", data["Error"])
	assert.Equal(t, false, env.value(t, context.Background(), "skillFailure"))
}

func TestPostRestrictedAsPlayer(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, fiber.MethodPost, Path+"/automation", "agent", agentPass, url.Values{
		"deltagreen.skillFailure": {"on"},
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, false, env.value(t, context.Background(), "skillFailure"))
}

func TestPostClientScopedPerUser(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, fiber.MethodPost, Path+"/display", "agent", agentPass, url.Values{
		"deltagreen.sortSkills": {"on"},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	agent := engine.WithClient(context.Background(), "agent")
	handlerCtx := engine.WithClient(context.Background(), "handler")

	assert.Equal(t, true, env.value(t, agent, "sortSkills"))
	assert.Nil(t, env.value(t, handlerCtx, "sortSkills"))
}

func TestPostWorldSettingAsPlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.do(t, fiber.MethodPost, Path+"/display", "agent", agentPass, url.Values{
		"deltagreen.sortSkills":          {"on"},
		"deltagreen.characterSheetStyle": {"cowboy"},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	_, data := env.views.last()
	assert.Equal(t, []string{"characterSheetStyle"}, data["Failed"])
	assert.Equal(t, []string{"characterSheetStyle"}, data["Locked"])

	assert.Equal(t, "program", env.value(t, ctx, "characterSheetStyle"))
	assert.Equal(t, true, env.value(t, engine.WithClient(ctx, "agent"), "sortSkills"))
}

func TestPostWorldSettingAsGameMaster(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, fiber.MethodPost, Path+"/display", "handler", handlerPass, url.Values{
		"deltagreen.characterSheetStyle": {"cowboy"},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, data := env.views.last()
	assert.Nil(t, data["Locked"])
	assert.Equal(t, "cowboy", env.value(t, context.Background(), "characterSheetStyle"))
}

func TestGetLocksWorldSettingsForPlayers(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct {
		name       string
		user       string
		pass       string
		wantLocked []string
	}{
		{name: "player", user: "agent", pass: agentPass, wantLocked: []string{"characterSheetStyle"}},
		{name: "game master", user: "handler", pass: handlerPass},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, fiber.MethodGet, Path+"/display", tc.user, tc.pass, nil)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			_, data := env.views.last()

			locked, _ := data["Locked"].([]string)
			assert.Equal(t, tc.wantLocked, locked)
		})
	}
}
