package daemon

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltagreen-vtt/dgsettings/internal/auth"
	"github.com/deltagreen-vtt/dgsettings/internal/config"
	"github.com/deltagreen-vtt/dgsettings/internal/logger"
)

const handlerPass = "handler-pass"

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	hash, err := auth.HashPassword(handlerPass)
	require.NoError(t, err)

	return &config.Config{
		Title:  "Delta Green Settings",
		Module: config.Module{Locale: "en"},
		Store:  config.Store{Backend: config.BackendMemory},
		Log: logger.Log{
			LogLevel:    "error",
			AppName:     "dgsettings",
			ServiceName: "dgsettings-test",
		},
		Webserver: config.Webserver{Port: 8080, URL: "http://localhost:8080", ShutDownTime: 1},
		Users: map[string]config.User{
			"handler": {Hash: hash, GameMaster: true},
		},
		Submit: config.Submit{Concurrency: 2},
	}
}

func do(t *testing.T, d *Daemon, method, target string, form url.Values) (int, string) {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	req.SetBasicAuth("handler", handlerPass)

	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := d.Web().App.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(b)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrConfigNil)
}

func TestNew_Backends(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(t *testing.T, cfg *config.Config)
		wantErr error
	}{
		{
			name:   "memory",
			modify: func(*testing.T, *config.Config) {},
		},
		{
			name: "sql on sqlite",
			modify: func(t *testing.T, cfg *config.Config) {
				t.Helper()

				cfg.Store.Backend = config.BackendSQL
				cfg.DB = config.DB{Driver: "sqlite", Name: filepath.Join(t.TempDir(), "settings.db")}
			},
		},
		{
			name: "kv on sqlite",
			modify: func(_ *testing.T, cfg *config.Config) {
				cfg.Store.Backend = config.BackendKV
				cfg.DB = config.DB{Driver: "sqlite", Name: "unused.db"}
			},
			wantErr: errUnsupportedKV,
		},
		{
			name: "unknown backend",
			modify: func(_ *testing.T, cfg *config.Config) {
				cfg.Store.Backend = "redis"
			},
			wantErr: ErrUnknownBackend,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t)
			tc.modify(t, cfg)

			d, err := New(cfg)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			t.Cleanup(d.Close)

			status, body := do(t, d, http.MethodGet, "/settings/handler", nil)
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, `name="deltagreen.skillImprovementFormula"`)
		})
	}
}

func TestDaemon_RendersMenu(t *testing.T) {
	d, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(d.Close)

	status, body := do(t, d, http.MethodGet, "/settings", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `href="/settings/automation"`)
	assert.Contains(t, body, `href="/settings/display"`)
	assert.Contains(t, body, `handler <span class="badge">Game Master</span>`)
}

func TestDaemon_SubmitRoundTrip(t *testing.T) {
	d, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(d.Close)

	status, body := do(t, d, http.MethodPost, "/settings/handler", url.Values{
		"deltagreen.keepSanityPrivate":       {"on"},
		"deltagreen.skillImprovementFormula": {"1d4-1"},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Settings saved.")
	assert.Contains(t, body, "Some changes take effect after a reload.")

	status, body = do(t, d, http.MethodPost, "/settings/handler", url.Values{
		"deltagreen.skillImprovementFormula": {"1d100"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "Some settings could not be saved")
	assert.Contains(t, body, `<option value="1d4-1" selected>`)
}

func TestDaemon_CheckAliveWithoutAuth(t *testing.T) {
	d, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(d.Close)

	resp, err := d.Web().App.Test(httptest.NewRequest(http.MethodGet, "/checkalive", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
