package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltagreen-vtt/dgsettings/internal/logger"
)

var errTest = errors.New("a test error")

func TestInit(t *testing.T) {
	testCases := []struct {
		name       string
		cfg        logger.Log
		wantErr    error
		wantOutput bool
		wantJSON   bool
	}{
		{
			name:    "missing service name",
			cfg:     logger.Log{LogLevel: "info", AppName: "dgsettings"},
			wantErr: logger.ErrServiceNameIsEmpty,
		},
		{
			name:    "missing app name",
			cfg:     logger.Log{LogLevel: "info", ServiceName: "dgsettings"},
			wantErr: logger.ErrAppNameIsEmpty,
		},
		{
			name: "no writer enabled",
			cfg:  logger.Log{LogLevel: "info", ServiceName: "test", AppName: "test"},
		},
		{
			name: "console json",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			wantOutput: true,
			wantJSON:   true,
		},
		{
			name: "console writer trace with caller",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			wantOutput: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := captureInit(t, tc.cfg)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)

			if !tc.wantOutput {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			if tc.wantJSON {
				for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
					var entry map[string]any
					require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
					assert.Equal(t, "test", entry["app"])
				}
			}
		})
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestInitUnknownLevel(t *testing.T) {
	err := logger.Init(logger.Log{LogLevel: "loud", ServiceName: "test", AppName: "test"})
	require.Error(t, err)
}

func TestRollingFiles(t *testing.T) {
	dir := t.TempDir()

	err := logger.Init(logger.Log{
		LogLevel:    "info",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled: true,
			Path:    dir,
			Info:    logger.RollingFile{Name: "info.log", MaxSize: 1},
			Error:   logger.RollingFile{Name: "error.log", MaxSize: 1},
			Warn:    logger.RollingFile{Name: "warn.log", MaxSize: 1},
			Trace:   logger.RollingFile{Name: "trace.log", MaxSize: 1},
		},
	})
	require.NoError(t, err)

	log.Info().Msg("settings namespace registered")
	log.Error().Err(errTest).Msg("write failed")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "settings namespace registered")
	assert.NotContains(t, string(info), "write failed")

	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errs), "write failed")
}

func TestLevelWriterSkipsMissingWriter(t *testing.T) {
	var buf bytes.Buffer

	lw := &logger.LevelWriter{InfoWriter: &buf}

	n, err := lw.WriteLevel(zerolog.WarnLevel, []byte("dropped"))
	require.NoError(t, err)
	assert.Equal(t, len("dropped"), n)

	_, err = lw.WriteLevel(zerolog.DebugLevel, []byte("kept"))
	require.NoError(t, err)
	assert.Equal(t, "kept", buf.String())
}

func captureInit(t *testing.T, cfg logger.Log) (string, error) {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	errInit := logger.Init(cfg)
	if errInit == nil {
		log.Info().Msg("this info message should be seen")
		log.Error().Err(errTest).Msg("this err message should be seen")
		log.Trace().Err(errTest).Msg("this trace message should be seen")
	}

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	return <-outC, errInit
}
