package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltagreen-vtt/dgsettings/internal/config"
)

func TestDialector(t *testing.T) {
	testCases := []struct {
		driver  string
		want    string
		wantErr error
	}{
		{driver: "mysql", want: "mysql"},
		{driver: "postgres", want: "postgres"},
		{driver: "sqlite", want: "sqlite"},
		{driver: "oracle", wantErr: ErrUnsupportedDriver},
	}

	for _, tc := range testCases {
		t.Run(tc.driver, func(t *testing.T) {
			cfg := &config.Config{DB: config.DB{Driver: tc.driver, Host: "localhost", Port: 5432, Name: "dg"}}

			d, err := Dialector(cfg)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Name())
		})
	}
}

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{DB: config.DB{Driver: "sqlite", Name: filepath.Join(t.TempDir(), "dg.db")}}

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)
}
