package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatopia/config"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifoldd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_Valid(t *testing.T) {
	s := config.Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, 60.0, s.Simulation.TickRate)
	lvl, err := s.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), s)

	s, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), s)
}

func TestLoad_Overrides(t *testing.T) {
	path := write(t, `
server:
  addr: 127.0.0.1:9000
  broadcast_interval: 250ms
simulation:
  tick_rate: 30
  hit_policy: closest
log:
  level: debug
`)
	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", s.Server.Addr)
	assert.Equal(t, "/ws", s.Server.Path, "unset fields keep defaults")
	assert.Equal(t, 250*time.Millisecond, s.Server.BroadcastInterval)
	assert.Equal(t, 30.0, s.Simulation.TickRate)
	assert.Equal(t, "closest", s.Simulation.HitPolicy)
	lvl, _ := s.Log.SlogLevel()
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(write(t, "server: [oops"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalidSettings)

	_, err = config.Load(write(t, "simulation:\n  tick_rate: -1\n"))
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*config.Settings){
		"empty addr":     func(s *config.Settings) { s.Server.Addr = "" },
		"relative path":  func(s *config.Settings) { s.Server.Path = "ws" },
		"zero interval":  func(s *config.Settings) { s.Server.BroadcastInterval = 0 },
		"zero tick rate": func(s *config.Settings) { s.Simulation.TickRate = 0 },
		"negative depth": func(s *config.Settings) { s.Simulation.RouteDepth = -1 },
		"bad policy":     func(s *config.Settings) { s.Simulation.HitPolicy = "nearest" },
		"bad level":      func(s *config.Settings) { s.Log.Level = "loud" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := config.Default()
			mutate(&s)
			assert.ErrorIs(t, s.Validate(), config.ErrInvalidSettings)
		})
	}
}
