// Package config holds the settings of the manifoldd daemon.
//
// Settings start from Default and are overridden field by field by an
// optional YAML file; a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned by Validate (and Load) for out-of-range
// values.
var ErrInvalidSettings = errors.New("config: invalid settings")

// Settings is the daemon configuration.
type Settings struct {
	Server     ServerSettings     `yaml:"server"`
	Simulation SimulationSettings `yaml:"simulation"`
	Log        LogSettings        `yaml:"log"`
}

// ServerSettings configures the websocket endpoint.
type ServerSettings struct {
	Addr string `yaml:"addr"`
	Path string `yaml:"path"`
	// BroadcastInterval is the time between frames sent to clients.
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
}

// SimulationSettings configures the fixed-step loop.
type SimulationSettings struct {
	// Scene is the path of the YAML world description; empty selects the
	// built-in three-chart cycle.
	Scene string `yaml:"scene"`
	// TickRate is the number of fixed steps per second.
	TickRate float64 `yaml:"tick_rate"`
	// HitPolicy is "first" or "closest".
	HitPolicy string `yaml:"hit_policy"`
	// RouteDepth caps portal routes; 0 means unlimited.
	RouteDepth int `yaml:"route_depth"`
}

// LogSettings configures the daemon's slog handler.
type LogSettings struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:              ":8080",
			Path:              "/ws",
			BroadcastInterval: 100 * time.Millisecond,
		},
		Simulation: SimulationSettings{
			TickRate:  60,
			HitPolicy: "first",
		},
		Log: LogSettings{Level: "info"},
	}
}

// Load returns Default overridden by the YAML file at path. A missing file
// yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return s, s.Validate()
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	switch {
	case s.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidSettings)
	case !strings.HasPrefix(s.Server.Path, "/"):
		return fmt.Errorf("%w: server.path %q must start with /", ErrInvalidSettings, s.Server.Path)
	case s.Server.BroadcastInterval <= 0:
		return fmt.Errorf("%w: server.broadcast_interval must be positive", ErrInvalidSettings)
	case s.Simulation.TickRate <= 0:
		return fmt.Errorf("%w: simulation.tick_rate must be positive", ErrInvalidSettings)
	case s.Simulation.RouteDepth < 0:
		return fmt.Errorf("%w: simulation.route_depth is negative", ErrInvalidSettings)
	}
	if s.Simulation.HitPolicy != "first" && s.Simulation.HitPolicy != "closest" {
		return fmt.Errorf("%w: simulation.hit_policy %q", ErrInvalidSettings, s.Simulation.HitPolicy)
	}
	if _, err := s.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogSettings) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log.level %q", ErrInvalidSettings, l.Level)
	}
	return lvl, nil
}
