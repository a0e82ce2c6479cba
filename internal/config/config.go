// Package config loads viewer settings from defaults, an optional YAML
// file, a .env file and OVERLAYMAP_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"overlaymap/internal/overlay"
)

type View struct {
	Center [2]float64 `yaml:"center"` // lon, lat
	Zoom   float64    `yaml:"zoom"`
}

type Locate struct {
	Zoom    float64       `yaml:"zoom"`
	Timeout time.Duration `yaml:"timeout"`
	// Fixed, when set, is answered before any network lookup.
	Fixed   *[2]float64 `yaml:"fixed,omitempty"`
	GeoIPDB string      `yaml:"geoip_db,omitempty"`
	IP      string      `yaml:"ip,omitempty"`
	EchoURL string      `yaml:"echo_url,omitempty"`
}

type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type Config struct {
	DataDir      string               `yaml:"data_dir"`
	LoadTimeout  time.Duration        `yaml:"load_timeout"`
	HitTolerance float64              `yaml:"hit_tolerance"`
	MetricsAddr  string               `yaml:"metrics_addr,omitempty"`
	View         View                 `yaml:"view"`
	Locate       Locate               `yaml:"locate"`
	Log          Log                  `yaml:"log"`
	Overlays     []overlay.Definition `yaml:"overlays"`
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{
		DataDir:      "public",
		LoadTimeout:  30 * time.Second,
		HitTolerance: overlay.DefaultHitTolerance,
		View:         View{Center: [2]float64{10.75, 59.91}, Zoom: 5},
		Locate: Locate{
			Zoom:    12,
			Timeout: 5 * time.Second,
			EchoURL: "https://api.ipify.org",
		},
		Log:      Log{File: "overlaymap.log", Level: "info"},
		Overlays: overlay.DefaultDefinitions(),
	}
}

// Load reads path over the defaults; an empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv loads envFile (if present) and applies OVERLAYMAP_* overrides.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if v := os.Getenv("OVERLAYMAP_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("OVERLAYMAP_METRICS_ADDR"); v != "" {
		c.MetricsAddr = v
	}
	if v := os.Getenv("OVERLAYMAP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("OVERLAYMAP_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("OVERLAYMAP_GEOIP_DB"); v != "" {
		c.Locate.GeoIPDB = v
	}
	if v := os.Getenv("OVERLAYMAP_IP"); v != "" {
		c.Locate.IP = v
	}
	if v := os.Getenv("OVERLAYMAP_LOCATION"); v != "" {
		p, err := ParseLatLon(v)
		if err != nil {
			return fmt.Errorf("OVERLAYMAP_LOCATION: %w", err)
		}
		c.Locate.Fixed = &p
	}
	return nil
}

// Validate rejects configurations the viewer cannot start with.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Overlays))
	for i, o := range c.Overlays {
		id := o.ID
		if id == "" {
			id = string(o.Kind)
		}
		if id == "" {
			return fmt.Errorf("overlay #%d: missing id and kind", i+1)
		}
		if seen[id] {
			return fmt.Errorf("overlay %q: duplicate id", id)
		}
		seen[id] = true
		if o.Source == "" {
			return fmt.Errorf("overlay %q: missing source", id)
		}
	}
	if c.Locate.Zoom < 0 || c.View.Zoom < 0 {
		return errors.New("zoom must not be negative")
	}
	return nil
}

// ParseLatLon parses "lat,lon" (the order people type) into a lon/lat pair.
func ParseLatLon(s string) ([2]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]float64{}, fmt.Errorf("want \"lat,lon\", got %q", s)
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return [2]float64{}, fmt.Errorf("want \"lat,lon\", got %q", s)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return [2]float64{}, fmt.Errorf("out of range: %q", s)
	}
	return [2]float64{lon, lat}, nil
}
