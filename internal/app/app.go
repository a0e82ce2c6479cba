// Package app owns every long-lived object of the viewer. They are built
// once from configuration and handed to the UI; nothing lives at package
// scope, so each App (and each test) starts from fresh state.
package app

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"

	"overlaymap/internal/config"
	"overlaymap/internal/locate"
	"overlaymap/internal/overlay"
)

type App struct {
	Config     config.Config
	Registry   *overlay.Registry
	Dispatcher *overlay.Dispatcher
	Controls   []*overlay.Control
	Locator    locate.Locator

	closers []io.Closer
	unwatch func()
}

// New builds layers, stores and controls for every configured overlay.
func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{
		Config:     cfg,
		Registry:   overlay.NewRegistry(),
		Dispatcher: overlay.NewDispatcher(),
	}
	fetcher := overlay.SourceFetcher{Dir: cfg.DataDir, Client: &http.Client{}}
	for _, def := range cfg.Overlays {
		l, err := overlay.NewLayer(def, fetcher)
		if err != nil {
			return nil, err
		}
		a.Controls = append(a.Controls, overlay.NewControl(l, a.Registry, a.Dispatcher, cfg.HitTolerance))
	}
	a.Locator = a.buildLocator()
	a.unwatch = a.Registry.OnChange(func(ls []*overlay.Layer) {
		ids := make([]string, len(ls))
		for i, l := range ls {
			ids[i] = l.ID
		}
		log.WithField("layers", ids).Debug("active layers changed")
	})
	return a, nil
}

func (a *App) buildLocator() locate.Locator {
	var chain locate.Chain
	if p := a.Config.Locate.Fixed; p != nil {
		chain = append(chain, locate.Fixed(orb.Point{p[0], p[1]}))
	}
	if db := a.Config.Locate.GeoIPDB; db != "" {
		g, err := locate.OpenGeoIP(db, a.Config.Locate.IP, a.Config.Locate.EchoURL)
		if err != nil {
			log.WithError(err).Warn("geoip locator disabled")
		} else {
			a.closers = append(a.closers, g)
			chain = append(chain, g)
		}
	}
	return chain
}

// Start applies the configured initial checkbox states and returns the
// layers whose stores should load now: every eager layer, plus lazy layers
// that start enabled.
func (a *App) Start() []*overlay.Layer {
	var load []*overlay.Layer
	for i, c := range a.Controls {
		lazyLoad := false
		if a.Config.Overlays[i].Enabled {
			lazyLoad = c.SetChecked(true)
		}
		if !c.Layer.Lazy || lazyLoad {
			load = append(load, c.Layer)
		}
	}
	return load
}

// Control finds the control for a layer id.
func (a *App) Control(id string) (*overlay.Control, bool) {
	for _, c := range a.Controls {
		if c.Layer.ID == id {
			return c, true
		}
	}
	return nil, false
}

// LoadContext bounds a single store load.
func (a *App) LoadContext() (context.Context, context.CancelFunc) {
	if a.Config.LoadTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), a.Config.LoadTimeout)
}

// Close tears down every control, enabled or not, then releases resources.
func (a *App) Close() error {
	for _, c := range a.Controls {
		c.Close()
	}
	if a.unwatch != nil {
		a.unwatch()
	}
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
