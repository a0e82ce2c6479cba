package overlay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"overlaymap/internal/geom"
	"overlaymap/internal/metrics"
)

// Format selects the decoder for a dataset.
type Format string

const (
	FormatGeoJSON Format = "geojson"
	FormatCSV     Format = "csv"
	FormatKML     Format = "kml"
)

// FormatOf guesses the format from the source's extension.
func FormatOf(src string) Format {
	switch strings.ToLower(filepath.Ext(src)) {
	case ".csv":
		return FormatCSV
	case ".kml":
		return FormatKML
	}
	return FormatGeoJSON
}

// Fetcher opens a dataset source.
type Fetcher interface {
	Fetch(ctx context.Context, src string) (io.ReadCloser, error)
}

// SourceFetcher reads http(s) URLs over the network and everything else
// from disk, relative to Dir.
type SourceFetcher struct {
	Dir    string
	Client *http.Client
}

func (s SourceFetcher) Fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		client := s.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
		}
		return resp.Body, nil
	}
	p := src
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.Dir, strings.TrimPrefix(p, "/"))
	}
	return os.Open(p)
}

// LoadState tracks a store through its single load.
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "idle"
}

// Store holds the decoded features of one dataset. It loads at most once per
// session and is read-only afterwards; until the load resolves it is empty.
type Store struct {
	Name   string
	Source string
	Format Format

	fetcher Fetcher

	mu       sync.RWMutex
	state    LoadState
	features []*geom.Feature
	err      error
	done     chan struct{}
}

func NewStore(name, src string, format Format, fetcher Fetcher) *Store {
	if format == "" {
		format = FormatOf(src)
	}
	return &Store{
		Name:    name,
		Source:  src,
		Format:  format,
		fetcher: fetcher,
		done:    make(chan struct{}),
	}
}

// NewStaticStore returns an already loaded store, mostly for tests.
func NewStaticStore(name string, fs []*geom.Feature) *Store {
	s := NewStore(name, "", FormatGeoJSON, nil)
	s.state = StateLoaded
	s.features = fs
	close(s.done)
	return s
}

// Started reports whether the load has been claimed.
func (s *Store) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state != StateIdle
}

func (s *Store) State() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err is the load error, if the load failed.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Features returns the loaded features; the slice must not be modified.
func (s *Store) Features() []*geom.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.features
}

// Load fetches and decodes the dataset. Only the first call does the work;
// later and concurrent calls wait for it and return its outcome. A failed
// load leaves the store empty.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		select {
		case <-s.done:
			return s.Err()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.state = StateLoading
	s.mu.Unlock()

	start := time.Now()
	fs, err := s.fetch(ctx)
	metrics.LoadDurationMs.WithLabelValues(s.Name).Observe(float64(time.Since(start).Milliseconds()))

	s.mu.Lock()
	if err != nil {
		s.state = StateFailed
		s.err = err
	} else {
		s.state = StateLoaded
		s.features = fs
	}
	s.mu.Unlock()
	close(s.done)

	if err != nil {
		metrics.LoadFailures.WithLabelValues(s.Name).Inc()
		log.WithError(err).WithField("layer", s.Name).WithField("source", s.Source).Warn("overlay load failed")
		return err
	}
	metrics.FeaturesLoaded.WithLabelValues(s.Name).Set(float64(len(fs)))
	log.WithField("layer", s.Name).WithField("features", len(fs)).Info("overlay loaded")
	return nil
}

func (s *Store) fetch(ctx context.Context) ([]*geom.Feature, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("%s: no fetcher", s.Name)
	}
	rc, err := s.fetcher.Fetch(ctx, s.Source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	switch s.Format {
	case FormatCSV:
		return geom.LoadCSV(rc)
	case FormatKML:
		return geom.LoadKML(rc)
	case FormatGeoJSON:
		return geom.LoadGeoJSON(rc)
	}
	return nil, fmt.Errorf("%s: unsupported format %q", s.Name, s.Format)
}
