// Package locate answers "where am I" with a one-shot position fix.
package locate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/oschwald/geoip2-golang"
	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"
)

// ErrUnavailable means no locator could produce a fix.
var ErrUnavailable = errors.New("location unavailable")

// Locator returns the user's position as WGS84 lon/lat.
type Locator interface {
	Locate(ctx context.Context) (orb.Point, error)
}

// Fixed always answers with the configured point.
type Fixed orb.Point

func (f Fixed) Locate(ctx context.Context) (orb.Point, error) {
	if err := ctx.Err(); err != nil {
		return orb.Point{}, err
	}
	return orb.Point(f), nil
}

// Chain asks each locator in turn and returns the first fix.
type Chain []Locator

func (c Chain) Locate(ctx context.Context) (orb.Point, error) {
	var errs []error
	for _, l := range c {
		p, err := l.Locate(ctx)
		if err == nil {
			return p, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	errs = append(errs, ErrUnavailable)
	return orb.Point{}, errors.Join(errs...)
}

// GeoIP looks the public address up in a MaxMind GeoIP2/GeoLite2 City
// database. When IP is empty, the address is discovered by asking EchoURL,
// which must answer with the caller's address as plain text.
type GeoIP struct {
	DB      *geoip2.Reader
	IP      string
	EchoURL string
	Client  *http.Client
}

// OpenGeoIP opens the database at path.
func OpenGeoIP(path, ip, echoURL string) (*GeoIP, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip db: %w", err)
	}
	return &GeoIP{DB: db, IP: ip, EchoURL: echoURL}, nil
}

func (g *GeoIP) Close() error {
	if g.DB == nil {
		return nil
	}
	return g.DB.Close()
}

func (g *GeoIP) Locate(ctx context.Context) (orb.Point, error) {
	if g.DB == nil {
		return orb.Point{}, errors.New("geoip: no database")
	}
	ipText := g.IP
	if ipText == "" {
		var err error
		ipText, err = g.discover(ctx)
		if err != nil {
			return orb.Point{}, err
		}
	}
	ip := net.ParseIP(ipText)
	if ip == nil {
		return orb.Point{}, fmt.Errorf("geoip: bad address %q", ipText)
	}
	rec, err := g.DB.City(ip)
	if err != nil {
		return orb.Point{}, fmt.Errorf("geoip lookup: %w", err)
	}
	if rec.Location.Latitude == 0 && rec.Location.Longitude == 0 {
		return orb.Point{}, fmt.Errorf("geoip: no location for %s", ipText)
	}
	log.WithField("ip", ipText).WithField("city", rec.City.Names["en"]).Debug("geoip fix")
	return orb.Point{rec.Location.Longitude, rec.Location.Latitude}, nil
}

func (g *GeoIP) discover(ctx context.Context) (string, error) {
	if g.EchoURL == "" {
		return "", errors.New("geoip: no address and no echo url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.EchoURL, nil)
	if err != nil {
		return "", err
	}
	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("geoip echo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geoip echo: %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 128))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
