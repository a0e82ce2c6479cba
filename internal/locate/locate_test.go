package locate

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failing struct{ err error }

func (f failing) Locate(context.Context) (orb.Point, error) { return orb.Point{}, f.err }

func TestFixed(t *testing.T) {
	p, err := Fixed{10.75, 59.91}.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, orb.Point{10.75, 59.91}, p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Fixed{1, 2}.Locate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChain(t *testing.T) {
	denied := errors.New("denied")
	p, err := Chain{failing{denied}, Fixed{5.32, 60.39}}.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, orb.Point{5.32, 60.39}, p)

	_, err = Chain{failing{denied}}.Locate(context.Background())
	assert.ErrorIs(t, err, denied)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = Chain{}.Locate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGeoIPWithoutDatabase(t *testing.T) {
	_, err := (&GeoIP{}).Locate(context.Background())
	assert.Error(t, err)

	_, err = OpenGeoIP("does-not-exist.mmdb", "", "")
	assert.Error(t, err)
}

func TestGeoIPDiscover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, " 203.0.113.7\n")
	}))
	defer srv.Close()

	g := &GeoIP{EchoURL: srv.URL}
	ip, err := g.discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)

	_, err = (&GeoIP{}).discover(context.Background())
	assert.Error(t, err)
}
