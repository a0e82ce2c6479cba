package overlay

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shelterDoc = `{"type":"FeatureCollection","features":[
 {"type":"Feature","geometry":{"type":"Point","coordinates":[10.75,59.91]},"properties":{"romnr":1,"plasser":400,"adresse":"Storgata 1"}}]}`

type countingFetcher struct {
	calls atomic.Int32
	body  string
	err   error
}

func (c *countingFetcher) Fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return io.NopCloser(strings.NewReader(c.body)), nil
}

func TestStoreLoadsOnce(t *testing.T) {
	f := &countingFetcher{body: shelterDoc}
	s := NewStore("shelter", "shelter.geojson", "", f)
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.Features())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Load(context.Background()))
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, f.calls.Load())
	assert.Equal(t, StateLoaded, s.State())
	assert.Len(t, s.Features(), 1)
}

func TestStoreFailureLeavesLayerEmpty(t *testing.T) {
	boom := errors.New("boom")
	s := NewStore("district", "district.json", "", &countingFetcher{err: boom})
	assert.ErrorIs(t, s.Load(context.Background()), boom)
	assert.Equal(t, StateFailed, s.State())
	assert.Empty(t, s.Features())
	assert.ErrorIs(t, s.Load(context.Background()), boom)
}

func TestStoreEmptyCollectionIsLoaded(t *testing.T) {
	s := NewStore("district", "district.json", "", &countingFetcher{body: `{"type":"FeatureCollection","features":[]}`})
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, StateLoaded, s.State())
	assert.NoError(t, s.Err())
	assert.Empty(t, s.Features())
}

func TestSourceFetcherFileAndHTTP(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shelter.geojson"), []byte(shelterDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shelter.csv"), []byte("lat,lon,adresse\n59.9,10.7,Torget\n"), 0o644))

	fetcher := SourceFetcher{Dir: dir}
	s := NewStore("shelter", "/shelter.geojson", "", fetcher)
	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Features(), 1)

	csv := NewStore("shelter-csv", "shelter.csv", "", fetcher)
	assert.Equal(t, FormatCSV, csv.Format)
	require.NoError(t, csv.Load(context.Background()))
	assert.Equal(t, "Torget", csv.Features()[0].String("adresse"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shelter.geojson" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, shelterDoc)
	}))
	defer srv.Close()

	remote := NewStore("remote", srv.URL+"/shelter.geojson", "", fetcher)
	require.NoError(t, remote.Load(context.Background()))
	assert.Len(t, remote.Features(), 1)

	missing := NewStore("missing", srv.URL+"/nope.json", "", fetcher)
	assert.Error(t, missing.Load(context.Background()))
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatGeoJSON, FormatOf("kommuner.json"))
	assert.Equal(t, FormatGeoJSON, FormatOf("https://example.org/shelter.geojson"))
	assert.Equal(t, FormatCSV, FormatOf("shelter.CSV"))
	assert.Equal(t, FormatKML, FormatOf("tilfluktsrom.kml"))
}
