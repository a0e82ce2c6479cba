package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersExposed(t *testing.T) {
	LayerToggles.WithLabelValues("shelter", "on").Inc()
	LocateTotal.WithLabelValues("error").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `overlaymap_layer_toggles_total{layer="shelter",state="on"}`)
	assert.Contains(t, string(body), `overlaymap_locate_total{result="error"}`)
}

func TestServeWithoutAddressIsNoop(t *testing.T) {
	stop := Serve("")
	stop()
}
