//go:build !js

package asset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	body := pngBytes(t, 1, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sheet.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5 * time.Second)

	b, err := f.Fetch(context.Background(), srv.URL+"/sheet.png")
	require.NoError(t, err)
	assert.Equal(t, body, b)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
