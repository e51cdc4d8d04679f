package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFeedFile writes feed content to a temp file and returns its path.
func WriteFeedFile(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feed.json")
	require.NoError(t, os.WriteFile(path, content, 0o600), "failed to write feed file")
	return path
}

// ServeFeed serves feed content over HTTP and counts the requests it receives.
// The server is closed when the test ends.
func ServeFeed(t *testing.T, content []byte) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	hits := new(atomic.Int64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write(content)
	}))
	t.Cleanup(srv.Close)

	return srv, hits
}
