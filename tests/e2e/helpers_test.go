package e2e

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// postQuery sends a /getdata request and returns the status and raw body.
func postQuery(t *testing.T, s *Services, body string) (int, string) {
	t.Helper()

	resp, err := http.Post(s.HTTP.URL+"/getdata", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}
