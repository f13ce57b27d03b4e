package auth

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/gnomegl/gitrank/internal/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, tag string, userStatus int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/gnomegl/gitrank/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name":"` + tag + `"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(userStatus)
		w.Write([]byte(`{"message":"status"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newPool(t *testing.T, server *httptest.Server, tokens ...string) *github.ClientPool {
	pool, err := github.NewClientPool(tokens, nil)
	require.NoError(t, err)
	require.NoError(t, pool.SetBaseURL(server.URL))
	return pool
}

func TestSetup_ValidToken(t *testing.T) {
	server := newServer(t, "v0.0.1", http.StatusOK)

	var buf bytes.Buffer
	assert.NoError(t, Setup(context.Background(), newPool(t, server, "good"), &buf))
}

func TestSetup_InvalidToken(t *testing.T) {
	server := newServer(t, "v0.0.1", http.StatusUnauthorized)

	err := Setup(context.Background(), newPool(t, server, "bad"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid GitHub token")
}

func TestSetup_AnonymousSkipsValidation(t *testing.T) {
	server := newServer(t, "v0.0.1", http.StatusUnauthorized)

	assert.NoError(t, Setup(context.Background(), newPool(t, server), &bytes.Buffer{}))
}

func TestCheckLatestVersion_UnknownBuildStaysQuiet(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	server := newServer(t, "v99.0.0", http.StatusOK)
	pool := newPool(t, server)

	// test binaries carry no module version
	var buf bytes.Buffer
	checkLatestVersion(context.Background(), pool.AllClients()[0].Client, &buf)
	assert.Empty(t, buf.String())
}
