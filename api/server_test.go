package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/api"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/api/responses"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/chain"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/config"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/fetch"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/filestore"
)

// Deterministic failure rolls: the injected rate is 0.1, so a draw above it
// succeeds and a draw below it fails.
func succeedRoll() float64 { return 0.99 }
func failRoll() float64    { return 0.01 }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Log: config.LogConfig{Level: "debug", Format: "console"},
		Demo: config.DemoConfig{
			FetchDelay:  5 * time.Millisecond,
			FailureRate: 0.1,
			User:        config.UserConfig{ID: 1, Name: "John Doe"},
		},
		Files: config.FilesConfig{
			PublicDir: t.TempDir(),
			DataDir:   t.TempDir(),
			DemoFile:  "demo.txt",
		},
	}
}

// helper to set up a server with short delays and a fixed failure roll
func newTestServer(t *testing.T, cfg *config.Config, roll func() float64) *api.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()

	user := cfg.UserRecord()
	fetcher := fetch.New(user, cfg.Demo.FetchDelay, cfg.Demo.FailureRate, logger, fetch.WithRoll(roll))
	files, err := filestore.New(cfg.Files.DataDir, cfg.Files.DemoFile, logger)
	require.NoError(t, err)

	steps := []chain.Step{
		{Action: "login", Message: "User logged in successfully", DelayMS: 2},
		{Action: "fetch_data", Message: "User data fetched successfully", DelayMS: 2},
		{Action: "render", Message: "Page rendered successfully", DelayMS: 2},
	}
	pipeline := chain.New(steps, user, logger)

	return api.NewServer(logger, cfg, fetcher, files, pipeline)
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	router := newTestServer(t, testConfig(t), succeedRoll).Router()

	w := doGet(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp responses.IndexResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Maryan Farah", resp.Author)
	assert.Len(t, resp.Endpoints, 5)
	assert.NotEmpty(t, resp.Message)
	assert.NotEmpty(t, resp.Instructions)
}

func TestHealthCheck(t *testing.T) {
	router := newTestServer(t, testConfig(t), succeedRoll).Router()

	w := doGet(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestUnknownPathReturns404(t *testing.T) {
	router := newTestServer(t, testConfig(t), succeedRoll).Router()

	w := doGet(router, "/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp responses.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Not Found", resp.Error)
	assert.Equal(t,
		[]string{"/", "/callback", "/promise", "/async", "/file", "/chain"},
		resp.AvailableEndpoints)
}

func TestWrongMethodReturns404(t *testing.T) {
	router := newTestServer(t, testConfig(t), succeedRoll).Router()

	req, _ := http.NewRequest(http.MethodPost, "/callback", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp responses.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "POST")
	assert.Len(t, resp.AvailableEndpoints, 6)
}

func TestStaticFileServed(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.Files.PublicDir, "hello.txt"), []byte("static works"), 0o644))
	router := newTestServer(t, cfg, succeedRoll).Router()

	w := doGet(router, "/hello.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "static works")
}

func TestStaticFileTraversalBlocked(t *testing.T) {
	parent := t.TempDir()
	public := filepath.Join(parent, "public")
	require.NoError(t, os.MkdirAll(public, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(parent, "secret.txt"), []byte("not yours"), 0o644))

	cfg := testConfig(t)
	cfg.Files.PublicDir = public
	router := newTestServer(t, cfg, succeedRoll).Router()

	w := doGet(router, "/../secret.txt")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "not yours")
}

func TestPanicRecoveredAsEnvelope(t *testing.T) {
	router := newTestServer(t, testConfig(t), succeedRoll).Router()
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := doGet(router, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp responses.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal Server Error", resp.Error)
	assert.Contains(t, resp.Message, "kaboom")
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestServer(t, testConfig(t), succeedRoll).Router()

	w := doGet(router, "/health")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "client-supplied-id", w.Header().Get("X-Request-ID"))
}

func TestMetricsExposition(t *testing.T) {
	router := newTestServer(t, testConfig(t), succeedRoll).Router()

	// A demo hit first, so the counter series exists.
	doGet(router, "/callback")

	w := doGet(router, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lab2_demo_requests_total")
}

func TestServerShutdown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = 0
	srv := newTestServer(t, cfg, succeedRoll)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.ErrorIs(t, <-errCh, http.ErrServerClosed)
}
