package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"iblaze_backend/internal/app"
	"iblaze_backend/internal/config"
	"iblaze_backend/internal/email"
	"iblaze_backend/internal/logger"
	"iblaze_backend/internal/middleware"
	"iblaze_backend/internal/repositories"
	"iblaze_backend/pkg/apperrors"

	"github.com/stretchr/testify/require"
)

// TestServer runs the full router over the store picked with WithStore.
type TestServer struct {
	Server *httptest.Server
	Repos  *repositories.Repositories
	Mail   *email.RecordingProvider
	Config *config.Config
}

type Option func(*options)

type options struct {
	limiter middleware.Limiter
	env     string
	store   string
}

func WithLimiter(l middleware.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// WithStore selects the storage driver; "memory" is the default.
func WithStore(driver string) Option {
	return func(o *options) { o.store = driver }
}

func WithEnv(env string) Option {
	return func(o *options) { o.env = env }
}

func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.Driver = "memory"
	cfg.JWT.Secret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.Expire = 15 * time.Minute
	cfg.JWT.RefreshExpire = 24 * time.Hour
	return cfg
}

func NewTestServer(t *testing.T, opts ...Option) *TestServer {
	t.Helper()

	o := options{env: "test", store: "memory"}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := TestConfig()
	cfg.Server.Env = o.env
	cfg.Database.Driver = o.store
	logger.InitWithWriter(cfg.Server.Env, io.Discard)
	apperrors.Configure(!cfg.IsProduction())

	repos := OpenTestRepositories(t, o.store)

	// Every server starts with one admin, created the way production creates it.
	cfg.FirstAdmin.Email = UniqueEmail("first_admin")
	cfg.FirstAdmin.Password = DefaultPassword
	require.NoError(t, app.SeedFirstAdmin(context.Background(), repos.Users, cfg))

	mail := email.NewRecordingProvider()

	router, err := app.SetupRouter(cfg, app.Dependencies{Repos: repos, Mailer: mail, Limiter: o.limiter})
	require.NoError(t, err)

	ts := &TestServer{
		Server: httptest.NewServer(router),
		Repos:  repos,
		Mail:   mail,
		Config: cfg,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
}

// SendRequest sends body as JSON and returns the response with its body read.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(resBodyBytes)
}

// Envelope covers both the success and the failure response shapes.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
	Stack   string          `json:"stack"`
}

func Decode(t *testing.T, body string) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env), body)
	return env
}

// DecodeData unmarshals the data field of a success envelope into out.
func DecodeData(t *testing.T, body string, out interface{}) Envelope {
	t.Helper()
	env := Decode(t, body)
	require.True(t, env.Success, body)
	require.NoError(t, json.Unmarshal(env.Data, out), body)
	return env
}
