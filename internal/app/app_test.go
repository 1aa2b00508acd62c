package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/samvad-hq/quill/internal/config"
	"github.com/samvad-hq/quill/internal/logger"
	"github.com/samvad-hq/quill/internal/router"
	"github.com/samvad-hq/quill/internal/storage"
	"github.com/samvad-hq/quill/pkg/httpclient"
)

type stubResponse struct {
	code int
	body []byte
}

func (s stubResponse) Body() []byte        { return s.body }
func (s stubResponse) StatusCode() int     { return s.code }
func (s stubResponse) Status() string      { return http.StatusText(s.code) }
func (s stubResponse) Header() http.Header { return http.Header{} }

type capturingTransport struct {
	reqs []*httpclient.Request
}

func (c *capturingTransport) Do(_ context.Context, req *httpclient.Request) (httpclient.Response, error) {
	c.reqs = append(c.reqs, req)
	return stubResponse{code: http.StatusOK, body: []byte(`{"article":{"slug":"a"}}`)}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		APIBaseURL:          "http://api.test/api/",
		RequestTimeout:      time.Second,
		TokenStoreType:      "memory",
		TokenTTL:            time.Hour,
		NotificationTimeout: time.Second,
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil, logger.NopLogger{}); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestNewRejectsUnknownStore(t *testing.T) {
	cfg := testConfig()
	cfg.TokenStoreType = "redis"
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for unknown store type")
	}
}

func TestTokensReadStoreOnEveryRequest(t *testing.T) {
	transport := &capturingTransport{}
	a, err := New(testConfig(), nil, WithTransport(transport))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	a.Articles.FetchArticle(context.Background(), "a")
	if err := a.Store.SaveToken("jwt"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	a.Articles.FetchArticle(context.Background(), "a")

	if len(transport.reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(transport.reqs))
	}
	if got := transport.reqs[0].Headers["Authorization"]; got != "" {
		t.Fatalf("expected no auth header before login, got %q", got)
	}
	if got := transport.reqs[1].Headers["Authorization"]; got != "Bearer jwt" {
		t.Fatalf("unexpected auth header %q", got)
	}
	if got := transport.reqs[1].URL; got != "http://api.test/api/articles/a" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestRouterFollowsStoredToken(t *testing.T) {
	store, err := storage.NewStore("memory", "", storage.Options{})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	a, err := New(testConfig(), nil, WithStore(store), WithTransport(&capturingTransport{}))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	m, err := a.Router.Navigate("/articles/create")
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if m.Route.Name != router.RouteLogin {
		t.Fatalf("expected login redirect, got %q", m.Route.Name)
	}

	if err := store.SaveToken("jwt"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	m, err = a.Router.Navigate("/articles/create")
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if m.Route.Name != router.RouteNewArticle {
		t.Fatalf("expected new article route, got %q", m.Route.Name)
	}
}

func TestCloseIsSafeOnNil(t *testing.T) {
	var a *App
	if err := a.Close(); err != nil {
		t.Fatalf("close nil app: %v", err)
	}
}
