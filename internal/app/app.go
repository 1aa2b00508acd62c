package app

import (
	"fmt"

	"github.com/samvad-hq/quill/internal/config"
	"github.com/samvad-hq/quill/internal/datefmt"
	"github.com/samvad-hq/quill/internal/logger"
	"github.com/samvad-hq/quill/internal/router"
	"github.com/samvad-hq/quill/internal/storage"
	"github.com/samvad-hq/quill/internal/ui"
	"github.com/samvad-hq/quill/pkg/articles"
	"github.com/samvad-hq/quill/pkg/httpclient"
)

// App represents the client runtime. It owns the token store and wires the
// request client, article service, notifier and router around it.
type App struct {
	Config   *config.Config
	Log      logger.Logger
	Store    storage.Store
	Client   *httpclient.RequestClient
	Articles *articles.Service
	Notifier *ui.Notifier
	Router   *router.Router
	Dates    datefmt.Formatter
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	transport httpclient.Transport
	store     storage.Store
}

// WithTransport replaces the resty transport, mainly for tests.
func WithTransport(t httpclient.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithStore replaces the configured token store.
func WithStore(s storage.Store) Option {
	return func(o *options) { o.store = s }
}

// New builds an App runtime from config.
func New(cfg *config.Config, log logger.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	store := o.store
	if store == nil {
		var err error
		store, err = storage.NewStore(cfg.TokenStoreType, cfg.TokenStorePath, storage.Options{
			TokenTTL: cfg.TokenTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("init token store: %w", err)
		}
	}
	log.DebugObj("token store initialized", "storage_config", map[string]any{
		"type":              cfg.TokenStoreType,
		"path":              cfg.TokenStorePath,
		"token_ttl_seconds": int(cfg.TokenTTL.Seconds()),
	})

	a := &App{
		Config:   cfg,
		Log:      log,
		Store:    store,
		Dates:    datefmt.New(nil),
		Notifier: ui.NewNotifier(ui.WithDefaultTimeout(cfg.NotificationTimeout)),
	}

	transport := o.transport
	if transport == nil {
		rc := httpclient.NewRestyClient(cfg.RequestTimeout)
		if logger.S != nil {
			rc.WithLogger(logger.S)
		}
		transport = rc
	}
	a.Client = httpclient.NewRequestClient(transport, a.Tokens(), log)

	svc, err := articles.NewService(cfg.APIBaseURL, a.Client)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init articles service: %w", err)
	}
	a.Articles = svc

	rt, err := router.NewDefault(a.Tokens())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init router: %w", err)
	}
	a.Router = rt

	return a, nil
}

// Tokens returns a provider that reads the stored token on every call.
// Store failures are logged and treated as "no token".
func (a *App) Tokens() httpclient.TokenFunc {
	return func() string {
		if a == nil || a.Store == nil {
			return ""
		}
		tok, ok, err := a.Store.Token()
		if err != nil {
			a.Log.WarnObj("token lookup failed", "error", err.Error())
			return ""
		}
		if !ok {
			return ""
		}
		return tok
	}
}

// Close releases the notifier timers and the token store.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.Notifier != nil {
		a.Notifier.Close()
	}
	if a.Store == nil {
		return nil
	}
	if err := a.Store.Close(); err != nil {
		a.Log.ErrorObj("token store close failed", "error", err.Error())
		return fmt.Errorf("close token store: %w", err)
	}
	return nil
}
