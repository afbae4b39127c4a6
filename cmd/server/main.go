package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/contact-card/internal/http/health"
	"github.com/janisto/contact-card/internal/http/v1/routes"
	"github.com/janisto/contact-card/internal/platform/config"
	"github.com/janisto/contact-card/internal/platform/firebase"
	applog "github.com/janisto/contact-card/internal/platform/logging"
	appmiddleware "github.com/janisto/contact-card/internal/platform/middleware"
	"github.com/janisto/contact-card/internal/platform/respond"
	"github.com/janisto/contact-card/internal/screen"
	"github.com/janisto/contact-card/internal/service/profile"
	"github.com/janisto/contact-card/internal/service/qr"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	apiPrefix = "/v1"
	docsPath  = "/api-docs"
)

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(context.Background(), "invalid configuration", err)
	}
	if !applog.SetLevel(cfg.LogLevel) {
		applog.LogWarn(context.Background(), "unknown log level, keeping info", zap.String("level", cfg.LogLevel))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		applog.LogError(context.Background(), "server failed", err)
		os.Exit(1)
	}
	applog.LogInfo(context.Background(), "server exited")
}

// run serves the screen until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			applog.LogError(context.Background(), "store close error", err)
		}
	}()

	renderer, err := qr.NewRenderer(cfg.QR.Size)
	if err != nil {
		return err
	}
	scr := screen.New(store, renderer, screen.WithNotifier(screen.NotifierFunc(logAck)))
	scr.Mount(ctx)

	srv := newHTTPServer(cfg.Server.Addr(), newRouter(cfg, scr))

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening",
			zap.String("addr", srv.Addr),
			zap.String("backend", cfg.Store.Backend),
			zap.String("version", Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	select {
	case err := <-listenErr:
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	return nil
}

// newStore opens the configured backend. The returned func releases its client.
func newStore(ctx context.Context, cfg *config.Config) (profile.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendFile:
		store, err := profile.NewFileStore(cfg.Store.DataDir, cfg.Store.Key)
		if err != nil {
			return nil, nil, err
		}
		applog.LogInfo(ctx, "using file store", zap.String("path", store.Path()))
		return store, noop, nil

	case config.BackendRedis:
		client, err := profile.NewRedisClient(ctx, cfg.Store.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return profile.NewRedisStore(client, cfg.Store.Key), client.Close, nil

	case config.BackendFirestore:
		clients, err := firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:       cfg.Firebase.ProjectID,
			CredentialsFile: cfg.Firebase.CredentialsFile,
		})
		if err != nil {
			return nil, nil, err
		}
		return profile.NewFirestoreStore(clients.Firestore, cfg.Store.Collection, cfg.Store.Key), clients.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func newRouter(cfg *config.Config, scr *screen.Screen) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(apiPrefix+docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.Server.CORSOrigins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; the listener is local by default.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(64<<10),
		applog.RequestLogger(cfg.Firebase.ProjectID),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(scr.Ready()))

	router.Route(apiPrefix, func(r chi.Router) {
		hcfg := huma.DefaultConfig("Contact Card API", Version)
		hcfg.Servers = []*huma.Server{{URL: apiPrefix}}
		hcfg.DocsPath = docsPath
		api := humachi.New(r, hcfg)
		api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)
		routes.Register(api, scr)
	})
	return router
}

// addCBORContent advertises application/cbor wherever JSON is accepted or returned.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

func logAck(ctx context.Context, ack screen.Ack) {
	applog.LogInfo(ctx, "save acknowledged",
		zap.String("outcome", string(ack.Outcome)),
		zap.String("title", ack.Title),
	)
}
