// Package main provides the entry point for the ChirpDeck backend server.
// The server owns the X (Twitter) OAuth2 PKCE flow, the token lifecycle for
// browser sessions, the publishing gateway, and the Gemini content flows the
// dashboard frontend calls.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/chirpdeck/chirpdeck/internal/ai"
	"github.com/chirpdeck/chirpdeck/internal/api"
	"github.com/chirpdeck/chirpdeck/internal/api/handlers"
	"github.com/chirpdeck/chirpdeck/internal/auth/twitter"
	"github.com/chirpdeck/chirpdeck/internal/buildinfo"
	"github.com/chirpdeck/chirpdeck/internal/config"
	"github.com/chirpdeck/chirpdeck/internal/logging"
	"github.com/chirpdeck/chirpdeck/internal/publish"
	"github.com/chirpdeck/chirpdeck/internal/session"
	"github.com/chirpdeck/chirpdeck/internal/store"
	"github.com/chirpdeck/chirpdeck/internal/util"
	"github.com/chirpdeck/chirpdeck/internal/watcher"
)

var (
	Version           = "dev"
	Commit            = "none"
	BuildDate         = "unknown"
	DefaultConfigPath = "config.yaml"
)

// init initializes the shared logger setup.
func init() {
	logging.SetupBaseLogger()
	buildinfo.Version = Version
	buildinfo.Commit = Commit
	buildinfo.BuildDate = BuildDate
}

// main is the entry point of the application. It parses command-line flags,
// loads configuration, wires the services, and runs the HTTP server until a
// termination signal arrives.
func main() {
	fmt.Printf("ChirpDeck Version: %s, Commit: %s, BuiltAt: %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.BuildDate)

	var configPath string
	flag.StringVar(&configPath, "config", DefaultConfigPath, "Configure File Path")
	flag.Parse()

	// A local .env carries secrets in development; absence is normal.
	if errDotenv := godotenv.Load(); errDotenv != nil && !os.IsNotExist(errDotenv) {
		log.Warnf("failed to load .env file: %v", errDotenv)
	}

	absConfigPath, errAbs := filepath.Abs(configPath)
	if errAbs != nil {
		log.Fatalf("failed to resolve config path %s: %v", configPath, errAbs)
	}

	cfg, errLoadConfig := config.LoadConfig(absConfigPath)
	if errLoadConfig != nil {
		log.Fatalf("failed to load config: %v", errLoadConfig)
	}

	logging.SetDebug(cfg.Debug)
	if cfg.LoggingToFile {
		if errLogOutput := logging.ConfigureFileOutput(cfg.LogDir); errLogOutput != nil {
			log.Fatalf("failed to configure file logging: %v", errLogOutput)
		}
	}

	if errValidate := cfg.ValidateTwitter(); errValidate != nil {
		log.Warnf("x integration incomplete, login flow disabled until configured: %v", errValidate)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokenStore, closeStore, errStore := buildTokenStore(ctx, cfg)
	if errStore != nil {
		log.Fatalf("failed to initialize token store: %v", errStore)
	}
	if closeStore != nil {
		defer func() {
			if errClose := closeStore.Close(); errClose != nil {
				log.Errorf("failed to close token store: %v", errClose)
			}
		}()
	}

	twitterAuth := twitter.NewTwitterAuth(cfg)
	httpClient := util.NewHTTPClient(10*time.Second, cfg.ProxyURL)
	factory := session.NewClientFactory(tokenStore, twitterAuth, httpClient)
	statusService := session.NewStatusService(factory, tokenStore)
	gateway := publish.NewGateway(factory)
	flows := ai.NewFlows(ai.NewGeminiClient(cfg))

	h := handlers.New(cfg, twitterAuth, tokenStore, statusService, gateway, flows)
	srv := api.NewServer(cfg, h)

	// Hot-reload debug level and model selection on config edits. Settings
	// that feed constructors (port, store backend, cookie secret) still need
	// a restart.
	w, errWatcher := watcher.NewWatcher(absConfigPath, func(newCfg *config.Config) {
		logging.SetDebug(newCfg.Debug)
		log.Infof("configuration reloaded from %s", absConfigPath)
	})
	if errWatcher != nil {
		log.Warnf("config hot reload unavailable: %v", errWatcher)
	} else {
		if errStart := w.Start(ctx); errStart != nil {
			log.Warnf("config hot reload unavailable: %v", errStart)
		}
		defer func() {
			if errStop := w.Stop(); errStop != nil {
				log.Errorf("failed to stop config watcher: %v", errStop)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case errRun := <-errCh:
		if errRun != nil {
			log.Fatalf("server error: %v", errRun)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
		log.Errorf("graceful shutdown failed: %v", errShutdown)
	}
	log.Info("server stopped")
}

// buildTokenStore selects the token storage backend from configuration. The
// returned closer is non-nil only for backends holding external resources.
func buildTokenStore(ctx context.Context, cfg *config.Config) (store.TokenStore, io.Closer, error) {
	switch cfg.SessionStore.Type {
	case "postgres":
		pg, err := store.NewPostgresStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using postgres session store")
		return pg, pg, nil
	case "", "cookie":
		cs, err := store.NewCookieStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using sealed-cookie session store")
		return cs, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store type %q", cfg.SessionStore.Type)
	}
}
