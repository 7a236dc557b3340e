// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/olegiv/ocms-modmenu/internal/cache"
	"github.com/olegiv/ocms-modmenu/internal/config"
	"github.com/olegiv/ocms-modmenu/internal/handler"
	"github.com/olegiv/ocms-modmenu/internal/i18n"
	"github.com/olegiv/ocms-modmenu/internal/icon"
	"github.com/olegiv/ocms-modmenu/internal/logging"
	"github.com/olegiv/ocms-modmenu/internal/metrics"
	"github.com/olegiv/ocms-modmenu/internal/middleware"
	"github.com/olegiv/ocms-modmenu/internal/modconf"
	"github.com/olegiv/ocms-modmenu/internal/modmenu"
	"github.com/olegiv/ocms-modmenu/internal/service"
	"github.com/olegiv/ocms-modmenu/internal/store"
	"github.com/olegiv/ocms-modmenu/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// options holds the parsed command line flags.
type options struct {
	dump   bool
	userID int64
	lang   string
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	var opts options
	flag.BoolVar(&opts.dump, "dump", false, "Print the module menu of -user and exit")
	flag.Int64Var(&opts.userID, "user", 1, "User ID whose hide rules apply to -dump")
	flag.StringVar(&opts.lang, "lang", "", "Label language for -dump (default: OCMS_ADMIN_LANG)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "modmenu - oCMS admin module menu service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_MODULES_FILE      Module configuration file (default: ./config/modules.yaml)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_DB_PATH           SQLite database path (default: ./data/ocms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_LOG_LEVEL         debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_ADMIN_LANG        Default admin language (default: en)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_MODULE_URL_BASE   Base path of module URLs (default: /admin/module)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_REDIS_URL         Redis URL for the hide rule cache (default: in-memory)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCMS_CACHE_TTL         Hide rule cache TTL (default: 5m)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(opts, info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(opts options, info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	if !i18n.IsSupported(cfg.AdminLang) {
		return fmt.Errorf("unsupported OCMS_ADMIN_LANG %q (supported: %s)",
			cfg.AdminLang, strings.Join(i18n.GetSupportedLanguages(), ", "))
	}

	modules, err := modconf.Load(cfg.ModulesFile)
	if err != nil {
		return fmt.Errorf("loading modules: %w", err)
	}
	icons := icon.NewRegistry()
	if err := modules.RegisterIcons(icons); err != nil {
		return err
	}
	slog.Info("module configuration loaded",
		"file", cfg.ModulesFile,
		"modules", len(modules.Modules),
		"extensions", len(modules.Extensions),
		"icons", len(modules.Icons),
	)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	queries := store.New(db)

	// Warnings and errors from here on are also kept in the event log.
	logger = slog.New(logging.NewEventLogHandler(textHandler, queries))
	slog.SetDefault(logger)

	ruleCache, err := cache.New(cache.Config{RedisURL: cfg.RedisURL, DefaultTTL: cfg.CacheTTL})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = ruleCache.Close() }()
	if cfg.RedisURL != "" {
		slog.Info("using redis hide rule cache", "ttl", cfg.CacheTTL)
	}
	rules := cache.NewHideRuleCache(queries, ruleCache, logger)

	loader := modmenu.NewLoader(cfg.ModuleURLBase, icons)
	menus := service.NewModuleMenuService(modules.Modules, modules.Extensions, loader, rules, logger)

	promRegistry := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(promRegistry)
	menus.SetRecorder(recorder)
	rules.SetRecorder(recorder)

	if opts.dump {
		lang := opts.lang
		if lang == "" {
			lang = cfg.AdminLang
		}
		reg, err := menus.ForUser(context.Background(), opts.userID, lang)
		if err != nil {
			return fmt.Errorf("building module menu: %w", err)
		}
		return dumpMenu(os.Stdout, reg)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	health := handler.NewHealthHandler(db, info.Version, len(modules.Modules))
	r.Get(handler.RouteHealth, health.Health)
	handler.NewModuleMenuHandler(menus, rules, icons, cfg.AdminLang).RegisterRoutes(r)
	r.Get(handler.RouteEvents, handler.NewEventsHandler(queries).List)
	cacheHandler := handler.NewCacheHandler(rules, queries)
	r.Get(handler.RouteCache, cacheHandler.Stats)
	r.Post(handler.RouteCacheClear, cacheHandler.Clear)
	r.Handle(metrics.RouteMetrics, metrics.HTTPHandler(promRegistry))

	return serve(cfg, r)
}

func serve(cfg *config.Config, h http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
