package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hospitalops/internal/config"
	"hospitalops/internal/handler"
	"hospitalops/internal/hub"
	"hospitalops/internal/layout"
	"hospitalops/internal/metrics"
	"hospitalops/internal/monitor"
	"hospitalops/internal/repository/sqlite"
	"hospitalops/internal/service"
	"hospitalops/internal/watcher"
)

//go:embed web/*
var webFS embed.FS

var (
	serveAddr  string
	serveDB    string
	serveSeed  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Starts the API, the event stream on /events and the dashboard page.

Flags override the matching config file values.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path")
	serveCmd.Flags().StringVar(&serveSeed, "seed", "", "Hospital directory file (YAML or JSON)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the directory file when it changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	applyServeFlags(cmd, cfg)
	if err := initLogger(cfg.Log); err != nil {
		return err
	}
	if path != "" {
		logger.Info("config loaded", zap.String("path", path))
	}
	logger.Debug(cfg.Summary())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, nil)
}

// applyServeFlags copies explicitly set flags over cfg
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if flags.Changed("db") {
		cfg.Database.Path = serveDB
	}
	if flags.Changed("seed") {
		cfg.Directory.SeedPath = serveSeed
	}
	if flags.Changed("watch") {
		cfg.Directory.Watch = serveWatch
	}
}

// serve wires every component and blocks until ctx is cancelled or one of
// them fails. When ln is nil it listens on cfg.Server.Addr.
func serve(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()
	logger.Info("database opened", zap.String("path", cfg.Database.Path))

	m := metrics.NewRegistry()
	bus := service.NewEventBus(m)

	seed := service.NewSeed(cfg.Directory.SeedPath, bus, m, logger.Named("seed"))
	if err := seed.Reload(); err != nil {
		return fmt.Errorf("load hospital directory: %w", err)
	}

	alerts := service.NewAlertService(repo, bus, m, logger.Named("alerts"))
	hospitals := service.NewHospitalService(repo, bus, seed, logger.Named("hospitals"))
	patients := service.NewPatientService(repo, bus, logger.Named("patients"))
	inventory := service.NewInventoryService(repo, bus, alerts, logger.Named("inventory"))
	svc := handler.Services{
		Hospitals: hospitals,
		Beds:      service.NewBedService(repo, bus, alerts, logger.Named("beds")),
		Patients:  patients,
		Contacts:  service.NewContactService(repo, bus, logger.Named("contacts")),
		Inventory: inventory,
		Alerts:    alerts,
		Layout: service.NewLayoutService(layout.NewViews(), cfg.Layout.Params, cfg.Layout.AnchorRadius,
			hospitals, patients, bus, m, logger.Named("layout")),
	}

	if err := inventory.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed inventory: %w", err)
	}

	checks := monitor.NewRegistry(logger.Named("monitor"))
	if err := checks.Register(monitor.Func("inventory-critical", inventory.CheckCritical), monitor.CheckConfig{
		Enabled:  cfg.Monitor.InventoryInterval > 0,
		Interval: cfg.Monitor.InventoryInterval.Duration(),
	}); err != nil {
		return err
	}

	static, err := staticHandler(cfg.Server.StaticDir)
	if err != nil {
		return err
	}

	sse := hub.New(m, logger.Named("hub"))
	router := handler.NewRouter(handler.New(svc, logger.Named("http")), handler.RouterOptions{
		Events:  sse,
		Static:  static,
		Metrics: m,
	}, logger.Named("http"))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  cfg.Server.IdleTimeout.Duration(),
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return sse.Run(gctx) })
	g.Go(func() error { return forwardEvents(gctx, bus, sse) })
	g.Go(func() error { return svc.Layout.Run(gctx) })
	g.Go(func() error { return checks.Run(gctx) })

	if cfg.Directory.Watch && cfg.Directory.SeedPath != "" {
		w := watcher.New(cfg.Directory.SeedPath, func() {
			// failures keep the previous entries and are logged by Reload
			_ = seed.Reload()
		}, logger.Named("watcher")).WithDebounce(cfg.Directory.Debounce.Duration())
		g.Go(func() error { return w.Watch(gctx) })
	}

	g.Go(func() error {
		var err error
		if ln != nil {
			logger.Info("server listening", zap.String("addr", ln.Addr().String()))
			err = server.Serve(ln)
		} else {
			logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("server stopped")
	return err
}

// forwardEvents relays bus events to the SSE hub until ctx is cancelled
func forwardEvents(ctx context.Context, bus *service.EventBus, sse *hub.Hub) error {
	events := make(chan service.Event, 100)
	bus.Subscribe(events)
	defer bus.Unsubscribe(events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			sse.Broadcast(ev)
		}
	}
}

// staticHandler serves dir when set, else the embedded dashboard page
func staticHandler(dir string) (http.Handler, error) {
	if dir != "" {
		return http.FileServer(http.Dir(dir)), nil
	}
	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		return nil, fmt.Errorf("embedded web content: %w", err)
	}
	return http.FileServer(http.FS(webContent)), nil
}
