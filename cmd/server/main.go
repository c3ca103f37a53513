// Package main provides the server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apiconnect "github.com/osa030/radio247/internal/api/connect"
	"github.com/osa030/radio247/internal/api/radiov1/radiov1connect"
	"github.com/osa030/radio247/internal/app/catalog"
	"github.com/osa030/radio247/internal/app/notification"
	"github.com/osa030/radio247/internal/app/session/registry"
	"github.com/osa030/radio247/internal/infra/config"
	"github.com/osa030/radio247/internal/infra/logger"
)

var (
	app        = kingpin.New("radio247-server", "radio247 player session server")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	// list-sources command
	listSourcesCmd = app.Command("list-sources", "List available catalog source types and exit")
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the server (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if command == listSourcesCmd.FullCommand() {
		printSources()
		return
	}

	if err := logger.Init(logger.FromFlags(*verbose, *logfile)); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %v", err)
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	// Build catalogue
	sources, err := catalog.NewSourcesFromConfig(cfg)
	if err != nil {
		return errors.Wrap(err, "invalid catalog config")
	}
	cat, err := catalog.New(ctx, catalog.Config{
		Limit:       cfg.CatalogLimit(),
		LatestCount: cfg.LatestCount(),
		Location:    location,
	}, sources)
	if err != nil {
		return errors.Wrap(err, "failed to load catalog")
	}
	defer cat.Close()
	if err := cat.Watch(); err != nil {
		return errors.Wrap(err, "failed to watch catalog sources")
	}
	zlog.Info().Msgf("Catalog loaded: episodes=%d", cat.Len())

	// Sessions and notifications
	notifications := notification.NewManager(cfg.SendTimeout())
	defer notifications.Close()

	sessions := registry.NewRegistry(registry.Config{
		IdleTimeout:   cfg.IdleTimeout(),
		SweepInterval: cfg.SweepInterval(),
		MaxSessions:   cfg.MaxSessions(),
	}, notifications)
	go sessions.Run(ctx)

	// Create RPC services
	catalogService := apiconnect.NewCatalogService(cat)
	playerService := apiconnect.NewPlayerService(sessions, cat, notifications)
	adminService := apiconnect.NewAdminService(sessions, cat, notifications)

	mux := http.NewServeMux()

	catalogPath, catalogHandler := radiov1connect.NewCatalogServiceHandler(catalogService)
	playerPath, playerHandler := radiov1connect.NewPlayerServiceHandler(playerService)

	adminAuthInterceptor := apiconnect.NewAdminAuthInterceptor(cfg)
	adminPath, adminHandler := radiov1connect.NewAdminServiceHandler(
		adminService,
		connect.WithInterceptors(adminAuthInterceptor),
	)

	mux.Handle(catalogPath, catalogHandler)
	mux.Handle(playerPath, playerHandler)
	mux.Handle(adminPath, adminHandler)

	// Create server with h2c (HTTP/2 cleartext) support
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	serverStartedCh := make(chan struct{})

	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		close(serverStartedCh)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	<-serverStartedCh
	// Give the server a moment to fully initialize
	time.Sleep(100 * time.Millisecond)

	executeHooks(cfg.Server.Hooks.OnStarted, "on_started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return errors.Wrap(err, "server error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer shutdownCancel()

	// End sessions first to terminate active subscription streams
	cancel()
	sessions.EndAll()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")

	executeHooks(cfg.Server.Hooks.OnStopped, "on_stopped")

	return nil
}

// printSources prints available catalog source types.
func printSources() {
	fmt.Println("Available Catalog Sources:")
	for _, t := range catalog.SupportedSourceTypes() {
		fmt.Printf("  %-10s - %s\n", t.Name, t.Description)
	}
}

// executeHooks runs a list of shell commands.
func executeHooks(hooks []string, stage string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	for _, hook := range hooks {
		zlog.Info().Msgf("Executing hook: %s", hook)
		// Use sh -c to allow shell features like redirection or pipes
		cmd := exec.Command("sh", "-c", hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
		}
	}
}
