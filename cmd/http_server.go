package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/earned-wage-access/api"
	"github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/banklink"
	"github.com/frahmantamala/earned-wage-access/internal/employee"
	"github.com/frahmantamala/earned-wage-access/internal/engine"
	"github.com/frahmantamala/earned-wage-access/internal/session"
	"github.com/frahmantamala/earned-wage-access/internal/transport"
	"github.com/frahmantamala/earned-wage-access/internal/transport/middleware"
	"github.com/frahmantamala/earned-wage-access/internal/transport/rest"
	"github.com/frahmantamala/earned-wage-access/internal/withdrawal"
	"github.com/frahmantamala/earned-wage-access/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Engine *engine.Engine
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "bank_directory", deps.Config.BankDirectory.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Engine.Shutdown()
	if deps.DB != nil {
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	base := transport.NewBaseHandler(deps.Logger)

	doc, err := middleware.LoadOpenAPI(api.Spec)
	if err != nil {
		return err
	}
	validator, err := middleware.RequestValidator(doc, base)
	if err != nil {
		return err
	}

	var health *rest.HealthHandler
	if deps.DB != nil {
		health = rest.NewHealthHandler(deps.DB.DB, deps.Config.Database.Driver, deps.Config.BankDirectory.Driver)
	} else {
		health = rest.NewHealthHandler(nil, "", deps.Config.BankDirectory.Driver)
	}

	eng := deps.Engine
	rest.RegisterAllRoutes(deps.Router, rest.RouterConfig{
		AllowedOrigins: deps.Config.Server.AllowedOrigins,
		OpenAPISpec:    api.Spec,
		Validator:      validator,
	}, rest.Handlers{
		Health:     health,
		Session:    session.NewHandler(eng, eng, deps.Logger),
		Employee:   employee.NewHandler(eng, deps.Logger),
		BankLink:   banklink.NewHandler(eng.BankLinks(), deps.Logger),
		Withdrawal: withdrawal.NewHandler(eng, deps.Logger),
	}, deps.Logger)

	return nil
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.LoggerWrapper()

	directory, dbConn, err := newDirectory(ctx, config, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bank directory: %w", err)
	}

	eng, err := engine.New(config, directory, lg)
	if err != nil {
		if dbConn != nil {
			_ = dbConn.Close()
		}
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}

	return &Dependencies{
		Config: config,
		DB:     dbConn,
		Engine: eng,
		Router: chi.NewRouter(),
		Logger: lg,
	}, nil
}
