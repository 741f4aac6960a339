package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadership-report/internal/db"
	"github.com/jonathan/leadership-report/internal/server"
	"github.com/jonathan/leadership-report/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that generates leadership reports from questionnaire answers.
Reports are stored in PostgreSQL when DATABASE_URL is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, then 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := appConfig
	if servePort != 0 {
		cfg.Port = servePort
	}

	builder, closeBuilder, err := newBuilder(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBuilder()

	srvCfg := server.Config{
		Port:           cfg.Port,
		Builder:        builder,
		BrandName:      cfg.BrandName,
		CallURL:        cfg.CallURL,
		AllowedOrigins: cfg.Origins(),
		Limiter:        ratelimit.NewLimiter(ratelimit.FromSettings(cfg.RateLimit)),
		Logger:         logger,
	}

	if cfg.DatabaseURL != "" {
		database, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		srvCfg.Store = database
	} else {
		logger.Warn().Msg("DATABASE_URL not set, reports will not be stored")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}

func openDatabase(ctx context.Context, url string) (*db.DB, error) {
	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return database, nil
}
