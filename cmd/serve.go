package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/config"
	"github.com/tablero-dev/tablero/internal/database"
	"github.com/tablero-dev/tablero/internal/events"
	"github.com/tablero-dev/tablero/internal/logging"
	"github.com/tablero-dev/tablero/internal/services/label"
	"github.com/tablero-dev/tablero/internal/services/project"
	"github.com/tablero-dev/tablero/internal/services/workflow"
	"github.com/tablero-dev/tablero/internal/services/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tablero API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	if err := logging.Init(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing db", "error", err)
		}
	}()

	repo := database.NewRepository(db)
	hub := events.NewHub(cfg.Events.SubscriberBuffer)

	services := api.Services{
		Projects:   project.NewService(repo, repo, repo, repo, repo, hub),
		Labels:     label.NewService(repo, hub),
		Workflows:  workflow.NewService(repo, hub),
		Workspaces: workspace.NewService(repo, hub),
	}

	server, err := api.NewServer(services, repo, hub, slog.Default(), &api.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return err
	}

	slog.Info("tablero starting", "host", cfg.Server.Host, "port", cfg.Server.Port, "pid", os.Getpid())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("tablero shut down gracefully")
	return nil
}
