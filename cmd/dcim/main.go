package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"datacenter-inventory/internal/config"
	"datacenter-inventory/internal/logger"
	"datacenter-inventory/internal/routes"
	"datacenter-inventory/internal/usecase/rack"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "dcim",
		Short:         "Data center inventory and rack occupancy service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if err := logger.Init(loaded.Server.Environment, loaded.Log.Level); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			cfg = loaded
			return nil
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Sync()
			return serve(cfg)
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print occupancy statistics for every rack in the seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStats(cmd.Context(), cfg)
		},
	}

	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the rack and IP report workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportWorkbook(cmd.Context(), cfg, out)
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "racks.xlsx", "Path of the workbook to write")

	rootCmd.AddCommand(serveCmd, statsCmd, exportCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting application",
		zap.String("environment", cfg.Server.Environment),
	)

	deps, err := routes.NewDependencies(ctx, cfg, true)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	router := routes.SetupRoutes(ctx, cfg, deps)

	addr := cfg.Address()
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Shutdown Server ...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	logger.Info("Server exited properly")
	return nil
}

func printStats(ctx context.Context, cfg *config.Config) error {
	deps, err := routes.NewDependencies(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer deps.Close()

	racks, err := deps.RackService.ListRacks(ctx, &rack.RackFilterRequest{})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RACK\tDATACENTER\tROOM\tUSED\tTOTAL\tUSAGE\tDEVICES\tSERVICES\tSTATUS")
	for _, summary := range racks {
		stats, err := deps.RackService.Statistics(ctx, summary.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d%%\t%d\t%d\t%s\n",
			summary.ID,
			summary.DataCenterName,
			summary.RoomName,
			stats.UsedUnits,
			stats.TotalUnits,
			stats.UsagePercent,
			stats.DeviceCount,
			stats.ServiceCount,
			stats.Status,
		)
	}
	return w.Flush()
}

func exportWorkbook(ctx context.Context, cfg *config.Config, path string) error {
	deps, err := routes.NewDependencies(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer deps.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := deps.RackService.ExportWorkbook(ctx, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("Workbook written", zap.String("path", path))
	return nil
}
