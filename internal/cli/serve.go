package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/geo"
	"github.com/hightemp/countrypicker/internal/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the directory and picker sessions over HTTP",
	Long: `Starts the JSON API used by remote pickers. When a GeoIP database is
configured, new pickers without an initial code start on the client's
country.

Examples:
  countrypicker serve
  countrypicker serve --addr 127.0.0.1:9000 --geoip-db GeoLite2-Country.mmdb`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default "+config.DefaultServerAddr+")")
	serveCmd.Flags().StringVar(&geoIPPath, "geoip-db", "", "MaxMind country database for initial picker codes")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := slog.Default().With(config.LogKeyComponent, config.CompCLI)

	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if geoIPPath != "" {
		cfg.GeoIP.Path = geoIPPath
	}

	dir, err := loadDirectory()
	if err != nil {
		return err
	}

	opts := []server.Option{server.WithLogger(slog.Default())}
	if cfg.GeoIP.Path != "" {
		locator, err := geo.Open(cfg.GeoIP.Path)
		if err != nil {
			return err
		}
		defer locator.Close()
		opts = append(opts, server.WithLocator(locator))
	}

	srv := server.New(dir, newProjector(dir), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", config.LogKeyCount, srv.Pickers())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
