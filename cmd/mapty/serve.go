// ABOUTME: CLI command for serving the map page.
// ABOUTME: Runs the web adapter with graceful shutdown on SIGINT/SIGTERM.
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

	"github.com/fatih/color"
	"github.com/harperreed/mapty/internal/web"
	"github.com/spf13/cobra"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workout map",
	Long: `Serve the map page. Open it in a browser, allow location access, then
click the map to log workouts.

EXAMPLES:

  mapty serve
  mapty serve --listen :9000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.GetListen()
		if serveListen != "" {
			addr = serveListen
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           web.NewServer(store, cfg.AppOptions(logger)).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		errc := make(chan error, 1)
		go func() {
			errc <- srv.ListenAndServe()
		}()

		color.Green("✓ Serving on http://%s", addr)
		logger.Infow("web server started", "addr", addr, "backend", cfg.GetBackend())

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		logger.Infow("web server stopping")
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default 127.0.0.1:8080)")
	rootCmd.AddCommand(serveCmd)
}
