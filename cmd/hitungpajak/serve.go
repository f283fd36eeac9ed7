package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ulwant/HitungPajakku-sub001/internal/api"
	"github.com/ulwant/HitungPajakku-sub001/internal/tui"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Serve every calculator as POST /api/v1/{calculator} together with
GET /api/v1/rates, POST /api/v1/compare, POST /api/v1/project, /healthz and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := a.settings.GetString("addr")
			log := a.log.WithField("module", "serve")

			srv := api.NewServer(a.engine, a.log, api.Options{
				AllowedOrigins: a.settings.GetStringSlice("allowed-origins"),
				MetricsPrefix:  a.settings.GetString("metrics-prefix"),
			})
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.WithFields(logrus.Fields{"addr": addr, "regulation": a.engine.Regulation.Version}).Info("listening")
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().StringSlice("allowed-origins", nil, "CORS allowed origins (default any)")
	cmd.Flags().String("metrics-prefix", "hitungpajak", "Prometheus metric namespace")
	return cmd
}

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// log lines would tear the alternate screen
			a.engine.SetLogger(nil)

			p := tea.NewProgram(tui.NewModel(a.engine), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}
