package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/querystate/internal/config"
	qsmw "github.com/vango-dev/querystate/pkg/middleware"
	"github.com/vango-dev/querystate/pkg/navigator"
	"github.com/vango-dev/querystate/pkg/querycodec"
	"github.com/vango-dev/querystate/pkg/querysync"
)

func serveCmd() *cobra.Command {
	var (
		flags mappingFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve query state to browsers over WebSocket",
		Long: `Serve exposes the declared fields over a WebSocket endpoint. Each
connection gets its own deferred buffer; URL changes are pushed to the
browser as shallow replace messages. Prometheus metrics are served
alongside.

Examples:
  querystate serve -c querystate.json
  querystate serve --addr :9000 -f q=deferred_string -f page=number`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, m, err := flags.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, m, slog.Default())
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, "+config.DefaultAddr+")")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, m *querycodec.Mapping, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	handler, err := newRouter(cfg, m, reg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("querystate listening", "addr", cfg.Server.Addr, "ws", cfg.Server.WSPath, "metrics", cfg.Server.MetricsPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newRouter mounts the navigator WebSocket endpoint and the metrics
// endpoint.
func newRouter(cfg *config.Config, m *querycodec.Mapping, reg *prometheus.Registry, logger *slog.Logger) (http.Handler, error) {
	window, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	reg.MustRegister(collectors.NewGoCollector())
	metrics := querysync.NewMetrics(querysync.WithRegistry(reg))

	opts := []navigator.HandlerOption{
		navigator.WithLogger(logger),
		navigator.WithProviderOptions(
			querysync.WithWindow(window),
			querysync.WithMetrics(metrics),
		),
	}
	if origins := cfg.Server.AllowedOrigins; len(origins) > 0 {
		opts = append(opts, navigator.WithCheckOrigin(func(r *http.Request) bool {
			return slices.Contains(origins, r.Header.Get("Origin"))
		}))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(qsmw.OpenTelemetry(qsmw.WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != cfg.Server.MetricsPath
	})))
	r.Use(qsmw.Prometheus(qsmw.WithRegistry(reg)))

	r.Handle(cfg.Server.WSPath, navigator.NewHandler(m, opts...))
	r.Handle(cfg.Server.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r, nil
}
