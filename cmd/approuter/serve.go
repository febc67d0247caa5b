package main

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/approuter/internal/config"
	"github.com/vango-dev/approuter/internal/devserver"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the route tree in the browser",
		Long: `Serve the route tree with html/template pages and layouts.

Every browser tab gets its own navigator over a WebSocket; links are
intercepted and only the changed markup is sent. With --watch, edits
below the routes directory rebuild the table and reload open tabs.

Examples:
  approuter serve --extensions .html
  approuter serve --addr :8080 --origin https://preview.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			src, root, err := cfg.OpenSource()
			if err != nil {
				return err
			}

			opts := devserver.Options{
				Source:       src,
				BuildOptions: cfg.RouterOptions(root, a.logger),
				Origin:       cfg.Origin,
				Logger:       a.logger,
			}
			if cfg.Watch && cfg.SourceKind() == config.SourceDir {
				opts.WatchDir = cfg.Dir
			}
			if cfg.Metrics.Enabled {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				opts.Registry = reg
				opts.MetricsNamespace = cfg.Metrics.Namespace
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return devserver.New(opts).Start(ctx, cfg.Addr)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", config.DefaultAddr, "listen address")
	flags.String("origin", "", "origin accepted for absolute URLs (default: the request host)")
	flags.Bool("watch", true, "rebuild when files change")
	flags.Bool("metrics-enabled", true, "serve Prometheus metrics on /metrics")
	return cmd
}
