package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vango-dev/approuter/internal/config"
	apperrors "github.com/vango-dev/approuter/internal/errors"
	"github.com/vango-dev/approuter/pkg/manifest"
	"github.com/vango-dev/approuter/pkg/router"
)

// app carries what every command needs once flags are parsed.
type app struct {
	out    io.Writer
	errOut io.Writer
	viper  *viper.Viper
	cfg    *config.Config
	logger *slog.Logger
}

func rootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "approuter",
		Short: "File-system routing for single-page apps",
		Long: `approuter compiles a directory tree into a route table.

Directories become URL segments, [name] directories capture a
parameter and the nearest layout.js wraps every page below it.
Use it to inspect a route tree, test URLs against it, or preview
it in the browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default ./approuter.yaml)")
	flags.String("dir", config.DefaultDir, "routes directory")
	flags.String("manifest", "", "YAML file list to read instead of the directory")
	flags.StringSlice("extensions", []string{router.DefaultExtension}, "page and layout file extensions")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("s3-bucket", "", "read routes from this S3 bucket")
	flags.String("s3-prefix", "", "key prefix of the route tree in the bucket")
	flags.String("s3-region", "us-east-1", "S3 region")
	flags.String("s3-endpoint", "", "S3-compatible endpoint URL")
	flags.Bool("s3-path-style", false, "use path-style S3 addressing")

	cmd.AddCommand(
		routesCmd(a),
		matchCmd(a),
		filesCmd(a),
		serveCmd(a),
		versionCmd(a),
	)
	return cmd
}

// init loads configuration and the logger for cmd.
func (a *app) init(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	v, err := config.NewViper(configFile)
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.viper = v
	a.cfg = cfg
	a.logger = newLogger(a.errOut, cfg.Log)
	if cfg.File != "" {
		a.logger.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

// newLogger builds the slog logger described by lc.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	level, _ := lc.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadTable lists the configured source and builds a route table without
// implementations. Build errors are printed; the table is returned anyway.
func (a *app) loadTable(ctx context.Context) (*router.Table, manifest.Source, error) {
	src, root, err := a.cfg.OpenSource()
	if err != nil {
		return nil, nil, err
	}
	table, err := manifest.Load(ctx, src, router.Registry{}, a.cfg.RouterOptions(root, a.quietLogger())...)
	if table == nil {
		return nil, nil, apperrors.New("C004").WithDetail(err.Error()).Wrap(err)
	}
	for _, d := range apperrors.FromBuild(err) {
		apperrors.Fprint(a.errOut, d)
	}
	return table, src, nil
}

// quietLogger drops build warnings below error level; they are printed as
// diagnostics instead.
func (a *app) quietLogger() *slog.Logger {
	level, _ := a.cfg.Log.SlogLevel()
	if level < slog.LevelError && level > slog.LevelDebug {
		level = slog.LevelError
	}
	return newLogger(a.errOut, config.LogConfig{Level: level.String(), Format: a.cfg.Log.Format})
}
