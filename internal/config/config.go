package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vango-dev/approuter/internal/errors"
	"github.com/vango-dev/approuter/pkg/manifest"
	"github.com/vango-dev/approuter/pkg/router"
)

const (
	// ConfigName is the configuration file name without extension.
	ConfigName = "approuter"

	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "APPROUTER"

	// DefaultDir is the default routes directory.
	DefaultDir = "app"

	// DefaultAddr is the default preview server address.
	DefaultAddr = "localhost:3000"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "approuter"
)

// LogConfig configures the slog handler built by the CLI.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig configures Prometheus collection.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// S3Config selects an S3 bucket as the route source.
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	PathStyle       bool   `mapstructure:"path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// Config holds all runtime configuration.
// Values are populated from approuter.yaml, APPROUTER_* env vars, and CLI flags.
type Config struct {
	Dir        string        `mapstructure:"dir"`
	Extensions []string      `mapstructure:"extensions"`
	Origin     string        `mapstructure:"origin"`
	Addr       string        `mapstructure:"addr"`
	Watch      bool          `mapstructure:"watch"`
	Manifest   string        `mapstructure:"manifest"`
	Log        LogConfig     `mapstructure:"log"`
	Metrics    MetricsConfig `mapstructure:"metrics"`
	S3         S3Config      `mapstructure:"s3"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dir", DefaultDir)
	v.SetDefault("extensions", []string{router.DefaultExtension})
	v.SetDefault("origin", "")
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("watch", true)
	v.SetDefault("manifest", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultNamespace)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.path_style", false)
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
}

// NewViper returns a viper instance with defaults, environment binding and
// the config file read. An explicit configFile must exist; otherwise
// approuter.yaml is searched for in the working directory and may be absent.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && stderrors.As(err, &notFound) {
			return v, nil
		}
		file := configFile
		if file == "" {
			file = ConfigName + ".yaml"
		}
		return nil, errors.New("C001").WithFiles(file).WithDetail(err.Error()).Wrap(err)
	}
	return v, nil
}

// BindFlags binds the flags that exist in fs to their config keys. Flag
// names use "-" where keys use "." or "_" (s3-bucket for s3.bucket).
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range v.AllKeys() {
		name := strings.NewReplacer(".", "-", "_", "-").Replace(key)
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("C001").WithDetail(err.Error()).Wrap(err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for invalid or conflicting values.
func (c *Config) Validate() error {
	if c.Dir == "" && c.S3.Bucket == "" && c.Manifest == "" {
		return invalid("dir", "must not be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return invalid("extensions", fmt.Sprintf("%q must start with a dot", ext))
		}
	}
	if c.Origin != "" {
		u, err := url.Parse(c.Origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("origin", fmt.Sprintf("%q is not an http(s) origin", c.Origin))
		}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return invalid("log.level", err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format", fmt.Sprintf("%q is not text or json", c.Log.Format))
	}
	if c.S3.Bucket != "" && c.Manifest != "" {
		return errors.New("C003").WithSuggestion("Set either s3.bucket or manifest, not both")
	}
	return nil
}

// SlogLevel parses Level into a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}

// SourceKind names where the route tree is read from.
type SourceKind string

const (
	SourceDir      SourceKind = "dir"
	SourceManifest SourceKind = "manifest"
	SourceS3       SourceKind = "s3"
)

// SourceKind reports which route source the configuration selects. An S3
// bucket wins over a manifest, which wins over the directory.
func (c *Config) SourceKind() SourceKind {
	switch {
	case c.S3.Bucket != "":
		return SourceS3
	case c.Manifest != "":
		return SourceManifest
	default:
		return SourceDir
	}
}

// OpenSource opens the configured route source. root is the app root to pass
// to router.WithRoot ("" when listed paths already start at the route tree).
func (c *Config) OpenSource() (src manifest.Source, root string, err error) {
	switch c.SourceKind() {
	case SourceS3:
		client := manifest.NewS3Client(manifest.S3Options{
			Region:          c.S3.Region,
			Endpoint:        c.S3.Endpoint,
			PathStyle:       c.S3.PathStyle,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
		})
		return manifest.NewS3(client, c.S3.Bucket, c.S3.Prefix), "", nil
	case SourceManifest:
		fl, err := manifest.ReadFileList(c.Manifest)
		if err != nil {
			return nil, "", errors.New("C004").WithFiles(c.Manifest).WithDetail(err.Error()).Wrap(err)
		}
		return fl, fl.Root, nil
	default:
		info, err := os.Stat(c.Dir)
		if err != nil {
			return nil, "", errors.New("C004").WithFiles(c.Dir).WithDetail(err.Error()).Wrap(err)
		}
		if !info.IsDir() {
			return nil, "", errors.New("C004").WithFiles(c.Dir).WithDetail(c.Dir + " is not a directory")
		}
		return manifest.NewFS(os.DirFS(c.Dir)), "", nil
	}
}

// RouterOptions returns the router.Build options for a source rooted at root.
func (c *Config) RouterOptions(root string, logger *slog.Logger) []router.Option {
	opts := []router.Option{router.WithLogger(logger)}
	if root != "" {
		opts = append(opts, router.WithRoot(root))
	}
	if len(c.Extensions) > 0 {
		opts = append(opts, router.WithExtensions(c.Extensions...))
	}
	return opts
}

func invalid(key, detail string) error {
	return errors.New("C002").
		WithDetail(fmt.Sprintf("%s: %s", key, detail)).
		WithSuggestion(fmt.Sprintf("Fix %s in %s.yaml or unset %s_%s", key, ConfigName, EnvPrefix,
			strings.ToUpper(strings.ReplaceAll(key, ".", "_"))))
}
