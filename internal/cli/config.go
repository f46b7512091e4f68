package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/piwi3910/CargoLoad/internal/api"
	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/piwi3910/CargoLoad/internal/project"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the runtime configuration, read from defaults, an optional YAML
// file, CARGOLOAD_* environment variables and command line flags, in
// increasing order of precedence.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Plan   PlanConfig   `mapstructure:"plan"`
	Server ServerConfig `mapstructure:"server"`
	Export ExportConfig `mapstructure:"export"`
	Data   DataConfig   `mapstructure:"data"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type PlanConfig struct {
	Metric     string   `mapstructure:"metric"`
	RoundCap   int      `mapstructure:"round_cap"`
	Containers []string `mapstructure:"containers"` // empty falls back to the saved app defaults
	Catalog    string   `mapstructure:"catalog"`    // custom container YAML, defaults to containers.yaml in the data dir
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUnits        int           `mapstructure:"max_units"` // per-request cargo unit budget
}

// Address returns host:port.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// DataConfig locates the persisted user data: app config, inventory and
// project templates.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"metric":     "plan.metric",
	"round-cap":  "plan.round_cap",
	"containers": "plan.containers",
	"catalog":    "plan.catalog",
	"host":       "server.host",
	"port":       "server.port",
	"export-dir": "export.dir",
	"data-dir":   "data.dir",
}

// LoadConfig builds the configuration. configPath may be empty, in which case
// cargoload.yaml is looked up in ~/.cargoload and the working directory and
// skipped if absent. flags may be nil.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	dataDir := project.DefaultConfigDir()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("plan.metric", string(model.MetricCount))
	v.SetDefault("plan.round_cap", model.DefaultRoundCap)
	v.SetDefault("plan.containers", []string{})
	v.SetDefault("plan.catalog", "")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.max_units", api.DefaultMaxUnits)
	v.SetDefault("export.dir", ".")
	v.SetDefault("data.dir", dataDir)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("cargoload")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("CARGOLOAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Plan.Catalog == "" {
		cfg.Plan.Catalog = project.CatalogPath(cfg.Data.Dir)
	}

	return &cfg, nil
}

// PlanSettings converts the plan section into planner settings.
func (c *Config) PlanSettings() (model.PlanSettings, error) {
	metric, err := model.ParseSelectionMetric(c.Plan.Metric)
	if err != nil {
		return model.PlanSettings{}, err
	}
	if c.Plan.RoundCap < 0 {
		return model.PlanSettings{}, fmt.Errorf("plan.round_cap must not be negative, got %d", c.Plan.RoundCap)
	}
	roundCap := c.Plan.RoundCap
	if roundCap == 0 {
		roundCap = model.DefaultRoundCap
	}
	return model.PlanSettings{Metric: metric, RoundCap: roundCap}, nil
}

// Paths of the persisted user data inside the data directory.
func (c *Config) AppConfigPath() string { return project.ConfigPath(c.Data.Dir) }
func (c *Config) InventoryPath() string { return project.InventoryPath(c.Data.Dir) }
func (c *Config) TemplatesPath() string { return project.TemplatesPath(c.Data.Dir) }

// ExportPath resolves an output file name against the export directory.
// Absolute paths are returned unchanged.
func (c *Config) ExportPath(name string) string {
	if name == "" || filepath.IsAbs(name) || c.Export.Dir == "" {
		return name
	}
	return filepath.Join(c.Export.Dir, name)
}

// SetupLogger creates a slog logger writing to w with the configured level
// and format.
func SetupLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
