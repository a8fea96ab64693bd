package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Source     SourceConfig     `yaml:"source" mapstructure:"source"`
	Geocode    GeocodeConfig    `yaml:"geocode" mapstructure:"geocode"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Facilities FacilitiesConfig `yaml:"facilities" mapstructure:"facilities"`
	Map        MapConfig        `yaml:"map" mapstructure:"map"`
	RunLog     RunLogConfig     `yaml:"runlog" mapstructure:"runlog"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// SourceConfig configures the school listing scrape.
type SourceConfig struct {
	URL         string `yaml:"url" mapstructure:"url"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
}

// GeocodeConfig configures the Nominatim client.
type GeocodeConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CachePath   string  `yaml:"cache_path" mapstructure:"cache_path"`
	CacheTTL    int     `yaml:"cache_ttl_days" mapstructure:"cache_ttl_days"`
}

// CacheConfig configures the school record cache file.
type CacheConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// FacilitiesConfig configures the aquatic facility dataset.
type FacilitiesConfig struct {
	// Path optionally overrides the embedded dataset.
	Path string `yaml:"path" mapstructure:"path"`
}

// MapConfig configures the rendered map document.
type MapConfig struct {
	OutputPath string  `yaml:"output_path" mapstructure:"output_path"`
	CenterLat  float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon  float64 `yaml:"center_lon" mapstructure:"center_lon"`
	Zoom       int     `yaml:"zoom" mapstructure:"zoom"`
}

// RunLogConfig configures the refresh run log database.
type RunLogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SWIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.url", "https://cbe.ab.ca/about-us/leadership/Pages/schools-by-area.aspx")
	v.SetDefault("source.user_agent", "swim-facilities/1.0")
	v.SetDefault("source.timeout_secs", 30)
	v.SetDefault("source.max_retries", 3)
	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocode.user_agent", "calgary_schools_map")
	v.SetDefault("geocode.rate_per_sec", 1.0)
	v.SetDefault("geocode.timeout_secs", 30)
	v.SetDefault("geocode.cache_path", "data/geocode_cache.db")
	v.SetDefault("geocode.cache_ttl_days", 0)
	v.SetDefault("cache.path", "data/cbe_schools.json")
	v.SetDefault("map.output_path", "calgary_schools_aquatic_map.html")
	v.SetDefault("map.center_lat", 51.0486)
	v.SetDefault("map.center_lon", -114.0708)
	v.SetDefault("map.zoom", 11)
	v.SetDefault("runlog.path", "data/runs.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
