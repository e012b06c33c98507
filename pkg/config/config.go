package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Data        struct {
		TradesFile    string `yaml:"trades_file" default:"csv_files/historical_data.csv" validate:"required"`
		SentimentFile string `yaml:"sentiment_file" default:"csv_files/fear_greed.csv" validate:"required"`
	} `yaml:"data"`
	Output struct {
		Dir         string `yaml:"dir" default:"outputs" validate:"required"`
		SummaryFile string `yaml:"summary_file" default:"ds_report_summary.txt" validate:"required"`
		ReportFile  string `yaml:"report_file" default:"ds_report.pdf" validate:"required"`
	} `yaml:"output"`
	Server struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8501" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Cache struct {
		MemorySize int           `yaml:"memory_size" default:"16" validate:"gte=1"`
		TTL        time.Duration `yaml:"ttl" validate:"gte=0"`
		Redis      struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"sentitrade"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Dashboard struct {
		DefaultCapital float64 `yaml:"default_capital" default:"10000" validate:"gt=0"`
		DefaultRisk    float64 `yaml:"default_risk" default:"1" validate:"gte=0.5,lte=3"`
		MaxRows        int     `yaml:"max_rows" default:"10000" validate:"gte=1"`
		ChartRate      float64 `yaml:"chart_rate" default:"5" validate:"gt=0"`
		ChartBurst     int     `yaml:"chart_burst" default:"15" validate:"gte=1"`
	} `yaml:"dashboard"`
}

var validate = validator.New()

// Default returns a configuration populated only from struct defaults.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// A .env file next to the working directory is read first when present.
// A missing config file is not an error: defaults are used instead.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		c = Default()
	} else if err != nil {
		return nil, err
	}

	if v := os.Getenv("SENTITRADE_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("SENTITRADE_TRADES_FILE"); v != "" {
		c.Data.TradesFile = v
	}
	if v := os.Getenv("SENTITRADE_SENTIMENT_FILE"); v != "" {
		c.Data.SentimentFile = v
	}
	if v := os.Getenv("SENTITRADE_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("SENTITRADE_PORT"); v != "" {
		p, err := cast.ToIntE(v)
		if err != nil {
			return nil, fmt.Errorf("SENTITRADE_PORT: %w", err)
		}
		c.Server.Port = p
	}
	if v := os.Getenv("SENTITRADE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Host = v
		if host, port, err := net.SplitHostPort(v); err == nil {
			p, err := cast.ToIntE(port)
			if err != nil {
				return nil, fmt.Errorf("REDIS_ADDR: invalid port %q", port)
			}
			c.Cache.Redis.Host = host
			c.Cache.Redis.Port = p
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Data.TradesFile == c.Data.SentimentFile {
		return fmt.Errorf("data.trades_file and data.sentiment_file must differ")
	}
	return nil
}

// SummaryPath is where the text summary is written.
func (c *Config) SummaryPath() string {
	return filepath.Join(c.Output.Dir, c.Output.SummaryFile)
}

// ReportPath is where the PDF report is written.
func (c *Config) ReportPath() string {
	return filepath.Join(c.Output.Dir, c.Output.ReportFile)
}
