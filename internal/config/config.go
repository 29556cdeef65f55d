package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// ServerConfig represents the HTTP listener configuration.
type ServerConfig struct {
	Host            string        `yaml:"host" json:"host"`
	Port            int           `yaml:"port" json:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// LogConfig represents logger configuration.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=json console"`
}

// UserConfig holds the fixed demo user served by every endpoint.
type UserConfig struct {
	ID   int    `yaml:"id" json:"id" validate:"gt=0"`
	Name string `yaml:"name" json:"name" validate:"required"`
}

// DemoConfig controls the simulated remote fetch.
type DemoConfig struct {
	FetchDelay  time.Duration `yaml:"fetch_delay" json:"fetch_delay" validate:"gt=0"`
	FailureRate float64       `yaml:"failure_rate" json:"failure_rate" validate:"gte=0,lte=1"`
	User        UserConfig    `yaml:"user" json:"user"`
}

// FilesConfig locates the static assets directory and the demo data file.
type FilesConfig struct {
	PublicDir string `yaml:"public_dir" json:"public_dir" validate:"required"`
	DataDir   string `yaml:"data_dir" json:"data_dir" validate:"required"`
	DemoFile  string `yaml:"demo_file" json:"demo_file" validate:"required"`
}

// ChainConfig points at an optional step-definition file for the chained
// demo; when empty the built-in login/fetch_data/render sequence is used.
type ChainConfig struct {
	StepsFile string `yaml:"steps_file" json:"steps_file"`
}

// TelemetryConfig toggles the OpenTelemetry stdout pipeline.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server"`
	Log       LogConfig       `yaml:"log" json:"log"`
	Demo      DemoConfig      `yaml:"demo" json:"demo"`
	Files     FilesConfig     `yaml:"files" json:"files"`
	Chain     ChainConfig     `yaml:"chain" json:"chain"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

// UserRecord builds the process-wide demo user from configuration.
func (c *Config) UserRecord() models.UserRecord {
	return models.UserRecord{ID: c.Demo.User.ID, Name: c.Demo.User.Name}
}

// LoadConfig loads the application configuration: built-in defaults first,
// then environment variables, then an optional config.yaml.
func LoadConfig() (*Config, error) {
	config := &Config{}

	// Defaults
	config.Server = ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second, // must outlast the 2.6s chain demo
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
	config.Log = LogConfig{Level: "info", Format: "json"}
	config.Demo = DemoConfig{
		FetchDelay:  time.Second,
		FailureRate: 0.1,
		User:        UserConfig{ID: 1, Name: "John Doe"},
	}
	config.Files = FilesConfig{
		PublicDir: "public",
		DataDir:   "data",
		DemoFile:  "demo.txt",
	}

	// Environment overrides
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port, err := strconv.Atoi(os.Getenv("SERVER_PORT")); err == nil {
		config.Server.Port = port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Log.Format = format
	}
	if delay, err := time.ParseDuration(os.Getenv("FETCH_DELAY")); err == nil {
		config.Demo.FetchDelay = delay
	}
	if rate, err := strconv.ParseFloat(os.Getenv("FAILURE_RATE"), 64); err == nil {
		config.Demo.FailureRate = rate
	}
	if id, err := strconv.Atoi(os.Getenv("DEMO_USER_ID")); err == nil {
		config.Demo.User.ID = id
	}
	if name := os.Getenv("DEMO_USER_NAME"); name != "" {
		config.Demo.User.Name = name
	}
	if dir := os.Getenv("PUBLIC_DIR"); dir != "" {
		config.Files.PublicDir = dir
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		config.Files.DataDir = dir
	}
	if file := os.Getenv("CHAIN_STEPS_FILE"); file != "" {
		config.Chain.StepsFile = file
	}
	if enabled := os.Getenv("TELEMETRY_ENABLED"); enabled != "" {
		config.Telemetry.Enabled = enabled == "true"
	}

	// Optional config file
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if viper.IsSet("server.host") {
			config.Server.Host = viper.GetString("server.host")
		}
		if viper.IsSet("server.port") {
			config.Server.Port = viper.GetInt("server.port")
		}
		if viper.IsSet("server.read_timeout") {
			config.Server.ReadTimeout = viper.GetDuration("server.read_timeout")
		}
		if viper.IsSet("server.write_timeout") {
			config.Server.WriteTimeout = viper.GetDuration("server.write_timeout")
		}
		if viper.IsSet("server.idle_timeout") {
			config.Server.IdleTimeout = viper.GetDuration("server.idle_timeout")
		}
		if viper.IsSet("server.shutdown_timeout") {
			config.Server.ShutdownTimeout = viper.GetDuration("server.shutdown_timeout")
		}
		if viper.IsSet("log.level") {
			config.Log.Level = viper.GetString("log.level")
		}
		if viper.IsSet("log.format") {
			config.Log.Format = viper.GetString("log.format")
		}
		if viper.IsSet("demo.fetch_delay") {
			config.Demo.FetchDelay = viper.GetDuration("demo.fetch_delay")
		}
		if viper.IsSet("demo.failure_rate") {
			config.Demo.FailureRate = viper.GetFloat64("demo.failure_rate")
		}
		if viper.IsSet("demo.user.id") {
			config.Demo.User.ID = viper.GetInt("demo.user.id")
		}
		if viper.IsSet("demo.user.name") {
			config.Demo.User.Name = viper.GetString("demo.user.name")
		}
		if viper.IsSet("files.public_dir") {
			config.Files.PublicDir = viper.GetString("files.public_dir")
		}
		if viper.IsSet("files.data_dir") {
			config.Files.DataDir = viper.GetString("files.data_dir")
		}
		if viper.IsSet("files.demo_file") {
			config.Files.DemoFile = viper.GetString("files.demo_file")
		}
		if viper.IsSet("chain.steps_file") {
			config.Chain.StepsFile = viper.GetString("chain.steps_file")
		}
		if viper.IsSet("telemetry.enabled") {
			config.Telemetry.Enabled = viper.GetBool("telemetry.enabled")
		}
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
