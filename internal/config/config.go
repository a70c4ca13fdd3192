package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Line source kinds.
const (
	SourceFile  = "file"
	SourceQueue = "queue"
)

// Config represents the application's configuration structure.
type Config struct {
	Report            string `json:"report" mapstructure:"report"`
	Source            string `json:"source" mapstructure:"source"`
	Input             string `json:"input" mapstructure:"input"`
	MiddlewareAddress string `json:"middleware-address" mapstructure:"middleware-address"`
	InputName         string `json:"input-name" mapstructure:"input-name"`
	OutputName        string `json:"output-name" mapstructure:"output-name"`
	OutputCSV         string `json:"output-csv" mapstructure:"output-csv"`
	OutputDB          string `json:"output-db" mapstructure:"output-db"`
	ThresholdsFile    string `json:"rfm-thresholds" mapstructure:"rfm-thresholds"`
	ReferenceDate     string `json:"reference-date" mapstructure:"reference-date"`
	LogLevel          string `json:"log-level" mapstructure:"log-level"`
}

var requiredFields = []string{
	"report",
	"source",
	"log-level",
}

var allFields = []string{
	"report",
	"source",
	"input",
	"middleware-address",
	"input-name",
	"output-name",
	"output-csv",
	"output-db",
	"rfm-thresholds",
	"reference-date",
	"log-level",
}

// Load reads configuration from a JSON file and environment variables.
// Environment variables take precedence over the config file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, field := range allFields {
		v.BindEnv(field)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the source/output combinations that viper's
// required-field pass cannot express.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceFile:
		if c.Input == "" {
			return fmt.Errorf("source %q needs the input file path", SourceFile)
		}
	case SourceQueue:
		if c.MiddlewareAddress == "" || c.InputName == "" {
			return fmt.Errorf("source %q needs middleware-address and input-name", SourceQueue)
		}
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}

	if c.OutputCSV == "" && c.OutputDB == "" && c.OutputName == "" {
		return fmt.Errorf("at least one of output-csv, output-db, output-name must be set")
	}
	if c.OutputName != "" && c.MiddlewareAddress == "" {
		return fmt.Errorf("output-name needs middleware-address")
	}
	return nil
}
