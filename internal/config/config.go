package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// CadenceConfig is the default rotation cadence applied when a run does
// not override it.
type CadenceConfig struct {
	DaysBase int `yaml:"daysBase" validate:"omitempty,min=1"`
	DaysHome int `yaml:"daysHome" validate:"omitempty,min=1"`
}

// SegmentOverride injects an extra staffed task segment at generation
// time, defined by a recurrence rule (e.g. "FREQ=WEEKLY;BYDAY=TU").
type SegmentOverride struct {
	RRule          string `yaml:"rrule" validate:"required"`
	StartTime      string `yaml:"startTime" validate:"required"`
	EndTime        string `yaml:"endTime" validate:"required"`
	RequiredPeople int    `yaml:"requiredPeople" validate:"min=1"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL      string            `yaml:"databaseURL" validate:"required"`
	OrganizationID   string            `yaml:"organizationID" validate:"required"`
	EngineVersion    string            `yaml:"engineVersion,omitempty"`
	OptimizationMode string            `yaml:"optimizationMode,omitempty" validate:"omitempty,oneof=ratio min_staff tasks"`
	ArrivalHour      string            `yaml:"arrivalHour,omitempty"`
	DefaultCadence   CadenceConfig     `yaml:"defaultCadence"`
	MinStaff         int               `yaml:"minStaff,omitempty" validate:"omitempty,min=1"`
	SegmentOverrides []SegmentOverride `yaml:"segmentOverrides,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from rotaplan_config.yaml,
// looking in the current directory first, then in the user's home
// directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.SegmentOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in segmentOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for rotaplan_config.yaml in the current
// directory and the home directory.
func findConfigFile() (string, error) {
	configFileName := "rotaplan_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
