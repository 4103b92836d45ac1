// Package config provides configuration management for the PickPulse service.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// League caps must stay inside the calibration curve's output range
const (
	minLeagueCap = 0.52
	maxLeagueCap = 0.95
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("leaguecaps", validateLeagueCaps)
	_ = v.RegisterValidation("cronspec", validateCronSpec)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration is required")
	}

	err := cv.validator.Struct(cfg)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateLeagueCaps(fl validator.FieldLevel) bool {
	caps, ok := fl.Field().Interface().(map[string]float64)
	if !ok {
		return false
	}
	for league, leagueCap := range caps {
		if strings.TrimSpace(league) == "" {
			return false
		}
		if leagueCap < minLeagueCap || leagueCap > maxLeagueCap {
			return false
		}
	}
	return true
}

func validateCronSpec(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	th := cfg.Decision.Thresholds
	if th.TopPick > 0 && th.StrongLean > 0 && th.TopPick < th.StrongLean {
		return fmt.Errorf("decision top_pick threshold cannot be below strong_lean threshold")
	}
	if th.StrongLean > 0 && th.Watchlist > 0 && th.StrongLean < th.Watchlist {
		return fmt.Errorf("decision strong_lean threshold cannot be below watchlist threshold")
	}

	if cfg.Upstream.Enabled && cfg.Upstream.SlateURL == "" {
		return fmt.Errorf("upstream slate_url is required when upstream is enabled")
	}

	if cfg.Database.Enabled {
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("database host, name and user are required when database is enabled")
		}
		if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	}

	if cfg.Performance.RefreshEnabled {
		if !cfg.Database.Enabled {
			return fmt.Errorf("performance refresh requires the database to be enabled")
		}
		if cfg.Performance.RefreshSchedule == "" {
			return fmt.Errorf("performance refresh_schedule is required when refresh is enabled")
		}
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg.WriteString(fmt.Sprintf("- Field '%s' is required\n", field))
		case "url":
			errMsg.WriteString(fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value))
		case "min", "max":
			errMsg.WriteString(fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag))
		case "gt", "gte", "lt", "lte":
			errMsg.WriteString(fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag))
		case "environment":
			errMsg.WriteString(fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field))
		case "loglevel":
			errMsg.WriteString(fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field))
		case "leaguecaps":
			errMsg.WriteString(fmt.Sprintf("- Field '%s' caps must be between %.2f and %.2f\n", field, minLeagueCap, maxLeagueCap))
		case "cronspec":
			errMsg.WriteString(fmt.Sprintf("- Field '%s' is not a valid cron schedule: '%v'\n", field, value))
		case "datetime":
			errMsg.WriteString(fmt.Sprintf("- Field '%s' must be a YYYY-MM-DD date, got '%v'\n", field, value))
		case "oneof":
			errMsg.WriteString(fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value))
		default:
			errMsg.WriteString(fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag))
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg.String())
}
