// Package config loads ls-rigel settings from defaults, .ls-rigel.yaml,
// RIGEL_* environment variables and command-line flags, via viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/litescript/ls-rigel/internal/astro"
	"github.com/litescript/ls-rigel/internal/logging"
)

// EnvPrefix is prepended to every environment variable, e.g.
// RIGEL_OBSERVER_LAT_DEG for observer.lat_deg.
const EnvPrefix = "RIGEL"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// ObserverConfig is where the sky is seen from.
type ObserverConfig struct {
	LatDeg float64 `mapstructure:"lat_deg"`
	LonDeg float64 `mapstructure:"lon_deg"`
}

// CatalogConfig locates the star and asterism files. An empty HygPath
// selects the built-in catalogue.
type CatalogConfig struct {
	HygPath      string `mapstructure:"hyg_path"`
	AsterismPath string `mapstructure:"asterism_path"`
}

// ViewConfig sets the initial projection center and the redraw period.
type ViewConfig struct {
	CenterAzDeg  float64       `mapstructure:"center_az_deg"`
	CenterAltDeg float64       `mapstructure:"center_alt_deg"`
	Refresh      time.Duration `mapstructure:"refresh"`
}

// Config holds all runtime configuration.
type Config struct {
	Observer ObserverConfig `mapstructure:"observer"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	View     ViewConfig     `mapstructure:"view"`
	LogLevel string         `mapstructure:"log_level"`
}

// BindEnv makes viper read RIGEL_* environment variables, with dots in keys
// replaced by underscores.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	// EPFL, Lausanne.
	viper.SetDefault("observer.lat_deg", 46.52)
	viper.SetDefault("observer.lon_deg", 6.57)
	viper.SetDefault("catalog.hyg_path", "")
	viper.SetDefault("catalog.asterism_path", "")
	viper.SetDefault("view.center_az_deg", 180.0)
	viper.SetDefault("view.center_alt_deg", 15.0)
	viper.SetDefault("view.refresh", time.Second)
	viper.SetDefault("log_level", "info")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges that viper cannot express.
func (c Config) Validate() error {
	var errs []error
	if !astro.IsValidLatDeg(c.Observer.LatDeg) {
		errs = append(errs, fmt.Errorf("observer.lat_deg %g not in [-90, 90]", c.Observer.LatDeg))
	}
	if !astro.IsValidLonDeg(c.Observer.LonDeg) {
		errs = append(errs, fmt.Errorf("observer.lon_deg %g not in [-180, 180)", c.Observer.LonDeg))
	}
	if _, err := astro.NewHorizontalDeg(c.View.CenterAzDeg, c.View.CenterAltDeg); err != nil {
		errs = append(errs, fmt.Errorf("view center (%g, %g): %v", c.View.CenterAzDeg, c.View.CenterAltDeg, err))
	}
	if c.View.Refresh <= 0 {
		errs = append(errs, fmt.Errorf("view.refresh %v must be positive", c.View.Refresh))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %v", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Where returns the observer's location.
func (c Config) Where() (astro.Geographic, error) {
	return astro.NewGeographicDeg(c.Observer.LonDeg, c.Observer.LatDeg)
}

// Center returns the initial projection center.
func (c Config) Center() (astro.Horizontal, error) {
	return astro.NewHorizontalDeg(c.View.CenterAzDeg, c.View.CenterAltDeg)
}

// Level returns the parsed log level, defaulting to info.
func (c Config) Level() logging.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}
