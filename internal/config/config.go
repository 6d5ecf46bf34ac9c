package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/catalog"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/logging"
	"github.com/Ricardo08S/StarrySky-4/internal/session"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Catalog  CatalogConfig     `yaml:"catalog"`
	Field    FieldConfig       `yaml:"field"`
	HTTP     HTTPConfig        `yaml:"http"`
	Session  SessionConfig     `yaml:"session"`
	Observer ObserverConfig    `yaml:"observer"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := c.Field.Validate(); err != nil {
		return fmt.Errorf("field: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := c.Observer.Validate(); err != nil {
		return fmt.Errorf("observer: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "warning", "error")),
		validation.Field(&c.LogFormat, validation.In(string(logging.FormatText), string(logging.FormatJSON))),
	)
}

// Logger builds the configured logger.
func (c *ApplicationConfig) Logger() *logging.Logger {
	format := logging.Format(c.LogFormat)
	if format == "" {
		format = logging.FormatText
	}
	return logging.NewWithOptions(logging.ParseLevel(c.LogLevel), format, os.Stderr)
}

// CatalogConfig selects the star catalog and how to decode it.
type CatalogConfig struct {
	Path             string `yaml:"path"`
	Format           string `yaml:"format"`
	MagnitudeProfile string `yaml:"magnitude_profile"`
	Watch            bool   `yaml:"watch"`
}

// Validate validates the catalog configuration.
func (c *CatalogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Format, validation.Required, validation.In("binary", "bsc5", "json", "ndjson", "jsonl")),
		validation.Field(&c.MagnitudeProfile, validation.In(star.Hundredths.Name, star.Decimal.Name)),
	)
}

// CatalogFormat resolves the configured format and magnitude profile.
func (c *CatalogConfig) CatalogFormat() (catalog.Format, error) {
	profile, ok, err := star.ParseMagnitudeProfile(c.MagnitudeProfile)
	if err != nil {
		return nil, err
	}
	return catalog.ParseFormat(c.Format, profile, ok)
}

// FieldConfig holds the star field geometry.
type FieldConfig struct {
	Scale             float64 `yaml:"scale"`
	SizeMin           float64 `yaml:"size_min"`
	SizeMax           float64 `yaml:"size_max"`
	LineInset         float64 `yaml:"line_inset"`
	CameraSensitivity float64 `yaml:"camera_sensitivity"`
}

// Validate validates the field configuration.
func (c *FieldConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Scale, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.SizeMin, validation.Min(0.0)),
		validation.Field(&c.LineInset, validation.Min(0.0)),
		validation.Field(&c.CameraSensitivity, validation.Required, validation.Min(0.0).Exclusive()),
	); err != nil {
		return err
	}
	if c.SizeMax < c.SizeMin {
		return fmt.Errorf("size_max %v is below size_min %v", c.SizeMax, c.SizeMin)
	}
	return nil
}

// Field returns the constellation field geometry.
func (c *FieldConfig) Field() constellation.Field {
	return constellation.Field{Scale: c.Scale, SizeMin: c.SizeMin, SizeMax: c.SizeMax}
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SessionConfig holds session manager limits.
type SessionConfig struct {
	MaxEvents int `yaml:"max_events"`
}

// Validate validates the session configuration.
func (c *SessionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxEvents, validation.Required, validation.Min(1)),
	)
}

// ObserverConfig places an optional ground observer for altitude and
// azimuth readouts.
type ObserverConfig struct {
	Enabled bool    `yaml:"enabled"`
	Name    string  `yaml:"name"`
	Lat     float64 `yaml:"lat"`
	Lon     float64 `yaml:"lon"`
}

// Validate validates the observer configuration.
func (c *ObserverConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Lat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&c.Lon, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// Site returns the configured observer, or false when none is enabled.
func (c *ObserverConfig) Site() (astro.Observer, bool) {
	if !c.Enabled {
		return astro.Observer{}, false
	}
	return astro.Observer{Name: c.Name, LatDeg: c.Lat, LonDeg: c.Lon}, true
}

// ManagerConfig returns the session manager configuration.
func (c *Config) ManagerConfig() session.Config {
	return session.Config{
		MaxEvents: c.Session.MaxEvents,
		Field:     c.Field.Field(),
		LineInset: c.Field.LineInset,
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	field := constellation.DefaultField()
	return &Config{
		App: ApplicationConfig{
			LogLevel:  "info",
			LogFormat: string(logging.FormatText),
		},
		Catalog: CatalogConfig{
			Path:   "./data/bsc5.bin",
			Format: "binary",
		},
		Field: FieldConfig{
			Scale:             field.Scale,
			SizeMin:           field.SizeMin,
			SizeMax:           field.SizeMax,
			LineInset:         constellation.DefaultLineInset,
			CameraSensitivity: 2,
		},
		HTTP: HTTPConfig{
			Port: 8080,
		},
		Session: SessionConfig{
			MaxEvents: 50,
		},
	}
}
