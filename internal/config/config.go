// Package config loads converter settings through viper.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"coord2cad/internal/cadgen"
	"coord2cad/internal/coords"
)

const (
	KeyPrimitive        = "conversion.primitive"
	KeyAnnotate         = "conversion.annotate"
	KeyAnnotationHeight = "conversion.annotation_height"
	KeyGroupMode        = "conversion.group_mode"
	KeyComments         = "conversion.comments"
	KeyCoordinateLimit  = "parser.coordinate_limit"
	KeyClosureEpsilon   = "parser.closure_epsilon"
	KeyDefaultGroup     = "parser.default_group"
	KeyAutoCopy         = "clipboard.auto_copy"
	KeyPreview          = "preview.enabled"
	KeyLogLevel         = "log.level"
	KeyMaxInputMB       = "input.max_size_mb"
)

const envPrefix = "COORD2CAD"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the typed, validated view of the settings.
type Config struct {
	Primitive    cadgen.Primitive
	Annotate     bool
	TextHeight   float64
	GroupMode    bool
	Comments     bool
	Limit        float64
	Epsilon      float64
	DefaultGroup string
	AutoCopy     bool
	Preview      bool
	LogLevel     zerolog.Level
	MaxInputMB   int
}

// SetDefaults registers defaults, config file names and the environment
// prefix on v.
func SetDefaults(v *viper.Viper) {
	v.SetConfigName("coord2cad")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/coord2cad")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyPrimitive, "line")
	v.SetDefault(KeyAnnotate, false)
	v.SetDefault(KeyAnnotationHeight, "5")
	v.SetDefault(KeyGroupMode, false)
	v.SetDefault(KeyComments, true)

	v.SetDefault(KeyCoordinateLimit, coords.DefaultLimit)
	v.SetDefault(KeyClosureEpsilon, coords.DefaultEpsilon)
	v.SetDefault(KeyDefaultGroup, coords.DefaultGroupName)

	v.SetDefault(KeyAutoCopy, true)
	v.SetDefault(KeyPreview, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyMaxInputMB, 10)
}

// Load reads the config file. An explicit path must exist; otherwise a
// missing file is not an error and the defaults stay in place.
func Load(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// FromViper builds and validates a Config.
func FromViper(v *viper.Viper) (Config, error) {
	var c Config
	var err error
	if c.Primitive, err = cadgen.ParsePrimitive(v.GetString(KeyPrimitive)); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, KeyPrimitive, err)
	}
	if c.TextHeight, err = ParseHeight(v.GetString(KeyAnnotationHeight)); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyAnnotationHeight, err)
	}
	if c.LogLevel, err = zerolog.ParseLevel(v.GetString(KeyLogLevel)); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, KeyLogLevel, err)
	}
	c.Annotate = v.GetBool(KeyAnnotate)
	c.GroupMode = v.GetBool(KeyGroupMode)
	c.Comments = v.GetBool(KeyComments)
	c.Limit = v.GetFloat64(KeyCoordinateLimit)
	c.Epsilon = v.GetFloat64(KeyClosureEpsilon)
	c.DefaultGroup = v.GetString(KeyDefaultGroup)
	c.AutoCopy = v.GetBool(KeyAutoCopy)
	c.Preview = v.GetBool(KeyPreview)
	c.MaxInputMB = v.GetInt(KeyMaxInputMB)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ParseHeight parses an annotation text height. It must be a finite number
// greater than zero.
func ParseHeight(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: text height %q is not a number", ErrInvalid, s)
	}
	if h <= 0 || math.IsInf(h, 0) || math.IsNaN(h) {
		return 0, fmt.Errorf("%w: text height %q must be positive", ErrInvalid, s)
	}
	return h, nil
}

// Validate checks the value ranges that FromViper cannot express by type.
func (c Config) Validate() error {
	if !c.Primitive.Valid() {
		return fmt.Errorf("%w: %s: %d", ErrInvalid, KeyPrimitive, int(c.Primitive))
	}
	if !(c.Limit > 0) || math.IsInf(c.Limit, 0) {
		return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalid, KeyCoordinateLimit, c.Limit)
	}
	if c.Epsilon < 0 || math.IsNaN(c.Epsilon) {
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalid, KeyClosureEpsilon, c.Epsilon)
	}
	if strings.TrimSpace(c.DefaultGroup) == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalid, KeyDefaultGroup)
	}
	if c.MaxInputMB < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalid, KeyMaxInputMB)
	}
	return nil
}

// Options returns the generator options.
func (c Config) Options() cadgen.Options {
	return cadgen.Options{
		Primitive:  c.Primitive,
		Annotate:   c.Annotate,
		TextHeight: c.TextHeight,
		Epsilon:    c.Epsilon,
		Comments:   c.Comments,
	}
}

// Request returns a conversion request for the configured settings.
func (c Config) Request() cadgen.Request {
	return cadgen.Request{
		Options:      c.Options(),
		GroupMode:    c.GroupMode,
		Limit:        c.Limit,
		DefaultGroup: c.DefaultGroup,
	}
}

// MaxInputBytes is the size above which input files trigger a warning.
func (c Config) MaxInputBytes() int64 {
	return int64(c.MaxInputMB) << 20
}
