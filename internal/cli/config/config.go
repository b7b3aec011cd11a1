package config

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/conduit-lang/docxmlext/internal/logging"
)

// EnvPrefix prefixes the environment variables that override configuration
// keys, e.g. DOCXMLEXT_WORKERS or DOCXMLEXT_LOG_LEVEL.
const EnvPrefix = "DOCXMLEXT"

// Config represents the docxmlext configuration
type Config struct {
	Workers    int          `mapstructure:"workers" validate:"min=1"`
	Log        LogConfig    `mapstructure:"log"`
	Output     OutputConfig `mapstructure:"output"`
	References []string     `mapstructure:"references" validate:"dive,required"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"loglevel"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Indent int `mapstructure:"indent" validate:"min=0,max=8"`
}

// validate reports field paths by their configuration key.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logging.ParseLevel(fl.Field().String())
		return err == nil
	})
	return v
}

// Load loads the configuration. An explicit path must exist; otherwise
// docxmlext.yml or docxmlext.yaml in the working directory is used when
// present.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatConsole)
	v.SetDefault("output.indent", 0)
	v.SetDefault("references", []string{})

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("docxmlext")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration and returns the first violation.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return describe(verrs[0])
}

func describe(fe validator.FieldError) error {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch key {
	case "workers":
		return fmt.Errorf("workers must be at least 1, got: %v", fe.Value())
	case "output.indent":
		return fmt.Errorf("output.indent must be between 0 and 8, got: %v", fe.Value())
	case "log.level":
		return fmt.Errorf("log.level: unknown log level %q", fe.Value())
	case "log.format":
		return fmt.Errorf("log.format must be %q or %q, got: %v", logging.FormatConsole, logging.FormatJSON, fe.Value())
	}
	if fe.Tag() == "required" {
		return fmt.Errorf("%s must not be empty", key)
	}
	return fmt.Errorf("%s failed the %s check", key, fe.Tag())
}
