// Package config loads the markup tool configuration with viper from a
// .markup.yml file, MARKUP_ environment variables and command line flags.
//
// Environment variables follow the MARKUP_<SECTION>_<KEY> pattern, e.g.
// MARKUP_GENERATE_SOURCE_MAP=true or MARKUP_LOG_LEVEL=debug. The config file
// itself can be named with MARKUP_CONFIG_FILE.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/grindlemire/go-markup/internal/logging"
	"github.com/grindlemire/go-markup/internal/markupgen"
)

const (
	// FileName is the default config file name, searched in the working
	// directory.
	FileName = ".markup.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "MARKUP"
)

// Config is the complete tool configuration.
type Config struct {
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate"`
	Parser   ParserConfig   `mapstructure:"parser" yaml:"parser"`
	Watch    WatchConfig    `mapstructure:"watch" yaml:"watch"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// GenerateConfig controls which files are compiled and how.
type GenerateConfig struct {
	Extension   string `mapstructure:"extension" yaml:"extension"`
	Suffix      string `mapstructure:"suffix" yaml:"suffix"`
	SourceMap   bool   `mapstructure:"source_map" yaml:"source_map"`
	SkipImports bool   `mapstructure:"skip_imports" yaml:"skip_imports"`
}

// ParserConfig overrides the element sets of the markup parser. An empty
// list keeps the HTML default.
type ParserConfig struct {
	VoidElements    []string `mapstructure:"void_elements" yaml:"void_elements"`
	RawTextElements []string `mapstructure:"raw_text_elements" yaml:"raw_text_elements"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Generate: GenerateConfig{
			Extension: ".gsx",
			Suffix:    "_gsx.go",
		},
		Parser: ParserConfig{
			VoidElements:    []string{},
			RawTextElements: []string{},
		},
		Watch: WatchConfig{Debounce: 100 * time.Millisecond},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// SetDefaults registers every key with its default so that environment
// overrides apply to all of them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("generate.extension", d.Generate.Extension)
	v.SetDefault("generate.suffix", d.Generate.Suffix)
	v.SetDefault("generate.source_map", d.Generate.SourceMap)
	v.SetDefault("generate.skip_imports", d.Generate.SkipImports)
	v.SetDefault("parser.void_elements", d.Parser.VoidElements)
	v.SetDefault("parser.raw_text_elements", d.Parser.RawTextElements)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Init points v at the config file and the environment. file wins over
// MARKUP_CONFIG_FILE, which wins over .markup.yml in the working directory.
// A missing default file is not an error; a missing explicit file is.
func Init(v *viper.Viper, file string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		file = os.Getenv(EnvPrefix + "_CONFIG_FILE")
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", file, err)
		}
		return nil
	}

	v.AddConfigPath(".")
	v.SetConfigName(strings.TrimSuffix(FileName, ".yml"))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var elementName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if !strings.HasPrefix(c.Generate.Extension, ".") || len(c.Generate.Extension) < 2 {
		errs = append(errs, fmt.Errorf("generate.extension must start with '.', got %q", c.Generate.Extension))
	}
	if !strings.HasSuffix(c.Generate.Suffix, ".go") {
		errs = append(errs, fmt.Errorf("generate.suffix must end in .go, got %q", c.Generate.Suffix))
	}
	if c.Generate.Suffix == c.Generate.Extension {
		errs = append(errs, errors.New("generate.suffix must differ from generate.extension"))
	}

	for _, name := range c.Parser.VoidElements {
		if !elementName.MatchString(name) {
			errs = append(errs, fmt.Errorf("parser.void_elements: invalid element name %q", name))
		}
	}
	for _, name := range c.Parser.RawTextElements {
		if !elementName.MatchString(name) {
			errs = append(errs, fmt.Errorf("parser.raw_text_elements: invalid element name %q", name))
		}
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Markup returns the parser configuration for the compiler.
func (c *Config) Markup() *markupgen.Config {
	return markupgen.NewConfig(c.Parser.VoidElements, c.Parser.RawTextElements)
}

// YAML encodes the configuration in the .markup.yml format.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default configuration to path. An existing file
// is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := Default().YAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
