// Package config loads the YAML configuration that selects a writer factory
// by alias and shapes the documents written through it.
//
//	writer-factory:
//	  alias: csv-indent-stream-writer
//	  indent: "    "
//	document:
//	  root: csv-xml
//	  element: record
//	log:
//	  level: debug
//
// The alias is resolved when the configuration is loaded so that an unknown
// factory is reported before any output is opened.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/brimdata/stax"
	"github.com/brimdata/stax/factory"
	"github.com/brimdata/stax/pkg/logger"
	"github.com/brimdata/stax/sio/emitter"
	"github.com/brimdata/stax/xmlstream"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	WriterFactory FactoryConfig  `yaml:"writer-factory"`
	Document      DocumentConfig `yaml:"document"`
	Log           logger.Config  `yaml:"log"`

	// Factory is resolved from WriterFactory by Resolve.
	Factory stax.Factory `yaml:"-"`
}

type FactoryConfig struct {
	Alias string `yaml:"alias"`
	// Prefix and Indent may hold only XML white space.
	Prefix    string `yaml:"prefix" validate:"xmlspace"`
	Indent    string `yaml:"indent" validate:"xmlspace"`
	Normalize bool   `yaml:"normalize"`
}

func (f FactoryConfig) Options() factory.Options {
	return factory.Options{
		Prefix:    f.Prefix,
		Indent:    f.Indent,
		Normalize: f.Normalize,
	}
}

type DocumentConfig struct {
	Root          string `yaml:"root"`
	Element       string `yaml:"element"`
	NoDeclaration bool   `yaml:"no-declaration"`
	Number        bool   `yaml:"number"`
}

func (d DocumentConfig) Opts() emitter.Opts {
	return emitter.Opts{
		Root:          d.Root,
		Element:       d.Element,
		NoDeclaration: d.NoDeclaration,
		Number:        d.Number,
	}
}

// Env holds defaults read from STAX_* environment variables.  Command-line
// options take precedence over them.
type Env struct {
	// Config is a config file read when -config is not given.
	Config  string `envconfig:"CONFIG"`
	Factory string `envconfig:"FACTORY"`
}

func LoadEnv() (Env, error) {
	var env Env
	err := envconfig.Process("stax", &env)
	return env, err
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("xmlspace", func(fl validator.FieldLevel) bool {
		return strings.Trim(fl.Field().String(), " \t\r\n") == ""
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		WriterFactory: FactoryConfig{Alias: factory.DefaultAlias},
		Document: DocumentConfig{
			Root:    emitter.DefaultRoot,
			Element: emitter.DefaultElement,
		},
		Log: logger.Config{
			Path:  "stderr",
			Mode:  logger.FileModeAppend,
			Level: zapcore.InfoLevel,
		},
	}
}

// Load reads the file at path and resolves it against the built-in
// factories.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes b over Default and resolves it against the built-in
// factories.  Unknown fields are errors.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.UnmarshalWithOptions(b, c, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	if err := c.Resolve(factory.Builtin()); err != nil {
		return nil, err
	}
	return c, nil
}

// Resolve validates c and sets c.Factory from the alias in r.
func (c *Config) Resolve(r *factory.Registry) error {
	if err := validate.Struct(c.WriterFactory); err != nil {
		return fmt.Errorf("writer-factory: %w", err)
	}
	if err := validate.Struct(c.Log); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := xmlstream.CheckName("root", c.Document.Root); err != nil {
		return err
	}
	if err := xmlstream.CheckName("element", c.Document.Element); err != nil {
		return err
	}
	f, err := r.Lookup(c.WriterFactory.Alias, c.WriterFactory.Options())
	if err != nil {
		return err
	}
	c.Factory = f
	return nil
}
