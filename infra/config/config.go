package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"matchbook/infra/logging"
)

const envPrefix = "MATCHBOOK"

type Config struct {
	Instrument string         `mapstructure:"instrument" validate:"required"`
	Log        logging.Config `mapstructure:"log"`
	Input      Input          `mapstructure:"input"`
	Display    Display        `mapstructure:"display"`
	Metrics    Metrics        `mapstructure:"metrics"`
}

type Input struct {
	// Commands is a file of text commands replayed before the console
	// starts. Empty means none.
	Commands    string `mapstructure:"commands"`
	Interactive bool   `mapstructure:"interactive"`
}

type Display struct {
	TickSize string `mapstructure:"tick_size" validate:"required,numeric"`
	// Depth caps the levels printed per side; 0 prints all of them.
	Depth int  `mapstructure:"depth" validate:"gte=0"`
	Color bool `mapstructure:"color"`
}

type Metrics struct {
	// Textfile receives the metrics on exit, and every Interval while
	// running when Interval is positive.
	Textfile string        `mapstructure:"textfile"`
	Interval time.Duration `mapstructure:"interval" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("instrument", "DEFAULT")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("input.commands", "")
	v.SetDefault("input.interactive", true)
	v.SetDefault("display.tick_size", "1")
	v.SetDefault("display.depth", 0)
	v.SetDefault("display.color", false)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("metrics.interval", time.Duration(0))
}

// NewFlagSet declares the command-line flags understood by Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML config file")
	fs.String("instrument", "", "instrument traded by the book")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.Bool("log-development", false, "human readable console logging")
	fs.StringP("commands", "f", "", "file of commands to replay on start")
	fs.Bool("interactive", true, "read commands from stdin after replay")
	fs.String("tick-size", "", "price tick size used when printing the book")
	fs.Int("depth", 0, "levels printed per side, 0 for all")
	fs.Bool("color", false, "colour the printed book")
	fs.String("metrics-textfile", "", "write metrics to this file on exit")
	fs.Duration("metrics-interval", 0, "also write metrics this often while running")
	return fs
}

var flagKeys = map[string]string{
	"instrument":       "instrument",
	"log-level":        "log.level",
	"log-development":  "log.development",
	"commands":         "input.commands",
	"interactive":      "input.interactive",
	"tick-size":        "display.tick_size",
	"depth":            "display.depth",
	"color":            "display.color",
	"metrics-textfile": "metrics.textfile",
	"metrics-interval": "metrics.interval",
}

// Load parses args with fs and resolves the configuration. Precedence is
// flags, then MATCHBOOK_* environment variables, then the config file,
// then defaults.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "bind flag %s", name)
			}
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}
