// Package config resolves flexmap settings from flags, FLEXMAP_* environment
// variables and an optional flexmap.yaml file.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/viper"
)

const EnvPrefix = "FLEXMAP"

// Keys understood by Load.
const (
	KeyLogLevel   = "log_level"
	KeySchemas    = "schemas"
	KeySimilarity = "similarity"
	KeyOptions    = "options"
	KeyStrict     = "strict"
	KeyFormat     = "format"
	KeyDebounce   = "debounce"
)

const (
	DefaultLogLevel = "info"
	DefaultFormat   = "tree"
	DefaultDebounce = 200 * time.Millisecond
)

// Config holds the resolved settings.
type Config struct {
	LogLevel   string        `mapstructure:"log_level"`
	Schemas    []string      `mapstructure:"schemas"`
	Similarity string        `mapstructure:"similarity"`
	Strict     bool          `mapstructure:"strict"`
	Format     string        `mapstructure:"format"`
	Debounce   time.Duration `mapstructure:"debounce"`

	// Options are load options applied to every document, keyed as in
	// <?flexmi?> directives.
	Options map[string]string `mapstructure:"-"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeyDebounce, DefaultDebounce)
	v.SetDefault(KeyStrict, false)
}

// Load reads configuration into a Config. Precedence, highest first: values
// bound on v (flags), environment, config file, defaults. An empty path looks
// for flexmap.yaml in the working directory and silently skips it when absent.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
	} else {
		for _, candidate := range []string{"flexmap.yaml", "flexmap.yml", ".flexmap.yaml"} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}

			v.SetConfigFile(candidate)

			if err := v.ReadInConfig(); err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("failed to read config file %s", candidate)).
					WithCause(err)
			}

			break
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unable to decode config").
			WithCause(err)
	}

	cfg.Options = stringMap(v.GetStringMap(KeyOptions))

	return &cfg, nil
}

// Merge overlays extra onto the configured options. Keys of extra win.
func (c *Config) Merge(extra map[string]string) map[string]string {
	out := make(map[string]string, len(c.Options)+len(extra))

	for k, v := range c.Options {
		out[k] = v
	}

	for k, v := range extra {
		out[k] = v
	}

	return out
}

// OptionKeys returns the configured option keys in sorted order.
func (c *Config) OptionKeys() []string {
	keys := make([]string, 0, len(c.Options))
	for k := range c.Options {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func stringMap(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = fmt.Sprint(v)
	}

	return out
}
