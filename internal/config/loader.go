// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/seed"
)

// EnvPrefix is the environment variable prefix: MCIK_ALPHA -> alpha.
const EnvPrefix = "MCIK_"

// defaultFiles are searched in the working directory when no path is given.
var defaultFiles = []string{"mcik.yaml", "mcik.yml"}

// flagKeys maps flag names that differ from their config keys.
var flagKeys = map[string]string{
	"precision":  "scalar_precision",
	"poke":       "seed.pokes",
	"seed":       "seed.kind",
	"amplitude":  "seed.amplitude",
	"log-level":  "log_level",
	"log-format": "log_format",
	"metrics":    "metrics_file",
}

// findConfigFile returns the explicit path or the first default file present.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range defaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	return ""
}

// envKey maps MCIK_SEED_KIND -> seed.kind and MCIK_LOG_LEVEL -> log_level.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "seed_"); ok {
		return "seed." + rest
	}

	return key
}

// Load resolves the configuration from defaults, the config file at path
// (or ./mcik.yaml), MCIK_* env vars and the explicitly set flags, then validates it.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(path)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				pokesHook,
				precisionHook,
				mapstructure.StringToSliceHookFunc(","),
			),
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var (
	pokesType     = reflect.TypeOf([]seed.Poke(nil))
	precisionType = reflect.TypeOf(lattice.Precision(""))
)

// pokesHook decodes "site=value" strings (one, comma-separated, or a list)
// into []seed.Poke. YAML maps {site, value} pass through untouched.
func pokesHook(from, to reflect.Type, data any) (any, error) {
	if to != pokesType {
		return data, nil
	}
	var items []string
	switch v := data.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return []seed.Poke{}, nil
		}
		items = strings.Split(v, ",")
	case []string:
		items = v
	case []any:
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return data, nil
			}
			items = append(items, s)
		}
	default:
		return data, nil
	}
	out := make([]seed.Poke, 0, len(items))
	for _, s := range items {
		p, err := ParsePoke(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}

// precisionHook normalises aliases such as "float32" to lattice.Single.
func precisionHook(from, to reflect.Type, data any) (any, error) {
	if to != precisionType || from.Kind() != reflect.String {
		return data, nil
	}
	raw := reflect.ValueOf(data).String()
	p, err := lattice.ParsePrecision(raw)
	if err != nil {
		return nil, invalid("scalar_precision %q", raw)
	}

	return p, nil
}

// ParsePoke parses "site=value", e.g. "4=0.25".
func ParsePoke(s string) (seed.Poke, error) {
	site, value, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return seed.Poke{}, invalid("poke %q (want site=value)", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(site))
	if err != nil {
		return seed.Poke{}, invalid("poke %q: site: %v", s, err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return seed.Poke{}, invalid("poke %q: value: %v", s, err)
	}

	return seed.Poke{Site: i, Value: v}, nil
}
