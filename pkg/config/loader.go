package config

import (
	_ "embed"
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	grasserr "github.com/jgoizueta/grass-gis/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// EnvPrefix is the prefix of environment variables that override session
// configuration keys (GRASSGIS_GISBASE, GRASSGIS_MAPSET, ...). The prefix
// differs from GRASS_ on purpose: GRASS_* variables are what an allocated
// session sets.
const EnvPrefix = "GRASSGIS_"

// Load builds a Config by layering, in increasing precedence: the embedded
// defaults, an optional TOML or YAML file, GRASSGIS_* environment variables
// and an explicit overrides map.
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, grasserr.Wrap(err, grasserr.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file, parser chosen by extension
	if path != "" {
		var parser koanf.Parser = toml.Parser()
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, grasserr.Wrapf(err, grasserr.ErrConfigParse,
				"failed to load config from %s", path)
		}
	}

	// 3. Environment overrides. Keys are flat, so only lowercase the name.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, grasserr.Wrap(err, grasserr.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, grasserr.Wrap(err, grasserr.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, grasserr.Wrap(err, grasserr.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
