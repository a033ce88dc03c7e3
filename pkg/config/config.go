// Package config loads controller settings from layered YAML files, a .env file and
// ARDUFSM_* environment variables.
//
// Layers are merged in order, later layers winning key by key, so a rig file can set
// hardware defaults that a subject file then refines:
//
//	ardufsm run --config rig.yaml --config mouse-42.yaml
//
// Environment variables are applied last. ARDUFSM_PARAM_<NAME> sets one trial
// parameter, for example ARDUFSM_PARAM_RWIN=30000.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/ardufsm/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ARDUFSM_"

const paramEnvPrefix = EnvPrefix + "PARAM_"

// Config is the controller configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// Port is the host link device. Empty means stdin/stdout.
	Port string `mapstructure:"port" yaml:"port"`

	Simulate      bool    `mapstructure:"simulate" yaml:"simulate"`
	GoFraction    float64 `mapstructure:"go_fraction" yaml:"go_fraction"`
	FakeResponses bool    `mapstructure:"fake_responses" yaml:"fake_responses"`
	Seed          uint64  `mapstructure:"seed" yaml:"seed"`
	LickThreshold int     `mapstructure:"lick_threshold" yaml:"lick_threshold"`
	// SimLickGap is the mean time between simulated lick bouts.
	SimLickGap time.Duration `mapstructure:"sim_lick_gap" yaml:"sim_lick_gap"`

	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	RetryDelay   time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`
	Trials       int           `mapstructure:"trials" yaml:"trials"`

	// Params are trial parameters by abbreviation, applied before the first trial.
	Params map[string]int64 `mapstructure:"params" yaml:"params"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:      "info",
		GoFraction:    0.5,
		Seed:          1,
		LickThreshold: 900,
		SimLickGap:    5 * time.Second,
		RetryDelay:    time.Second,
	}
}

// Load merges files in order over Default and applies overrides from environ
// (KEY=VALUE pairs, as returned by os.Environ).
func Load(files []string, environ []string) (Config, error) {
	merged := map[string]any{}
	for _, path := range files {
		layer, err := readLayer(path)
		if err != nil {
			return Config{}, err
		}
		mergeInto(merged, layer)
	}
	mergeInto(merged, envLayer(environ))

	cfg := Default()
	if err := decode(merged, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Validate checks ranges.
func (c Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LickThreshold < 0 || c.LickThreshold > 1023 {
		errs = append(errs, fmt.Errorf("lick_threshold %d outside 0..1023", c.LickThreshold))
	}
	if c.GoFraction < 0 || c.GoFraction > 1 {
		errs = append(errs, fmt.Errorf("go_fraction %v outside 0..1", c.GoFraction))
	}
	if c.PollInterval < 0 || c.RetryDelay < 0 || c.SimLickGap < 0 {
		errs = append(errs, errors.New("poll_interval, retry_delay and sim_lick_gap must not be negative"))
	}
	if c.Trials < 0 {
		errs = append(errs, fmt.Errorf("trials %d is negative", c.Trials))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func readLayer(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	layer := map[string]any{}
	if err := yaml.Unmarshal(data, &layer); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return layer, nil
}

// mergeInto copies src over dst, descending into nested maps.
func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				mergeInto(existing, sub)
				continue
			}
			cp := map[string]any{}
			mergeInto(cp, sub)
			dst[k] = cp
			continue
		}
		dst[k] = v
	}
}

// envLayer collects ARDUFSM_* overrides. Variables that name no config key are
// skipped, so unrelated ARDUFSM_ settings in the environment do not break Load.
func envLayer(environ []string) map[string]any {
	known := configKeys()
	layer := map[string]any{}
	params := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if name, isParam := strings.CutPrefix(key, paramEnvPrefix); isParam {
			if name != "" {
				params[strings.ToUpper(name)] = value
			}
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if !known[name] || name == "params" {
			continue
		}
		layer[name] = value
	}
	if len(params) > 0 {
		layer["params"] = params
	}
	return layer
}

// configKeys lists the mapstructure keys of Config.
func configKeys() map[string]bool {
	t := reflect.TypeOf(Config{})
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag, _, _ := strings.Cut(t.Field(i).Tag.Get("mapstructure"), ","); tag != "" {
			keys[tag] = true
		}
	}
	return keys
}

func decode(input map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			millisecondsHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// millisecondsHook reads bare numbers as milliseconds, the unit of every duration
// parameter on the wire.
func millisecondsHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	case uint64:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return time.Duration(n) * time.Millisecond, nil
		}
	}
	return data, nil
}
