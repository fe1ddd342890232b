package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "CLICKAWAY_"

// Load returns the defaults overlaid with the file at path (if it exists)
// and the process environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path into cfg. Keys absent from the
// file keep their current values. A missing file is not an error.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return decode(cfg, path, data)
}

func decode(cfg *Config, path string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		pe := &ParseError{Path: path, Message: err.Error(), Err: err}

		var decErr *toml.DecodeError
		var strictErr *toml.StrictMissingError
		switch {
		case errors.As(err, &decErr):
			pe.Line, pe.Column = decErr.Position()
		case errors.As(err, &strictErr):
			pe.Message = "unknown key"
			if len(strictErr.Errors) > 0 {
				first := strictErr.Errors[0]
				pe.Line, pe.Column = first.Position()
				pe.Message = fmt.Sprintf("unknown key %q", strings.Join(first.Key(), "."))
			}
		}
		return pe
	}
	return nil
}

// ApplyEnv overrides cfg from CLICKAWAY_ variables found through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := lookup(EnvPrefix + "MOUSE_ENABLED"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return envError("MOUSE_ENABLED", v, err)
		}
		cfg.Mouse.Enabled = b
	}
	if v, ok := lookup(EnvPrefix + "DOUBLE_CLICK_TIME"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return envError("DOUBLE_CLICK_TIME", v, err)
		}
		cfg.Mouse.DoubleClickTime = Duration(d)
	}
	if v, ok := lookup(EnvPrefix + "SCRIPTS"); ok {
		cfg.Scripts.Paths = nil
		for _, p := range strings.Split(v, ":") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Scripts.Paths = append(cfg.Scripts.Paths, p)
			}
		}
	}
	return nil
}

func envError(name, value string, err error) error {
	return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidEnv, EnvPrefix, name, value, err)
}
