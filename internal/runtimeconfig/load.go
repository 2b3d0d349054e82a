package runtimeconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tailscale/hujson"
)

// ErrConfigFileInvalid wraps parse failures of a configuration file.
var ErrConfigFileInvalid = errors.New("medit config: configuration file is invalid")

// fileConfig is the on-disk shape. Durations are written as Go duration
// strings ("500ms", "3s"); omitted fields keep their defaults.
type fileConfig struct {
	Persistence *struct {
		Key          *string `json:"key"`
		Delay        *string `json:"delay"`
		WriteTimeout *string `json:"write_timeout"`
		FlushOnClose *bool   `json:"flush_on_close"`
	} `json:"persistence"`
	Storage *struct {
		Provider *string `json:"provider"`
		Dir      *string `json:"dir"`
		DSN      *string `json:"dsn"`
	} `json:"storage"`
	Render *struct {
		Extensions      []string `json:"extensions"`
		HardWraps       *bool    `json:"hard_wraps"`
		StripParagraphs *bool    `json:"strip_paragraphs"`
		Highlight       *bool    `json:"highlight"`
		AllowedElements []string `json:"allowed_elements"`
	} `json:"render"`
	Notifications *struct {
		TTL *string `json:"ttl"`
	} `json:"notifications"`
	Clipboard *struct {
		Provider *string `json:"provider"`
	} `json:"clipboard"`
	Features *struct {
		Logger *bool `json:"logger"`
	} `json:"features"`
	Logging *struct {
		Provider  *string  `json:"provider"`
		Level     *string  `json:"level"`
		Format    *string  `json:"format"`
		AddSource *bool    `json:"add_source"`
		Focus     []string `json:"focus"`
	} `json:"logging"`
}

// LoadFile reads a JSON or JSONC (comments, trailing commas) file over
// DefaultConfig and validates the result.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse applies data over DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := Apply(&cfg, data); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply overlays data onto cfg without validating.
func Apply(cfg *Config, data []byte) error {
	standard, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigFileInvalid, err)
	}
	var raw fileConfig
	if err := json.Unmarshal(standard, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigFileInvalid, err)
	}

	if p := raw.Persistence; p != nil {
		setString(&cfg.Persistence.Key, p.Key)
		if err := setDuration(&cfg.Persistence.Delay, p.Delay, "persistence.delay"); err != nil {
			return err
		}
		if err := setDuration(&cfg.Persistence.WriteTimeout, p.WriteTimeout, "persistence.write_timeout"); err != nil {
			return err
		}
		setBool(&cfg.Persistence.FlushOnClose, p.FlushOnClose)
	}
	if s := raw.Storage; s != nil {
		setString(&cfg.Storage.Provider, s.Provider)
		setString(&cfg.Storage.Dir, s.Dir)
		setString(&cfg.Storage.DSN, s.DSN)
	}
	if r := raw.Render; r != nil {
		if r.Extensions != nil {
			cfg.Render.Extensions = r.Extensions
		}
		setBool(&cfg.Render.HardWraps, r.HardWraps)
		setBool(&cfg.Render.StripParagraphs, r.StripParagraphs)
		setBool(&cfg.Render.Highlight, r.Highlight)
		if r.AllowedElements != nil {
			cfg.Render.AllowedElements = r.AllowedElements
		}
	}
	if n := raw.Notifications; n != nil {
		if err := setDuration(&cfg.Notifications.TTL, n.TTL, "notifications.ttl"); err != nil {
			return err
		}
	}
	if c := raw.Clipboard; c != nil {
		setString(&cfg.Clipboard.Provider, c.Provider)
	}
	if f := raw.Features; f != nil {
		setBool(&cfg.Features.Logger, f.Logger)
	}
	if l := raw.Logging; l != nil {
		setString(&cfg.Logging.Provider, l.Provider)
		setString(&cfg.Logging.Level, l.Level)
		setString(&cfg.Logging.Format, l.Format)
		setBool(&cfg.Logging.AddSource, l.AddSource)
		if l.Focus != nil {
			cfg.Logging.Focus = l.Focus
		}
	}
	return nil
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}

func setBool(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}

func setDuration(dst *time.Duration, value *string, field string) error {
	if value == nil {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigFileInvalid, field, err)
	}
	*dst = d
	return nil
}
