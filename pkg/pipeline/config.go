package pipeline

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/timeblock/pkg/errors"
)

// FileConfig is the optional TOML configuration file overlaying pipeline
// options. Flags win over the file; the file wins over built-in defaults.
//
//	[columns]
//	begin = "start"
//	end   = "stop"
//	label = "what"
//
//	bin   = "6h"
//	style = "outline"
//	gap   = 0.05
//	palette = ["#2f6fab", "#e8833a", "#4a9e5c"]
//
//	[frame]
//	width  = 1200
//	height = 400
type FileConfig struct {
	Columns struct {
		Begin string `toml:"begin"`
		End   string `toml:"end"`
		Label string `toml:"label"`
	} `toml:"columns"`
	Bin     string   `toml:"bin"` // duration string, e.g. "24h"
	Style   string   `toml:"style"`
	Gap     float64  `toml:"gap"`
	Palette []string `toml:"palette"`
	Frame   struct {
		Width  float64 `toml:"width"`
		Height float64 `toml:"height"`
	} `toml:"frame"`
}

// LoadConfig reads and decodes a TOML config file.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// Apply copies the config file's values into any option still at its zero
// value, so explicit flags keep precedence.
func (c FileConfig) Apply(o *Options) error {
	if o.BeginColumn == "" {
		o.BeginColumn = c.Columns.Begin
	}
	if o.EndColumn == "" {
		o.EndColumn = c.Columns.End
	}
	if o.LabelColumn == "" {
		o.LabelColumn = c.Columns.Label
	}
	if o.BinSize == 0 && c.Bin != "" {
		d, err := time.ParseDuration(c.Bin)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "config bin %q: not a duration", c.Bin)
		}
		o.BinSize = d
	}
	if o.Style == "" {
		o.Style = c.Style
	}
	if o.Gap == 0 {
		o.Gap = c.Gap
	}
	if len(o.Palette) == 0 {
		o.Palette = c.Palette
	}
	if o.Width == 0 {
		o.Width = c.Frame.Width
	}
	if o.Height == 0 {
		o.Height = c.Frame.Height
	}
	return nil
}
