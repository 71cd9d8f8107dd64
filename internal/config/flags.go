package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Parse builds the configuration from command line arguments. The file named by
// --config, if any, is loaded first and the other flags override it. The result is
// validated.
func Parse(name string, args []string) (Config, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	var (
		def      = Default()
		path     = fs.String("config", "", "configuration file (.yaml, .yml or .toml)")
		width    = fs.Int("width", def.Width, "output width")
		height   = fs.Int("height", def.Height, "output height")
		fps      = fs.Float32("fps", def.FPS, "target frame rate")
		source   = fs.String("source", def.Source, "frame source: camera, screen or test")
		input    = fs.String("input", def.InputDevice, "capture device, or its label")
		output   = fs.String("output", def.OutputDevice, "v4l2loopback output device")
		preview  = fs.String("preview", def.Preview, "listen address of the browser preview, empty to disable")
		logLevel = fs.String("log-level", def.LogLevel, "log level: error, warn, info, debug or trace")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := def
	if *path != "" {
		var err error
		if cfg, err = Load(*path); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "fps":
			cfg.FPS = *fps
		case "source":
			cfg.Source = *source
		case "input":
			cfg.InputDevice = *input
		case "output":
			cfg.OutputDevice = *output
		case "preview":
			cfg.Preview = *preview
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
