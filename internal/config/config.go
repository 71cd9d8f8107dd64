// Package config holds the settings of the videoproxy command. Settings come from an
// optional YAML or TOML file and are overridden by command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Frame sources.
const (
	SourceCamera = "camera"
	SourceScreen = "screen"
	SourceTest   = "test"
)

var errUnknownFormat = errors.New("unknown config file format")

// Config is the complete videoproxy configuration. It isn't modified after loading.
type Config struct {
	Width        int     `yaml:"width" toml:"width"`
	Height       int     `yaml:"height" toml:"height"`
	FPS          float32 `yaml:"fps" toml:"fps"`
	Source       string  `yaml:"source" toml:"source"`
	InputDevice  string  `yaml:"input_device" toml:"input_device"`
	OutputDevice string  `yaml:"output_device" toml:"output_device"`
	// Preview is the listen address of the browser preview, empty to disable it.
	Preview  string `yaml:"preview" toml:"preview"`
	LogLevel string `yaml:"log_level" toml:"log_level"`
	// Mask is the initial pass selection.
	Mask   uint64       `yaml:"mask" toml:"mask"`
	Passes PassesConfig `yaml:"passes" toml:"passes"`
}

// PassesConfig configures the passes that need external resources.
type PassesConfig struct {
	StaticText  string        `yaml:"static_text" toml:"static_text"`
	Shell       []ShellConfig `yaml:"shell" toml:"shell"`
	Files       []FileConfig  `yaml:"files" toml:"files"`
	FaceCascade string        `yaml:"face_cascade" toml:"face_cascade"`
	Template    string        `yaml:"template" toml:"template"`
}

// ShellConfig is a command whose output is painted on the frame.
type ShellConfig struct {
	Command string `yaml:"command" toml:"command"`
	// Frequency is the number of ticks between two runs.
	Frequency int `yaml:"frequency" toml:"frequency"`
	// X and Y both zero centre the output on the frame.
	X int `yaml:"x" toml:"x"`
	Y int `yaml:"y" toml:"y"`
}

// FileConfig is a text file whose content is painted on the frame.
type FileConfig struct {
	Path string `yaml:"path" toml:"path"`
	X    int    `yaml:"x" toml:"x"`
	Y    int    `yaml:"y" toml:"y"`
}

// Default returns the built in configuration.
func Default() Config {
	return Config{
		Width:        1280,
		Height:       720,
		FPS:          60,
		Source:       SourceCamera,
		InputDevice:  "/dev/video0",
		OutputDevice: "/dev/video2",
		LogLevel:     "info",
		Mask:         1,
		Passes: PassesConfig{
			StaticText: "Video Proxy Demo v0.1",
			Shell: []ShellConfig{
				{Command: "vmstat", Frequency: 10, X: 8, Y: 360},
			},
			Files: []FileConfig{
				{Path: "experiment/notepad.txt", X: 300, Y: 30},
			},
			FaceCascade: "model/facefinder",
			Template:    "model/template.png",
		},
	}
}

// Load reads the file at path on top of the defaults. The format follows the file
// extension: .yaml, .yml or .toml. Settings the file leaves out keep their default, zero
// values given in the file are kept. Lists given in the file replace the default list,
// an empty list disables the default passes.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decoders may append to a list that already has elements.
	defaults := cfg.Passes
	cfg.Passes.Shell, cfg.Passes.Files = nil, nil

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Default(), fmt.Errorf("%w: %q", errUnknownFormat, ext)
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Passes.Shell == nil {
		cfg.Passes.Shell = defaults.Shell
	}
	if cfg.Passes.Files == nil {
		cfg.Passes.Files = defaults.Files
	}
	return cfg, nil
}

// Validate reports the first setting that can't work.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid output size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %g", c.FPS)
	}
	switch c.Source {
	case SourceCamera, SourceScreen, SourceTest:
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if c.Source == SourceCamera && c.InputDevice == "" {
		return errors.New("input device is required for the camera source")
	}
	if c.OutputDevice == "" {
		return errors.New("output device is required")
	}
	for i, s := range c.Passes.Shell {
		if strings.TrimSpace(s.Command) == "" {
			return fmt.Errorf("shell pass #%d has no command", i)
		}
		if s.Frequency < 0 {
			return fmt.Errorf("shell pass #%d has a negative frequency", i)
		}
	}
	for i, f := range c.Passes.Files {
		if f.Path == "" {
			return fmt.Errorf("file pass #%d has no path", i)
		}
	}
	return nil
}
