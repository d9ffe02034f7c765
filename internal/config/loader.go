package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const configDirEnv = "SCRAMBLE_CONFIG_DIR"

var configFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// legacyOverlay holds the names older configs used for reveal_length.
type legacyOverlay struct {
	Animation struct {
		RevealLength   *int `toml:"reveal_length" yaml:"reveal_length"`
		MaxChar        *int `toml:"max_char" yaml:"max_char"`
		ScrambleLength *int `toml:"scramble_length" yaml:"scramble_length"`
	} `toml:"animation" yaml:"animation"`
}

func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func getConfigFilePath() string {
	var configDirs []string

	// useful during development or other non-standard setups.
	if dir := os.Getenv(configDirEnv); dir != "" {
		if s, err := os.Stat(dir); err == nil && s.IsDir() {
			if found := findConfigFile(dir); found != "" {
				return found
			}
			return filepath.Join(dir, configFileNames[0])
		}
	}

	// os.UserConfigDir() already does this for linux leaving darwin to handle
	if runtime.GOOS == "darwin" {
		configDirs = append(configDirs, path.Join(os.Getenv("HOME"), ".config"))
		xdgConfigDir := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigDir != "" {
			configDirs = append(configDirs, xdgConfigDir)
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		configDirs = append(configDirs, configDir)
	}

	for _, dir := range configDirs {
		if found := findConfigFile(filepath.Join(dir, "scramble")); found != "" {
			return found
		}
	}

	if len(configDirs) > 0 {
		return filepath.Join(configDirs[0], "scramble", configFileNames[0])
	}
	return ""
}

func GetConfigDir() string {
	configFile := getConfigFilePath()
	if configFile == "" {
		return ""
	}
	return filepath.Dir(configFile)
}

func loadDefaultConfig() *Config {
	data, err := configFS.ReadFile("default/config.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: no embedded default config found: %v\n", err)
		os.Exit(1)
	}

	config := &Config{}
	if err := config.Load(string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: failed to load embedded default config: %v\n", err)
		os.Exit(1)
	}
	return config
}

// Load decodes TOML content on top of the current values. Colours merge key
// by key; targets are replaced when the content defines any.
func (c *Config) Load(data string) error {
	baseColors := c.UI.Colors
	baseTargets := c.Targets
	c.UI.Colors = nil
	c.Targets = nil

	metadata, err := toml.Decode(data, c)
	if err != nil {
		c.UI.Colors, c.Targets = baseColors, baseTargets
		return err
	}
	c.UI.Colors = mergeColors(baseColors, c.UI.Colors)
	if !metadata.IsDefined("targets") {
		c.Targets = baseTargets
	}

	legacy := &legacyOverlay{}
	if _, err := toml.Decode(data, legacy); err != nil {
		return err
	}
	c.applyLegacy(legacy)
	return nil
}

// LoadYAML is the YAML counterpart of Load.
func (c *Config) LoadYAML(data []byte) error {
	baseColors := c.UI.Colors
	baseTargets := c.Targets
	c.UI.Colors = nil
	c.Targets = nil

	if err := yaml.Unmarshal(data, c); err != nil {
		c.UI.Colors, c.Targets = baseColors, baseTargets
		return err
	}
	c.UI.Colors = mergeColors(baseColors, c.UI.Colors)
	if c.Targets == nil {
		c.Targets = baseTargets
	}

	legacy := &legacyOverlay{}
	if err := yaml.Unmarshal(data, legacy); err != nil {
		return err
	}
	c.applyLegacy(legacy)
	return nil
}

func (c *Config) applyLegacy(legacy *legacyOverlay) {
	aliases := []struct {
		key   string
		value *int
	}{
		{"max_char", legacy.Animation.MaxChar},
		{"scramble_length", legacy.Animation.ScrambleLength},
	}
	for _, alias := range aliases {
		if alias.value == nil {
			continue
		}
		c.notices = append(c.notices, fmt.Sprintf("[animation] %s is deprecated; use reveal_length", alias.key))
		if legacy.Animation.RevealLength == nil {
			c.Animation.RevealLength = *alias.value
		}
	}
}

func mergeColors(base, overlay map[string]Color) map[string]Color {
	if base == nil && overlay == nil {
		return nil
	}
	merged := make(map[string]Color, len(base)+len(overlay))
	for key, color := range base {
		merged[key] = color
	}
	for key, color := range overlay {
		merged[key] = color
	}
	return merged
}

func isYAML(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadFile decodes the file at file into c, choosing the decoder by
// extension.
func (c *Config) LoadFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if isYAML(file) {
		err = c.LoadYAML(data)
	} else {
		err = c.Load(string(data))
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}
	return nil
}

// LoadConfig returns the embedded defaults overlaid with the config file at
// file. An empty file means the user config directory; a missing user config
// is not an error, a missing explicit one is.
func LoadConfig(file string) (*Config, error) {
	config := loadDefaultConfig()
	explicit := file != ""
	if !explicit {
		file = getConfigFilePath()
		if file == "" {
			return config, nil
		}
	}
	if err := config.LoadFile(file); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return config, nil
}
