package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames lists the configuration files Find looks for, in priority order.
var FileNames = []string{"effectlint.json", "effectlint.toml", "effectlint.yaml", "effectlint.yml"}

// Load reads a configuration file. The format follows the extension; all
// formats go through the same validation as Parse.
func Load(path string) (*AnalysisConfig, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	var cfg *AnalysisConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cfg, err = Parse(data)
	case ".toml":
		var raw map[string]any
		if _, derr := toml.Decode(string(data), &raw); derr != nil {
			err = &ParseError{Reason: "invalid TOML: " + derr.Error(), Err: derr}
			break
		}
		cfg, err = FromValue(raw)
	case ".yaml", ".yml":
		var raw any
		if derr := yaml.Unmarshal(data, &raw); derr != nil {
			err = &ParseError{Reason: "invalid YAML: " + derr.Error(), Err: derr}
			break
		}
		if raw == nil {
			raw = map[string]any{}
		}
		cfg, err = FromValue(raw)
	default:
		return nil, &ParseError{File: path, Reason: "unsupported config format"}
	}
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// Find walks up from startDir to the nearest configuration file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}
