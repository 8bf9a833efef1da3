package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tradecheck/tradecheck/internal/domain"
)

// FileName is the profile override file looked up in the working directory.
const FileName = ".tradecheck.yaml"

// YAMLLoader implements domain.ProfileLoader by reading .tradecheck.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .tradecheck.yaml from dir.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.ProfileConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProfileConfig{}, err
	}

	var cfg domain.ProfileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProfileConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProfileConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg, nil
}
