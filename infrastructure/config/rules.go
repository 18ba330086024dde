package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domainconfig "stratagist-backend/domain/config"
)

// RulesFile is the YAML shape of an extraction rules override
type RulesFile struct {
	Keywords   []string `yaml:"keywords"`
	Delimiters []string `yaml:"delimiters"`
}

// LoadExtractionRules reads a rules override and applies it on top of the
// defaults. Lists missing from the file keep their default values.
func LoadExtractionRules(path string) (*domainconfig.ExtractionRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	return ParseExtractionRules(data)
}

// ParseExtractionRules parses rules YAML
func ParseExtractionRules(data []byte) (*domainconfig.ExtractionRules, error) {
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid rules file: %w", err)
	}
	return domainconfig.DefaultExtractionRules().WithOverrides(file.Keywords, file.Delimiters), nil
}
