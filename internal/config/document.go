package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/locvowork/objectdoc/internal/domain"
	"gopkg.in/yaml.v2"
)

var ErrConfigNotFound = errors.New("config file not found")

const (
	DefaultConfigPath        = "config/object-field.yaml"
	DefaultPicklistSeparator = ";"
	DefaultFontName          = "Meiryo UI"
	DefaultFontSize          = 10
	DefaultHeaderFontSize    = 11
)

// DocumentConfig is the YAML document driving generation.
type DocumentConfig struct {
	Target            TargetConfig          `yaml:"target"`
	PicklistFormat    domain.PicklistFormat `yaml:"picklistFormat"`
	PicklistSeparator string                `yaml:"picklistSeparator"`
	Font              FontConfig            `yaml:"font"`
	Output            OutputConfig          `yaml:"output"`
	Columns           []domain.ColumnSpec   `yaml:"columns"`
}

type TargetConfig struct {
	ObjectAPIName  string   `yaml:"objectApiName"`
	ObjectAPINames []string `yaml:"objectApiNames"`
}

type FontConfig struct {
	Name       string  `yaml:"name"`
	Size       float64 `yaml:"size"`
	HeaderSize float64 `yaml:"headerSize"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoadDocumentConfig reads and decodes the YAML config at path.
func LoadDocumentConfig(path string) (*DocumentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseDocumentConfig(data)
}

// ParseDocumentConfig decodes YAML and fills defaults.
func ParseDocumentConfig(data []byte) (*DocumentConfig, error) {
	var cfg DocumentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *DocumentConfig) applyDefaults() {
	if c.PicklistFormat == "" {
		c.PicklistFormat = domain.PicklistFormatBoth
	}
	if c.PicklistSeparator == "" {
		c.PicklistSeparator = DefaultPicklistSeparator
	}
	if c.Font.Name == "" {
		c.Font.Name = DefaultFontName
	}
	if c.Font.Size <= 0 {
		c.Font.Size = DefaultFontSize
	}
	if c.Font.HeaderSize <= 0 {
		c.Font.HeaderSize = DefaultHeaderFontSize
	}
	if len(c.Columns) == 0 {
		c.Columns = domain.DefaultColumns()
	}
}

func (c *DocumentConfig) Validate() error {
	switch c.PicklistFormat {
	case domain.PicklistFormatBoth, domain.PicklistFormatLabel, domain.PicklistFormatFullName:
	default:
		return fmt.Errorf("invalid picklistFormat %q", c.PicklistFormat)
	}
	for i, col := range c.Columns {
		if strings.TrimSpace(col.Source) == "" {
			return fmt.Errorf("column %d (%q) has no source", i+1, col.Header)
		}
	}
	return nil
}

// Targets merges objectApiName and objectApiNames in order without duplicates.
// An empty result means the objects should be picked interactively.
func (c *DocumentConfig) Targets() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	add(c.Target.ObjectAPIName)
	for _, n := range c.Target.ObjectAPINames {
		add(n)
	}
	return out
}
