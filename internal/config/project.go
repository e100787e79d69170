package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig represents a .classscan.yaml file in a project
type ProjectConfig struct {
	Version string `yaml:"version"`

	// Namespace assumed for files without a namespace statement
	Namespace string `yaml:"namespace,omitempty"`

	// Import aliases added to every file, alias -> fully qualified name
	Imports map[string]string `yaml:"imports,omitempty"`

	// Output settings
	Output OutputConfig `yaml:"output,omitempty"`

	// Scanner settings
	Scan ScanConfig `yaml:"scan,omitempty"`
}

// OutputConfig holds report preferences
type OutputConfig struct {
	// text, json or yaml
	Format string `yaml:"format,omitempty"`
}

// ScanConfig holds scanning preferences
type ScanConfig struct {
	// Glob over fully qualified class names, e.g. App\Http\**
	Filter string `yaml:"filter,omitempty"`

	// Registered method sub-scanner name
	MethodScanner string `yaml:"method_scanner,omitempty"`
}

// DefaultProjectConfig returns sensible defaults
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Version: "1.0",
		Imports: map[string]string{},
		Output: OutputConfig{
			Format: "text",
		},
		Scan: ScanConfig{
			MethodScanner: "method",
		},
	}
}

// LoadProjectConfig loads a .classscan.yaml from the given directory
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ".classscan.yaml")

	// Check if config exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Also try .classscan.yml
		configPath = filepath.Join(dir, ".classscan.yml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return DefaultProjectConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultProjectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveProjectConfig saves the config to .classscan.yaml
func SaveProjectConfig(dir string, cfg *ProjectConfig) error {
	configPath := filepath.Join(dir, ".classscan.yaml")

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Merge applies overrides from another config (e.g., CLI flags)
func (c *ProjectConfig) Merge(other *ProjectConfig) {
	if other == nil {
		return
	}

	if other.Namespace != "" {
		c.Namespace = other.Namespace
	}

	if len(other.Imports) > 0 {
		if c.Imports == nil {
			c.Imports = map[string]string{}
		}
		for alias, name := range other.Imports {
			c.Imports[alias] = name
		}
	}

	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}

	if other.Scan.Filter != "" {
		c.Scan.Filter = other.Scan.Filter
	}

	if other.Scan.MethodScanner != "" {
		c.Scan.MethodScanner = other.Scan.MethodScanner
	}
}

// ApplyEnv overrides project settings with the environment variables that
// were actually set
func (c *ProjectConfig) ApplyEnv(env *Config) {
	if env == nil {
		return
	}
	if env.IsSet("CLASSSCAN_FORMAT") {
		c.Output.Format = env.Format
	}
	if env.IsSet("CLASSSCAN_METHOD_SCANNER") {
		c.Scan.MethodScanner = env.MethodScanner
	}
}
