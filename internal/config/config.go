package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	berrors "git.home.luguber.info/inful/blogsmith/internal/errors"
)

// Config represents the full site configuration, loaded once per build and
// treated as read-only by every later pipeline stage.
type Config struct {
	Site    SiteConfig   `yaml:"site"`
	Theme   ThemeConfig  `yaml:"theme"`
	Content string       `yaml:"content,omitempty"` // posts directory
	Assets  string       `yaml:"assets,omitempty"`  // static assets copied verbatim
	Output  OutputConfig `yaml:"output"`
	Stats   StatsConfig  `yaml:"stats,omitempty"`
}

// SiteConfig carries site-wide metadata rendered into every page head.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"` // e.g. "/blog" for a project site, "" for root
	Author      string `yaml:"author,omitempty"`
}

// ThemeConfig holds the visual presentation knobs: named colors emitted as
// CSS custom properties and logical image paths resolved under assets/.
type ThemeConfig struct {
	Colors map[string]string `yaml:"colors"`
	Images map[string]string `yaml:"images"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// StatsConfig points at an optional stats.json injected into templates.
type StatsConfig struct {
	File string `yaml:"file,omitempty"`
}

// Required theme keys. The templates reference these directly; a build with
// any of them missing fails with a config error naming the field rather than
// silently substituting a default.
var (
	requiredColors = []string{"background", "text", "primary", "accent"}
	requiredImages = []string{"logo", "hero"}
)

// Optional cosmetic colors with documented defaults.
var optionalColorDefaults = map[string]string{
	"muted": "#8b8b8b",
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists so ${VAR} references in the YAML resolve.
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, berrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Content == "" {
		c.Content = "content/posts"
	}
	if c.Assets == "" {
		c.Assets = "assets"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./dist"
	}
	if c.Stats.File == "" {
		c.Stats.File = "stats.json"
	}
	if c.Theme.Colors == nil {
		c.Theme.Colors = map[string]string{}
	}
	if c.Theme.Images == nil {
		c.Theme.Images = map[string]string{}
	}
	for name, value := range optionalColorDefaults {
		if _, ok := c.Theme.Colors[name]; !ok {
			c.Theme.Colors[name] = value
		}
	}
}

// Validate checks that every required theme attribute is present.
// Missing fields are reported by their full configuration path.
func (c *Config) Validate() error {
	for _, name := range requiredColors {
		if c.Theme.Colors[name] == "" {
			return berrors.ConfigRequired("theme.colors." + name)
		}
	}
	for _, name := range requiredImages {
		if c.Theme.Images[name] == "" {
			return berrors.ConfigRequired("theme.images." + name)
		}
	}
	return nil
}
