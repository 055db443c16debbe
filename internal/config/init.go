package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# Blogsmith site configuration
site:
  title: "My Blog"
  description: "Notes and long-form posts"
  # base_url is prefixed to every generated link. Use "/blog" for a
  # project site served under a subpath, or leave empty for the root.
  base_url: ""
  author: ""

theme:
  # Required colors; emitted as CSS custom properties on every page.
  colors:
    background: "#0d0d12"
    text: "#e8e6e3"
    primary: "#f2a900"
    accent: "#3d9970"
    # Optional; defaults to "#8b8b8b" when omitted.
    muted: "#8b8b8b"
  # Required logical image paths, relative to the assets directory.
  images:
    logo: "img/logo.svg"
    hero: "img/hero-default.jpg"

# Directory containing Markdown posts with YAML front-matter.
content: content/posts

# Static assets copied verbatim into the output directory.
assets: assets

output:
  directory: ./dist

# Optional network stats file produced by 'blogsmith stats'.
stats:
  file: stats.json
`

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	// #nosec G306 -- example config is not sensitive
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Configuration file created: %s\n", configPath)
	fmt.Println("Edit the file to configure your site, then run 'blogsmith build'")
	return nil
}
