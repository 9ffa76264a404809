package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// duration accepts time.ParseDuration strings ("1s", "500ms") in YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// FileConfig mirrors the run command's flags for YAML config files.
// Zero values leave the corresponding flag untouched.
type FileConfig struct {
	Seeds     []string `yaml:"seeds"`
	MaxPages  int      `yaml:"max_pages"`
	MaxDepth  int      `yaml:"max_depth"`
	Delay     duration `yaml:"delay"`
	Timeout   duration `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent"`

	Allow    []string `yaml:"allow"`
	Exclude  []string `yaml:"exclude"`
	NoRobots bool     `yaml:"no_robots"`

	Sitemap     bool   `yaml:"sitemap"`
	Extractor   string `yaml:"extractor"`
	Concurrency int    `yaml:"concurrency"`

	DB string `yaml:"db"`
}

// loadFileConfig reads a YAML config file.
func loadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// apply merges non-zero file values over the command's flag values.
func (c *RunCmd) apply(file *FileConfig) {
	if len(c.Seeds) == 0 {
		c.Seeds = file.Seeds
	}
	if file.MaxPages > 0 {
		c.MaxPages = file.MaxPages
	}
	if file.MaxDepth > 0 {
		c.MaxDepth = file.MaxDepth
	}
	if file.Delay > 0 {
		c.Delay = time.Duration(file.Delay)
	}
	if file.Timeout > 0 {
		c.Timeout = time.Duration(file.Timeout)
	}
	if file.UserAgent != "" {
		c.UserAgent = file.UserAgent
	}
	if len(file.Allow) > 0 {
		c.Allow = append(c.Allow, file.Allow...)
	}
	if len(file.Exclude) > 0 {
		c.Exclude = append(c.Exclude, file.Exclude...)
	}
	if file.NoRobots {
		c.NoRobots = true
	}
	if file.Sitemap {
		c.Sitemap = true
	}
	if file.Extractor != "" {
		c.Extractor = file.Extractor
	}
	if file.Concurrency > 0 {
		c.Concurrency = file.Concurrency
	}
	if file.DB != "" {
		c.DB = file.DB
	}
}
