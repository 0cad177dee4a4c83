package collector

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourcesConfig mirrors configs/sources.yaml: the RSS feeds and HTML listing
// pages a run pulls candidate trends from.
type SourcesConfig struct {
	RSS  []RSSSource  `yaml:"rss"`
	HTML []HTMLSource `yaml:"html"`
}

// RSSSource is one feed. Weight is the base score every item from this
// source starts with; curated sources get higher weights than firehoses.
type RSSSource struct {
	Name   string  `yaml:"name"`
	URL    string  `yaml:"url"`
	Weight float64 `yaml:"weight"`
}

// HTMLSource is one scraped listing page with its CSS selectors.
type HTMLSource struct {
	Name          string  `yaml:"name"`
	URL           string  `yaml:"url"`
	ItemSelector  string  `yaml:"item_selector"`
	TitleSelector string  `yaml:"title_selector"`
	LinkSelector  string  `yaml:"link_selector"`
	Weight        float64 `yaml:"weight"`
}

// LoadSources reads the source list from a YAML file. Missing weights
// default to 1.0.
func LoadSources(path string) (*SourcesConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources config: %w", err)
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode sources config: %w", err)
	}

	for i := range cfg.RSS {
		if cfg.RSS[i].Weight == 0 {
			cfg.RSS[i].Weight = 1.0
		}
	}
	for i := range cfg.HTML {
		if cfg.HTML[i].Weight == 0 {
			cfg.HTML[i].Weight = 1.0
		}
	}

	if len(cfg.RSS) == 0 && len(cfg.HTML) == 0 {
		return nil, fmt.Errorf("sources config %s lists no sources", path)
	}
	return &cfg, nil
}
