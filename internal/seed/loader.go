package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one predefined link in the seed file.
type Entry struct {
	Slug string `yaml:"slug"`
	URL  string `yaml:"url"`
}

// Loader reads and parses the seed file, a YAML list of slug/url pairs:
//
//	- slug: docs
//	  url: https://example.com/docs
type Loader struct {
	filePath string
}

// NewLoader creates a loader for the given file path
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file
func (l *Loader) Load() ([]Entry, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return entries, nil
}
