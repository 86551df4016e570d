package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of topic configurations
type Loader struct {
	topicsDir string
}

// NewLoader creates a new configuration loader. topicsDir may be empty,
// in which case only the built-in topics are available.
func NewLoader(topicsDir string) *Loader {
	return &Loader{topicsDir: topicsDir}
}

// LoadAll returns the topic set: the built-in topics, overridden or
// extended by any YAML files found in the topics directory.
func (l *Loader) LoadAll() (*TopicSet, error) {
	set := &TopicSet{topics: make(map[string]*Topic)}
	for _, topic := range defaultTopics() {
		set.add(topic)
	}

	if l.topicsDir == "" {
		return set, nil
	}
	if _, err := os.Stat(l.topicsDir); os.IsNotExist(err) {
		return set, nil // Built-ins only if directory doesn't exist
	}

	files, err := filepath.Glob(filepath.Join(l.topicsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	// Also check for .yml extension
	ymlFiles, err := filepath.Glob(filepath.Join(l.topicsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		topic, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(topic); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", file, err)
		}

		set.add(topic)
		log.Printf("Loaded topic configuration from %s", file)
	}

	return set, nil
}

// loadFile loads a single YAML topic file
func (l *Loader) loadFile(path string) (*Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var topic Topic
	if err := yaml.Unmarshal(data, &topic); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &topic, nil
}

// validate validates a topic configuration
func (l *Loader) validate(topic *Topic) error {
	if topic.Name == "" {
		return fmt.Errorf("topic name is required")
	}

	for i, p := range topic.Placeholders {
		if p.Title == "" {
			return fmt.Errorf("placeholder at index %d must have a title", i)
		}
	}

	return nil
}
