package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlDictionary is the mapping form of a YAML dictionary file.
type yamlDictionary struct {
	Words []string `yaml:"words"`
}

// loadDictionaryFile reads words from path. YAML files hold either a list of
// words or a mapping with a words key. Other files hold one word per line;
// blank lines and lines starting with # are skipped.
func loadDictionaryFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLWords(data, path)
	default:
		return parseLineWords(data, path)
	}
}

func parseYAMLWords(data []byte, path string) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("parsing %s: empty document", path)
	}

	var words []string
	switch root := node.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&words); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case yaml.MappingNode:
		var doc yamlDictionary
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		words = doc.Words
	default:
		return nil, fmt.Errorf("parsing %s: expected a list of words or a words key", path)
	}

	for i, w := range words {
		if w == "" {
			return nil, fmt.Errorf("%s: empty word at index %d", path, i)
		}
	}
	return words, nil
}

func parseLineWords(data []byte, path string) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return words, nil
}
