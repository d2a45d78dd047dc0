package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// IsYAML reports whether path names a YAML declaration document.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadDocument reads and parses the declaration document at path. Files
// ending in .yaml or .yml are read as YAML, everything else as JSON.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if IsYAML(path) {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseJSON parses a JSON declaration document.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document JSON: %w", err)
	}
	// JSON is a subset of YAML; when the YAML parser accepts the text it
	// also yields line numbers.
	var root yaml.Node
	if yaml.Unmarshal(data, &root) == nil {
		doc.lines = lineIndex(&root)
	}
	return &doc, nil
}

// ParseYAML parses a YAML declaration document.
func ParseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse document YAML: %w", err)
	}
	var doc Document
	if len(root.Content) > 0 {
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document YAML: %w", err)
		}
	}
	doc.lines = lineIndex(&root)
	return &doc, nil
}

// Line returns the source line of the value at path, such as
// "$.constructors[1].sort", or 0 if it is not known.
func (d *Document) Line(path string) int {
	return d.lines[path]
}

// lineIndex maps the path of every node below root to its line.
func lineIndex(root *yaml.Node) map[string]int {
	lines := make(map[string]int)
	var walk func(n *yaml.Node, path string)
	walk = func(n *yaml.Node, path string) {
		lines[path] = n.Line
		switch n.Kind {
		case yaml.DocumentNode:
			for _, c := range n.Content {
				walk(c, path)
			}
		case yaml.MappingNode:
			for i := 0; i+1 < len(n.Content); i += 2 {
				walk(n.Content[i+1], path+"."+n.Content[i].Value)
			}
		case yaml.SequenceNode:
			for i, c := range n.Content {
				walk(c, path+"["+strconv.Itoa(i)+"]")
			}
		}
	}
	walk(root, "$")
	return lines
}
