// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tags

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// frontmatter is the subset of a document's YAML header we read.
type frontmatter struct {
	Tags yaml.Node `yaml:"tags"`
}

// FromContent returns the tags declared in the document's YAML
// frontmatter. The frontmatter must start on the first line with "---" and
// end at the next "---" line. tags may be a sequence or a single string;
// blank and non-string entries are ignored. A document without
// frontmatter has no tags.
func FromContent(content []byte) ([]string, error) {
	block, ok := frontmatterBlock(content)
	if !ok {
		return nil, nil
	}

	var fm frontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}

	var out []string
	switch fm.Tags.Kind {
	case yaml.ScalarNode:
		out = appendTag(out, &fm.Tags)
	case yaml.SequenceNode:
		for _, n := range fm.Tags.Content {
			out = appendTag(out, n)
		}
	}
	return out, nil
}

// FromFile reads path and returns its frontmatter tags.
func FromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tags, err := FromContent(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tags, nil
}

func appendTag(out []string, n *yaml.Node) []string {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return out
	}
	if strings.TrimSpace(n.Value) == "" {
		return out
	}
	return append(out, n.Value)
}

func frontmatterBlock(content []byte) ([]byte, bool) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	lines := strings.Split(string(content), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return []byte(strings.Join(lines[1:i], "\n")), true
		}
	}
	return nil, false
}
