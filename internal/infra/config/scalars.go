// Where: cli/internal/infra/config/scalars.go
// What: Source-text preservation for code-like option values.
// Why: YAML reads 012345 as an octal number; one-time passwords must keep their digits.
package config

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// textKeys are top-level option keys whose scalar values are always strings.
var textKeys = []string{"otp", "tag", "packageVersion"}

const quotedStyles = yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle | yaml.LiteralStyle | yaml.FoldedStyle

// quoteTextScalars re-tags unquoted scalars under keys as strings so later
// YAML 1.1 decoding keeps their source text. Content that yaml.v3 cannot
// parse is returned unchanged for the caller to report.
func quoteTextScalars(content []byte, keys ...string) []byte {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return content
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return content
	}
	mapping := doc.Content[0]
	changed := false
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if !slices.Contains(keys, key.Value) || value.Kind != yaml.ScalarNode {
			continue
		}
		if value.Style&quotedStyles != 0 || value.Tag == "!!null" {
			continue
		}
		value.Tag = "!!str"
		value.Style = yaml.DoubleQuotedStyle
		changed = true
	}
	if !changed {
		return content
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return content
	}
	return out
}
