// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package modconf

import "gopkg.in/yaml.v3"

// pair is one key/value entry of a YAML mapping.
type pair struct {
	key   string
	value *yaml.Node
}

// resolve follows alias nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// pairs returns the entries of a mapping node in document order.
// Anything that is not a mapping yields no entries.
func pairs(n *yaml.Node) []pair {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	result := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := resolve(n.Content[i])
		if k.Kind != yaml.ScalarNode {
			continue
		}
		result = append(result, pair{key: k.Value, value: resolve(n.Content[i+1])})
	}
	return result
}

// field returns the value stored under key.
func field(fields []pair, key string) *yaml.Node {
	for _, p := range fields {
		if p.key == key {
			return p.value
		}
	}
	return nil
}

// stringField returns the string stored under key, or "" when the value is
// missing or not a string scalar.
func stringField(fields []pair, key string) string {
	n := field(fields, key)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return ""
	}
	return n.Value
}

// boolField returns the boolean stored under key, or nil when the value is
// missing or not a boolean.
func boolField(fields []pair, key string) *bool {
	n := field(fields, key)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() != "!!bool" {
		return nil
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return nil
	}
	return &b
}
