package alias

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	entriesKey = "entries"
	resolveKey = "resolve"
)

// ParseConfig normalizes a JSON or YAML alias config. Two forms are accepted:
//
//	{"foo": "bar", "resolve": [".js", ".jsx"]}
//	{"entries": [{"find": "foo", "replacement": "bar"}], "resolve": [".js"]}
//
// A find may also be {"pattern": "f(o+)bar", "flags": "i"}. Mapping order is
// kept as match priority. An empty document yields an empty builder.
func ParseConfig(data []byte) (*Builder, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, configErrorf("%v", err)
	}
	return FromNode(&doc)
}

// FromNode normalizes an already decoded config node, see ParseConfig.
func FromNode(node *yaml.Node) (*Builder, error) {
	b := NewBuilder()
	node = unwrap(node)
	if node == nil || isNull(node) {
		return b, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nodeErrorf(node, "expected a mapping of aliases, got %s", kindName(node))
	}

	fields := pairs(node)
	explicit := false
	for _, f := range fields {
		if v := unwrap(f.value); f.key.Value == entriesKey && (!isScalar(v) || isNull(v)) {
			explicit = true
		}
	}

	for _, f := range fields {
		key, value := f.key, unwrap(f.value)
		if key.Kind != yaml.ScalarNode {
			return nil, nodeErrorf(key, "alias keys must be strings")
		}

		switch {
		case key.Value == resolveKey && (value.Kind == yaml.SequenceNode || explicit):
			exts, err := extensions(value)
			if err != nil {
				return nil, err
			}
			b.Extensions(exts...)
		case key.Value == entriesKey && isNull(value):
			// no rules
		case key.Value == entriesKey && value.Kind == yaml.SequenceNode:
			if err := entries(b, value); err != nil {
				return nil, err
			}
		case key.Value == entriesKey && value.Kind == yaml.MappingNode:
			if err := shorthand(b, value, entriesKey); err != nil {
				return nil, err
			}
		case explicit:
			return nil, nodeErrorf(key, "unknown key %q next to %q", key.Value, entriesKey)
		default:
			replacement, err := replacementOf(value, fmt.Sprintf("alias %q", key.Value))
			if err != nil {
				return nil, err
			}
			b.Alias(key.Value, replacement)
		}
	}

	if err := b.err(); err != nil {
		return nil, err
	}
	return b, nil
}

func entries(b *Builder, seq *yaml.Node) error {
	for i, item := range seq.Content {
		item = unwrap(item)
		where := fmt.Sprintf("%s[%d]", entriesKey, i)
		if item.Kind != yaml.MappingNode {
			return nodeErrorf(item, "%s: expected {find, replacement}, got %s", where, kindName(item))
		}

		var find, replacement *yaml.Node
		for j := 0; j+1 < len(item.Content); j += 2 {
			switch k := item.Content[j].Value; k {
			case "find":
				find = unwrap(item.Content[j+1])
			case "replacement":
				replacement = unwrap(item.Content[j+1])
			default:
				return nodeErrorf(item.Content[j], "%s: unknown key %q", where, k)
			}
		}
		if find == nil || isNull(find) {
			return nodeErrorf(item, "%s.find: missing", where)
		}
		if replacement == nil {
			return nodeErrorf(item, "%s.replacement: missing", where)
		}
		repl, err := replacementOf(replacement, where+".replacement")
		if err != nil {
			return err
		}

		switch find.Kind {
		case yaml.ScalarNode:
			if !isString(find) {
				return nodeErrorf(find, "%s.find: expected a string or {pattern}, got %s", where, kindName(find))
			}
			if find.Value == "" {
				return nodeErrorf(find, "%s.find: empty find", where)
			}
			b.Alias(find.Value, repl)
		case yaml.MappingNode:
			expr, err := patternOf(find, where+".find")
			if err != nil {
				return err
			}
			m, err := Pattern(expr)
			if err != nil {
				return nodeErrorf(find, "%s.find: %v", where, err)
			}
			b.Entry(Entry{Find: m, Replacement: repl})
		default:
			return nodeErrorf(find, "%s.find: expected a string or {pattern}, got %s", where, kindName(find))
		}
	}
	return nil
}

func shorthand(b *Builder, mapping *yaml.Node, where string) error {
	for _, f := range pairs(mapping) {
		key := f.key
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nodeErrorf(key, "%s: alias keys must be non-empty strings", where)
		}
		replacement, err := replacementOf(unwrap(f.value), fmt.Sprintf("%s.%s", where, key.Value))
		if err != nil {
			return err
		}
		b.Alias(key.Value, replacement)
	}
	return nil
}

func patternOf(find *yaml.Node, where string) (string, error) {
	var expr, flags string
	hasPattern := false
	for i := 0; i+1 < len(find.Content); i += 2 {
		k, v := find.Content[i].Value, unwrap(find.Content[i+1])
		if v.Kind != yaml.ScalarNode {
			return "", nodeErrorf(v, "%s.%s: expected a string", where, k)
		}
		switch k {
		case "pattern":
			expr, hasPattern = v.Value, true
		case "flags":
			flags = v.Value
		default:
			return "", nodeErrorf(find.Content[i], "%s: unknown key %q", where, k)
		}
	}
	if !hasPattern {
		return "", nodeErrorf(find, "%s.pattern: missing", where)
	}
	for _, f := range flags {
		if !strings.ContainsRune("imsU", f) {
			return "", nodeErrorf(find, "%s.flags: unsupported flag %q, valid flags are \"i\", \"m\", \"s\", \"U\"", where, f)
		}
	}
	if flags != "" {
		expr = "(?" + flags + ")" + expr
	}
	return expr, nil
}

func extensions(seq *yaml.Node) ([]string, error) {
	if isNull(seq) {
		return nil, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, nodeErrorf(seq, "%s: expected a list of extensions, got %s", resolveKey, kindName(seq))
	}
	exts := make([]string, 0, len(seq.Content))
	for i, item := range seq.Content {
		item = unwrap(item)
		if !isString(item) {
			return nil, nodeErrorf(item, "%s[%d]: expected a string, got %s", resolveKey, i, kindName(item))
		}
		exts = append(exts, item.Value)
	}
	return exts, nil
}

func replacementOf(node *yaml.Node, where string) (string, error) {
	if !isString(node) {
		return "", nodeErrorf(node, "%s: replacement must be a string, got %s", where, kindName(node))
	}
	return node.Value, nil
}

func unwrap(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case node.Kind == yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

// pairs returns the key/value pairs of mapping. A repeated key keeps the
// position of its first occurrence and the value of its last, as JSON.parse does.
func pairs(mapping *yaml.Node) []pair {
	var out []pair
	seen := make(map[string]int)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if key.Kind == yaml.ScalarNode {
			if at, ok := seen[key.Value]; ok {
				out[at].value = value
				continue
			}
			seen[key.Value] = len(out)
		}
		out = append(out, pair{key: key, value: value})
	}
	return out
}

type pair struct {
	key, value *yaml.Node
}

// isString reports whether node is a string scalar, numbers and booleans are not.
func isString(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str"
}

func isNull(node *yaml.Node) bool {
	return node == nil || node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

func isScalar(node *yaml.Node) bool {
	return node == nil || node.Kind == yaml.ScalarNode
}

func kindName(node *yaml.Node) string {
	switch {
	case isNull(node):
		return "null"
	case node.Kind == yaml.MappingNode:
		return "a mapping"
	case node.Kind == yaml.SequenceNode:
		return "a list"
	default:
		return fmt.Sprintf("%s %q", strings.TrimPrefix(node.ShortTag(), "!!"), node.Value)
	}
}

func nodeErrorf(node *yaml.Node, format string, a ...any) error {
	if node != nil && node.Line > 0 {
		return configErrorf("line %d: "+format, append([]any{node.Line}, a...)...)
	}
	return configErrorf(format, a...)
}
