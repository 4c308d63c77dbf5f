package textfile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlDoc struct {
	node *yaml.Node
	// leaves holds the scalar node of every fragment, index-aligned.
	leaves []*yaml.Node
}

// ParseYAML parses a nested YAML map of fragments. Non-string scalars
// (numbers, booleans, null) and sequences are kept but not exposed.
func ParseYAML(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	f := &File{Format: FormatYAML, Charset: "utf-8", yaml: &yamlDoc{node: &doc}}

	// Empty file, nothing to do.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return f, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML root must be a mapping, got kind %d", root.Kind)
	}
	f.yaml.collect(root, "", f)
	return f, nil
}

// collect walks a mapping node and appends leaf fragments.
func (d *yamlDoc) collect(node *yaml.Node, prefix string, f *File) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		path := keyNode.Value
		if prefix != "" {
			path = prefix + "." + path
		}

		switch valNode.Kind {
		case yaml.MappingNode:
			d.collect(valNode, path, f)
		case yaml.ScalarNode:
			switch valNode.Tag {
			case "!!bool", "!!int", "!!float", "!!null":
				continue
			}
			f.fragments = append(f.fragments, &Fragment{ID: path, text: valNode.Value})
			d.leaves = append(d.leaves, valNode)
		}
	}
}

func (d *yamlDoc) marshal(fragments []*Fragment) ([]byte, error) {
	if d.node == nil || len(d.node.Content) == 0 {
		return []byte{}, nil
	}
	for i, fr := range fragments {
		leaf := d.leaves[i]
		if leaf.Value == fr.text {
			continue
		}
		leaf.Value = fr.text
		// The explicit tag makes the encoder quote values that would
		// otherwise read back as numbers or booleans.
		leaf.Tag = "!!str"
		if leaf.Value == "" {
			leaf.Style = yaml.DoubleQuotedStyle
		}
	}
	out, err := yaml.Marshal(d.node)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return out, nil
}
