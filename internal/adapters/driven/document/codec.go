package document

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// Ensure YAMLCodec implements the interface.
var _ driven.DocumentCodec = (*YAMLCodec)(nil)

// YAMLCodec encodes documents as YAML.
// Top-level keys follow document order and nested mapping keys are
// sorted, so encoding an unchanged document is byte-stable.
type YAMLCodec struct {
	expander *Expander
}

// NewYAMLCodec creates a YAML codec. A non-nil expander replaces
// %NAME% placeholders in decoded string values.
func NewYAMLCodec(expander *Expander) *YAMLCodec {
	return &YAMLCodec{expander: expander}
}

// Encode converts a document to YAML.
func (c *YAMLCodec) Encode(doc *domain.Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, handle := range doc.Handles() {
		fragment, _ := doc.Get(handle)
		node, err := c.encodeFragment(fragment)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", handle, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: handle},
			node,
		)
	}

	return c.marshal(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}})
}

// Decode parses YAML into a document. An empty input is an empty document.
func (c *YAMLCodec) Decode(data []byte) (*domain.Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	doc := domain.NewDocument()
	if node.Kind == 0 {
		return doc, nil
	}

	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: root must be a mapping", domain.ErrMalformedDocument)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: data type handle must be a string", domain.ErrMalformedDocument, key.Line)
		}
		if doc.Has(key.Value) {
			return nil, fmt.Errorf("%w: line %d: duplicate data type %q", domain.ErrMalformedDocument, key.Line, key.Value)
		}
		fragment, err := c.decodeFragment(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedDocument, key.Value, err)
		}
		doc.Set(key.Value, fragment)
	}
	return doc, nil
}

// EncodeFragment converts one fragment to YAML.
func (c *YAMLCodec) EncodeFragment(fragment any) ([]byte, error) {
	node, err := c.encodeFragment(fragment)
	if err != nil {
		return nil, err
	}
	return c.marshal(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{node}})
}

// DecodeFragment parses one fragment from YAML.
func (c *YAMLCodec) DecodeFragment(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	if node.Kind == 0 {
		return nil, nil
	}
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	fragment, err := c.decodeFragment(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	return fragment, nil
}

func (c *YAMLCodec) encodeFragment(fragment any) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(fragment); err != nil {
		return nil, err
	}
	return &node, nil
}

func (c *YAMLCodec) decodeFragment(node *yaml.Node) (any, error) {
	var fragment any
	if err := node.Decode(&fragment); err != nil {
		return nil, err
	}
	if c.expander != nil {
		fragment = c.expander.Expand(fragment)
	}
	return fragment, nil
}

func (c *YAMLCodec) marshal(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
