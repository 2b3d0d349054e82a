package document

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SnapshotVersion is written into every serialized root node.
const SnapshotVersion = 1

//go:embed snapshot.schema.json
var snapshotSchemaSource []byte

var (
	snapshotSchemaOnce sync.Once
	snapshotSchema     *jsonschema.Schema
	snapshotSchemaErr  error
)

type snapshotEnvelope struct {
	Root snapshotRoot `json:"root"`
}

type snapshotRoot struct {
	Type     NodeType `json:"type"`
	Version  int      `json:"version"`
	Children []*Node  `json:"children"`
}

// Serialize encodes doc as a self-describing JSON snapshot.
func Serialize(doc *Document) ([]byte, error) {
	if doc == nil {
		doc = New()
	}
	children := doc.Blocks()
	if children == nil {
		children = []*Node{}
	}
	payload, err := json.Marshal(snapshotEnvelope{
		Root: snapshotRoot{
			Type:     TypeRoot,
			Version:  SnapshotVersion,
			Children: children,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("document: serialize snapshot: %w", err)
	}
	return payload, nil
}

// Deserialize decodes a snapshot produced by Serialize. Any input that does
// not describe a valid document yields a *CorruptStateError.
func Deserialize(blob []byte) (*Document, error) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return nil, corrupt("empty snapshot", nil)
	}

	decoder := json.NewDecoder(bytes.NewReader(blob))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, corrupt("malformed json", err)
	}

	schema, err := compiledSnapshotSchema()
	if err != nil {
		return nil, fmt.Errorf("document: compile snapshot schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return nil, corrupt("schema violation at "+leafLocation(validationErr), err)
		}
		return nil, corrupt("schema violation", err)
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal(blob, &envelope); err != nil {
		return nil, corrupt("decode nodes", err)
	}

	if err := checkStructure(envelope.Root.Children); err != nil {
		return nil, err
	}

	doc := &Document{
		Root: &Node{
			Type:     TypeRoot,
			Children: envelope.Root.Children,
		},
	}
	if len(doc.Root.Children) == 0 {
		doc.Root.Children = []*Node{NewParagraph()}
	}
	return doc, nil
}

// checkStructure enforces the tree rules the schema cannot express: only
// headings carry a tag and always do, inline nodes are leaves, and line
// breaks carry no text.
func checkStructure(blocks []*Node) error {
	for i, block := range blocks {
		if !block.IsBlock() {
			return corrupt(fmt.Sprintf("block %d: %q is not a block node", i, nodeType(block)), nil)
		}
		hasTag := block.Tag != ""
		if isHeading := block.Type == TypeHeading; isHeading != hasTag {
			return corrupt(fmt.Sprintf("block %d: tag %q on %s", i, block.Tag, block.Type), nil)
		}
		for j, inline := range block.Children {
			switch {
			case !inline.IsInline():
				return corrupt(fmt.Sprintf("block %d child %d: %q is not an inline node", i, j, nodeType(inline)), nil)
			case len(inline.Children) > 0:
				return corrupt(fmt.Sprintf("block %d child %d: inline node has children", i, j), nil)
			case inline.Type == TypeLineBreak && inline.Text != "":
				return corrupt(fmt.Sprintf("block %d child %d: line break carries text", i, j), nil)
			}
		}
	}
	return nil
}

func nodeType(n *Node) NodeType {
	if n == nil {
		return "null"
	}
	return n.Type
}

func compiledSnapshotSchema() (*jsonschema.Schema, error) {
	snapshotSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("snapshot.schema.json", bytes.NewReader(snapshotSchemaSource)); err != nil {
			snapshotSchemaErr = err
			return
		}
		snapshotSchema, snapshotSchemaErr = compiler.Compile("snapshot.schema.json")
	})
	return snapshotSchema, snapshotSchemaErr
}

func leafLocation(err *jsonschema.ValidationError) string {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	if err.InstanceLocation == "" {
		return "#"
	}
	return err.InstanceLocation
}
