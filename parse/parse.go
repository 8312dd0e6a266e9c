// Package parse turns YAML text into an ir node tree. The base
// grammar is handled by goccy/go-yaml; this package only maps its AST
// onto ir.Node, preserving mapping order and turning custom tags into
// directive nodes for the loader to resolve.
package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/hwconf/yamlpp/ir"
)

// Parse decodes one YAML document. Empty and whitespace-only input,
// and a bare null document, yield an empty object rather than null.
// Multi-document streams take the first document.
func Parse(data []byte) (*ir.Node, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ir.ErrEncoding)
	}
	f, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ir.ErrParse, err)
	}
	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		return ir.EmptyObject(), nil
	}
	w := &walker{anchors: map[string]*ir.Node{}}
	node, err := w.walk(f.Docs[0].Body)
	if err != nil {
		return nil, err
	}
	if node.Type == ir.NullType {
		return ir.EmptyObject(), nil
	}
	return node, nil
}

type walker struct {
	anchors map[string]*ir.Node
}

func (w *walker) walk(n ast.Node) (*ir.Node, error) {
	switch x := n.(type) {
	case *ast.NullNode:
		return ir.Null(), nil
	case *ast.BoolNode:
		return ir.FromBool(x.Value), nil
	case *ast.IntegerNode:
		return integer(x), nil
	case *ast.FloatNode:
		node := ir.FromFloat(x.Value)
		node.Number = x.Token.Value
		return node, nil
	case *ast.InfinityNode:
		return ir.FromFloat(x.Value), nil
	case *ast.NanNode:
		node := ir.FromFloat(0)
		node.Number = x.Token.Value
		node.Float64 = nil
		return node, nil
	case *ast.StringNode:
		return ir.FromString(x.Value), nil
	case *ast.LiteralNode:
		return ir.FromString(x.Value.Value), nil
	case *ast.MappingNode:
		return w.mapping(x.Values)
	case *ast.MappingValueNode:
		return w.mapping([]*ast.MappingValueNode{x})
	case *ast.SequenceNode:
		res := ir.FromSlice(make([]*ir.Node, 0, len(x.Values)))
		for _, v := range x.Values {
			cy, err := w.walk(v)
			if err != nil {
				return nil, err
			}
			res.Values = append(res.Values, cy)
		}
		return res, nil
	case *ast.TagNode:
		return w.tag(x)
	case *ast.AnchorNode:
		node, err := w.walk(x.Value)
		if err != nil {
			return nil, err
		}
		w.anchors[nodeText(x.Name)] = node
		return node, nil
	case *ast.AliasNode:
		name := nodeText(x.Value)
		node, ok := w.anchors[name]
		if !ok {
			return nil, fmt.Errorf("%w: undefined alias *%s", ir.ErrParse, name)
		}
		return node.Clone(), nil
	case *ast.MappingKeyNode:
		return w.walk(x.Value)
	}
	return nil, fmt.Errorf("%w: unsupported node %s", ir.ErrParse, n.Type())
}

func (w *walker) mapping(kvs []*ast.MappingValueNode) (*ir.Node, error) {
	res := ir.EmptyObject()
	for _, kv := range kvs {
		if _, isMerge := kv.Key.(*ast.MergeKeyNode); isMerge {
			if err := w.merge(res, kv.Value); err != nil {
				return nil, err
			}
			continue
		}
		key, err := w.walk(kv.Key)
		if err != nil {
			return nil, err
		}
		val := ir.Null()
		if kv.Value != nil {
			val, err = w.walk(kv.Value)
			if err != nil {
				return nil, err
			}
		}
		res.Put(key, val)
	}
	return res, nil
}

// merge splices an aliased mapping into dst per YAML merge-key
// semantics: entries already present keep their values.
func (w *walker) merge(dst *ir.Node, value ast.Node) error {
	src, err := w.walk(value)
	if err != nil {
		return err
	}
	srcs := []*ir.Node{src}
	if src.Type == ir.ArrayType {
		srcs = src.Values
	}
	for _, s := range srcs {
		if s.Type != ir.ObjectType {
			return fmt.Errorf("%w: cannot merge %s into mapping", ir.ErrParse, s.Type)
		}
		for i := range s.Fields {
			dst.PutIfAbsent(s.Fields[i], s.Values[i])
		}
	}
	return nil
}

func (w *walker) tag(x *ast.TagNode) (*ir.Node, error) {
	tag := x.Start.Value
	if strings.HasPrefix(tag, "!!") {
		return w.stdTag(tag, x.Value)
	}
	name := strings.TrimPrefix(tag, "!")
	if name == "" {
		return nil, fmt.Errorf("%w: empty tag", ir.ErrParse)
	}
	var payload *ir.Node
	if x.Value == nil {
		payload = ir.Null()
	} else {
		var err error
		payload, err = w.walk(x.Value)
		if err != nil {
			return nil, err
		}
	}
	return ir.FromDirective(name, payload), nil
}

func (w *walker) stdTag(tag string, value ast.Node) (*ir.Node, error) {
	node, err := w.walk(value)
	if err != nil {
		return nil, err
	}
	if tag != "!!str" {
		return node, nil
	}
	switch node.Type {
	case ir.StringType:
		return node, nil
	case ir.NumberType:
		return ir.FromString(node.Number), nil
	case ir.BoolType:
		return ir.FromString(node.Key()), nil
	case ir.NullType:
		return ir.FromString(""), nil
	}
	return nil, fmt.Errorf("%w: cannot apply !!str to %s", ir.ErrParse, node.Type)
}

func integer(x *ast.IntegerNode) *ir.Node {
	var node *ir.Node
	switch v := x.Value.(type) {
	case int64:
		node = ir.FromInt(v)
	case uint64:
		node = ir.FromInt(int64(v))
	case int:
		node = ir.FromInt(int64(v))
	default:
		node = &ir.Node{Type: ir.NumberType}
	}
	// keep the source literal so hex and octal forms survive a
	// parse/encode round trip
	node.Number = x.Token.Value
	return node
}

func nodeText(n ast.Node) string {
	if s, ok := n.(*ast.StringNode); ok {
		return s.Value
	}
	if n == nil {
		return ""
	}
	return n.GetToken().Value
}
