// Package encode renders ir node trees as YAML. Structure and string
// quoting follow the base serializer; domain scalars get their
// canonical renderings (durations as "10s", hex ints as decimal,
// lambdas as tagged block literals, and so on). Mapping entries whose
// value is null are omitted, recursively.
package encode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/hwconf/yamlpp/ir"
)

type EncState struct {
	indent int

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	return es.root(w, node)
}

// Dump encodes node to bytes.
func Dump(node *ir.Node, opts ...EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (es *EncState) root(w io.Writer, n *ir.Node) error {
	if s, ok, err := es.inline(n); err != nil {
		return err
	} else if ok {
		return writeString(w, s+"\n")
	}
	switch n.Type {
	case ir.ObjectType:
		if emptyAfterOmission(n) {
			return writeString(w, "{}\n")
		}
		return es.pairs(w, n, 0)
	case ir.ArrayType:
		if len(n.Values) == 0 {
			return writeString(w, "[]\n")
		}
		return es.items(w, n, 0)
	default:
		return es.value(w, n, "", 0)
	}
}

// pairs writes the entries of an object, one per line, at depth.
// Entries with null values are dropped.
func (es *EncState) pairs(w io.Writer, n *ir.Node, depth int) error {
	for i := range n.Fields {
		val := n.Values[i]
		if val.Type == ir.NullType {
			continue
		}
		key, err := es.keyText(n.Fields[i])
		if err != nil {
			return err
		}
		head := es.prefix(depth) + key + es.color(ir.ObjectType, SepColor, ":")
		if err := es.value(w, val, head, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) items(w io.Writer, n *ir.Node, depth int) error {
	for _, val := range n.Values {
		head := es.prefix(depth) + es.color(ir.ArrayType, SepColor, "-")
		if err := es.value(w, val, head, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// value writes one value after head (a key or a dash, already
// indented); composite values continue as a block at depth.
func (es *EncState) value(w io.Writer, n *ir.Node, head string, depth int) error {
	if s, ok, err := es.inline(n); err != nil {
		return err
	} else if ok {
		return writeString(w, join(head, s)+"\n")
	}
	switch n.Type {
	case ir.ObjectType:
		if emptyAfterOmission(n) {
			return writeString(w, join(head, "{}")+"\n")
		}
		if head != "" {
			if err := writeString(w, head+"\n"); err != nil {
				return err
			}
		}
		return es.pairs(w, n, depth)
	case ir.ArrayType:
		if len(n.Values) == 0 {
			return writeString(w, join(head, "[]")+"\n")
		}
		if head != "" {
			if err := writeString(w, head+"\n"); err != nil {
				return err
			}
		}
		return es.items(w, n, depth)
	case ir.ScalarType:
		switch x := n.Scalar.(type) {
		case ir.Lambda:
			return es.literal(w, head, es.color(ir.ScalarType, TagColor, "!lambda"), string(x), depth)
		case ir.TimePeriod:
			return es.period(w, x, head, depth)
		}
	case ir.DirectiveType:
		return es.directive(w, n, head, depth)
	}
	return fmt.Errorf("%w: cannot encode %s", ir.ErrEncoding, n.Type)
}

// inline renders leaf nodes that fit on one line.
func (es *EncState) inline(n *ir.Node) (string, bool, error) {
	switch n.Type {
	case ir.NullType:
		return es.color(ir.NullType, ValueColor, "null"), true, nil
	case ir.BoolType:
		return es.color(ir.BoolType, ValueColor, strconv.FormatBool(n.Bool)), true, nil
	case ir.NumberType:
		return es.color(ir.NumberType, ValueColor, numberText(n)), true, nil
	case ir.StringType:
		s, err := quoteString(n.String)
		if err != nil {
			return "", false, err
		}
		return es.color(ir.StringType, ValueColor, s), true, nil
	case ir.ScalarType:
		switch x := n.Scalar.(type) {
		case ir.HexInt:
			return es.color(ir.NumberType, ValueColor, x.String()), true, nil
		case ir.IPAddress, ir.MACAddress, ir.UUID:
			return es.color(ir.StringType, ValueColor, x.String()), true, nil
		case ir.ID:
			s, err := quoteString(x.ID)
			if err != nil {
				return "", false, err
			}
			return es.color(ir.StringType, ValueColor, s), true, nil
		case ir.TimePeriod:
			if x.IsSingle() {
				return es.color(ir.StringType, ValueColor, x.String()), true, nil
			}
		}
	}
	return "", false, nil
}

// period writes a multi-unit time period as its explicit unit mapping.
func (es *EncState) period(w io.Writer, tp ir.TimePeriod, head string, depth int) error {
	obj := ir.EmptyObject()
	for _, u := range tp.Units() {
		obj.Put(ir.FromString(u.Unit), ir.FromInt(u.Value))
	}
	return es.value(w, obj, head, depth)
}

func (es *EncState) directive(w io.Writer, n *ir.Node, head string, depth int) error {
	tag := es.color(ir.DirectiveType, TagColor, "!"+n.Directive)
	if len(n.Values) == 0 || n.Values[0].Type == ir.NullType {
		return writeString(w, join(head, tag)+"\n")
	}
	payload := n.Values[0]
	if s, ok, err := es.inline(payload); err != nil {
		return err
	} else if ok {
		return writeString(w, join(head, tag)+" "+s+"\n")
	}
	if err := writeString(w, join(head, tag)+"\n"); err != nil {
		return err
	}
	switch payload.Type {
	case ir.ObjectType:
		return es.pairs(w, payload, depth)
	case ir.ArrayType:
		return es.items(w, payload, depth)
	}
	return fmt.Errorf("%w: cannot encode !%s payload %s", ir.ErrEncoding, n.Directive, payload.Type)
}

// literal writes a tagged block literal ("!lambda |-") with the text
// indented one level below head, so it round-trips as code rather
// than as plain text.
func (es *EncState) literal(w io.Writer, head, tag, text string, depth int) error {
	if err := writeString(w, join(head, tag)+" |-\n"); err != nil {
		return err
	}
	if depth == 0 {
		// a root block scalar still needs indented content
		depth = 1
	}
	text = strings.TrimRight(text, "\n")
	for _, ln := range strings.Split(text, "\n") {
		if ln == "" {
			if err := writeString(w, "\n"); err != nil {
				return err
			}
			continue
		}
		ln = es.color(ir.ScalarType, ValueColor, ln)
		if err := writeString(w, es.prefix(depth)+ln+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) keyText(key *ir.Node) (string, error) {
	var text string
	switch key.Type {
	case ir.StringType:
		s, err := quoteString(key.String)
		if err != nil {
			return "", err
		}
		text = s
	case ir.NumberType:
		text = numberText(key)
	case ir.BoolType:
		text = strconv.FormatBool(key.Bool)
	default:
		return "", fmt.Errorf("%w: cannot encode %s as mapping key", ir.ErrEncoding, key.Type)
	}
	return es.color(ir.ObjectType, FieldColor, text), nil
}

func (es *EncState) prefix(depth int) string {
	return strings.Repeat(" ", es.indent*depth)
}

func (es *EncState) color(t ir.Type, attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, attr, s)
}

func numberText(n *ir.Node) string {
	if n.Number != "" {
		return n.Number
	}
	switch {
	case n.Int64 != nil:
		return strconv.FormatInt(*n.Int64, 10)
	case n.Float64 != nil:
		return strconv.FormatFloat(*n.Float64, 'g', -1, 64)
	}
	return "0"
}

// emptyAfterOmission reports whether every entry of an object has a
// null value, in which case the object renders as {}.
func emptyAfterOmission(n *ir.Node) bool {
	for _, v := range n.Values {
		if v.Type != ir.NullType {
			return false
		}
	}
	return true
}

// quoteString delegates scalar quoting to the base serializer, so
// strings that look like numbers, booleans or punctuation come back
// correctly quoted. Multi-line strings come back escaped on one line.
func quoteString(s string) (string, error) {
	d, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ir.ErrEncoding, err)
	}
	return strings.TrimSuffix(string(d), "\n"), nil
}

func join(head, s string) string {
	if head == "" {
		return s
	}
	return head + " " + s
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
