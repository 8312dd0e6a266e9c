// Package ir defines the ordered node tree produced by loading a
// configuration document, together with the domain scalar kinds the
// serializer renders specially.
//
// Objects keep their entries in insertion order via the parallel
// Fields/Values slices; Fields holds the key nodes and Values the
// corresponding value nodes. Arrays use Values alone.
package ir

import (
	"strconv"
)

type Node struct {
	Type Type

	// Object keys and values, or array elements (Values only).
	Fields []*Node
	Values []*Node

	// Directive name without the leading "!", for DirectiveType nodes.
	// The raw payload is Values[0].
	Directive string

	String  string
	Bool    bool
	Number  string
	Int64   *int64
	Float64 *float64

	// Scalar is set for ScalarType nodes.
	Scalar Scalar
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v, Number: strconv.FormatInt(v, 10)}
}

func FromFloat(v float64) *Node {
	return &Node{Type: NumberType, Float64: &v, Number: strconv.FormatFloat(v, 'g', -1, 64)}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromScalar(s Scalar) *Node {
	return &Node{Type: ScalarType, Scalar: s}
}

func FromDirective(name string, payload *Node) *Node {
	return &Node{Type: DirectiveType, Directive: name, Values: []*Node{payload}}
}

func EmptyObject() *Node {
	return &Node{Type: ObjectType}
}

func FromSlice(vs []*Node) *Node {
	return &Node{Type: ArrayType, Values: vs}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	for _, kv := range kvs {
		res.Put(kv.Key, kv.Val)
	}
	return res
}

// Put sets key to val, overwriting in place if the key is already
// present so entry order reflects first insertion.
func (y *Node) Put(key, val *Node) {
	for i, f := range y.Fields {
		if f.Key() == key.Key() {
			y.Values[i] = val
			return
		}
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
}

// PutIfAbsent sets key to val only when the key is not present,
// reporting whether the entry was added.
func (y *Node) PutIfAbsent(key, val *Node) bool {
	for _, f := range y.Fields {
		if f.Key() == key.Key() {
			return false
		}
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
	return true
}

// Key returns the mapping-key text of a field node.
func (y *Node) Key() string {
	switch y.Type {
	case NumberType:
		return y.Number
	case BoolType:
		return strconv.FormatBool(y.Bool)
	default:
		return y.String
	}
}

// Get returns the value for key in an object, or nil.
func (y *Node) Get(key string) *Node {
	if y.Type != ObjectType {
		return nil
	}
	for i, f := range y.Fields {
		if f.Key() == key {
			return y.Values[i]
		}
	}
	return nil
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].Key()] = node.Values[i]
	}
	return res
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Directive = y.Directive
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Number = y.Number
	dst.Scalar = y.Scalar
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, f := range y.Fields {
			dst.Fields[i] = f.Clone()
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

// Equal reports value equality: same structure, same entry order,
// numerically equal numbers, equal scalars.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return numEqual(a, b)
	case StringType:
		return a.String == b.String
	case ScalarType:
		return scalarEqual(a.Scalar, b.Scalar)
	case DirectiveType:
		if a.Directive != b.Directive {
			return false
		}
		return valuesEqual(a, b)
	case ArrayType:
		return valuesEqual(a, b)
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if !Equal(a.Fields[i], b.Fields[i]) {
				return false
			}
		}
		return valuesEqual(a, b)
	}
	return false
}

func valuesEqual(a, b *Node) bool {
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if !Equal(a.Values[i], b.Values[i]) {
			return false
		}
	}
	return true
}

func numEqual(a, b *Node) bool {
	switch {
	case a.Int64 != nil && b.Int64 != nil:
		return *a.Int64 == *b.Int64
	case a.Float64 != nil && b.Float64 != nil:
		return *a.Float64 == *b.Float64
	case a.Int64 != nil && b.Float64 != nil:
		return float64(*a.Int64) == *b.Float64
	case a.Float64 != nil && b.Int64 != nil:
		return *a.Float64 == float64(*b.Int64)
	}
	return a.Number == b.Number
}
