// Package load reads configuration documents and resolves their
// directives: file inclusion, directory-scoped inclusion with several
// merge policies, secret lookup, environment substitution and verbatim
// code fragments. The result is a fully resolved ir tree owned by the
// caller.
package load

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/hwconf/yamlpp/debug"
	"github.com/hwconf/yamlpp/ir"
	"github.com/hwconf/yamlpp/parse"
)

// Context is the load context threaded through one recursive load
// chain: the directory of the file currently being parsed. Relative
// paths in directives always resolve against it, never against the
// root invocation path.
type Context struct {
	Dir string
}

type Loader struct {
	resolver *Resolver
}

func NewLoader(r *Resolver) *Loader {
	return &Loader{resolver: r}
}

// Load reads, parses and resolves path with the default resolver.
func Load(path string) (*ir.Node, error) {
	return NewLoader(DefaultResolver()).Load(path)
}

// Load reads path as UTF-8 YAML, parses it and resolves every
// directive against path's directory. Include chains that refer back
// to an ancestor file recurse without a cycle guard.
func (l *Loader) Load(path string) (*ir.Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ir.ErrIO, path, err)
	}
	if debug.Load() {
		debug.Logf("load %s\n", abs)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: error accessing file %s: %s", ir.ErrIO, path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: unable to read file %s: invalid UTF-8", ir.ErrEncoding, path)
	}
	node, err := parse.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l.resolve(node, Context{Dir: filepath.Dir(abs)})
}

// resolve replaces directive nodes bottom-up, so a directive whose
// payload is a tree sees that payload already resolved.
func (l *Loader) resolve(node *ir.Node, ctx Context) (*ir.Node, error) {
	switch node.Type {
	case ir.ObjectType:
		for i := range node.Values {
			cy, err := l.resolve(node.Values[i], ctx)
			if err != nil {
				return nil, err
			}
			node.Values[i] = cy
		}
		return node, nil
	case ir.ArrayType:
		for i := range node.Values {
			cy, err := l.resolve(node.Values[i], ctx)
			if err != nil {
				return nil, err
			}
			node.Values[i] = cy
		}
		return node, nil
	case ir.DirectiveType:
		h := l.resolver.Lookup(node.Directive)
		if h == nil {
			return nil, fmt.Errorf("%w: unknown directive !%s", ir.ErrParse, node.Directive)
		}
		payload := ir.Null()
		if len(node.Values) != 0 {
			var err error
			payload, err = l.resolve(node.Values[0], ctx)
			if err != nil {
				return nil, err
			}
		}
		if debug.Resolve() {
			debug.Logf("resolve !%s in %s\n", node.Directive, ctx.Dir)
		}
		return h(l, ctx, payload)
	default:
		return node, nil
	}
}

// scalarArg returns the directive payload as text, for directives
// whose payload shape is scalar.
func scalarArg(directive string, payload *ir.Node) (string, error) {
	switch payload.Type {
	case ir.StringType:
		return payload.String, nil
	case ir.NumberType:
		return payload.Number, nil
	default:
		return "", fmt.Errorf("%w: !%s expects a scalar value, got %s",
			ir.ErrParse, directive, payload.Type)
	}
}
