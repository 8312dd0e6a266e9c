package load

import (
	"errors"
	"fmt"

	"github.com/hwconf/yamlpp/ir"
)

// Handler resolves one directive occurrence. It receives the loader
// (so inclusion handlers can recurse), the load context of the
// containing file, and the already-resolved payload, and returns the
// node spliced in place of the directive.
type Handler func(l *Loader, ctx Context, payload *ir.Node) (*ir.Node, error)

type Entry struct {
	Directive string
	Handler   Handler
}

var ErrDirectiveExists = errors.New("directive exists")

// Resolver is a fixed table from directive name to handler. The table
// is sealed at construction; duplicate registrations fail then, not
// at resolution time.
type Resolver struct {
	handlers map[string]Handler
}

func NewResolver(entries ...Entry) (*Resolver, error) {
	r := &Resolver{handlers: make(map[string]Handler, len(entries))}
	for _, e := range entries {
		if _, present := r.handlers[e.Directive]; present {
			return nil, fmt.Errorf("%s: %w", e.Directive, ErrDirectiveExists)
		}
		r.handlers[e.Directive] = e.Handler
	}
	return r, nil
}

func (r *Resolver) Lookup(directive string) Handler {
	return r.handlers[directive]
}

func (r *Resolver) Directives() []string {
	res := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		res = append(res, name)
	}
	return res
}

// DefaultResolver returns a resolver with the built-in directive set.
func DefaultResolver() *Resolver {
	r, err := NewResolver(
		Entry{"env_var", envVar},
		Entry{"secret", secret},
		Entry{"include", include},
		Entry{"include_dir_named", includeDirNamed},
		Entry{"include_dir_merge_named", includeDirMergeNamed},
		Entry{"include_dir_list", includeDirList},
		Entry{"include_dir_merge_list", includeDirMergeList},
		Entry{"lambda", lambda},
	)
	if err != nil {
		panic(err)
	}
	return r
}
