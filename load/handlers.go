package load

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hwconf/yamlpp/ir"
)

// DefaultPattern is the glob used by the directory inclusion
// directives.
const DefaultPattern = "*.yaml"

func envVar(_ *Loader, _ Context, payload *ir.Node) (*ir.Node, error) {
	name, err := scalarArg("env_var", payload)
	if err != nil {
		return nil, err
	}
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil, fmt.Errorf("%w: environment variable %s not defined", ir.ErrUndefinedVariable, name)
	}
	return ir.FromString(v), nil
}

func secret(l *Loader, ctx Context, payload *ir.Node) (*ir.Node, error) {
	key, err := scalarArg("secret", payload)
	if err != nil {
		return nil, err
	}
	return Secret(l, ctx, key)
}

func include(l *Loader, ctx Context, payload *ir.Node) (*ir.Node, error) {
	rel, err := scalarArg("include", payload)
	if err != nil {
		return nil, err
	}
	return l.Load(filepath.Join(ctx.Dir, rel))
}

// scanDir resolves the directive payload against the load context and
// scans it, dropping the secrets file from the result set.
func scanDir(directive string, ctx Context, payload *ir.Node) ([]string, error) {
	rel, err := scalarArg(directive, payload)
	if err != nil {
		return nil, err
	}
	files, err := Scan(filepath.Join(ctx.Dir, rel), DefaultPattern)
	if err != nil {
		return nil, err
	}
	res := files[:0]
	for _, f := range files {
		if filepath.Base(f) == SecretsName {
			continue
		}
		res = append(res, f)
	}
	return res, nil
}

func includeDirNamed(l *Loader, ctx Context, payload *ir.Node) (*ir.Node, error) {
	files, err := scanDir("include_dir_named", ctx, payload)
	if err != nil {
		return nil, err
	}
	res := ir.EmptyObject()
	for _, f := range files {
		node, err := l.Load(f)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		res.Put(ir.FromString(name), node)
	}
	return res, nil
}

func includeDirMergeNamed(l *Loader, ctx Context, payload *ir.Node) (*ir.Node, error) {
	files, err := scanDir("include_dir_merge_named", ctx, payload)
	if err != nil {
		return nil, err
	}
	res := ir.EmptyObject()
	for _, f := range files {
		node, err := l.Load(f)
		if err != nil {
			return nil, err
		}
		if node.Type != ir.ObjectType {
			continue
		}
		// later files win on key collision; Put overwrites in place
		for i := range node.Fields {
			res.Put(node.Fields[i], node.Values[i])
		}
	}
	return res, nil
}

func includeDirList(l *Loader, ctx Context, payload *ir.Node) (*ir.Node, error) {
	files, err := scanDir("include_dir_list", ctx, payload)
	if err != nil {
		return nil, err
	}
	res := ir.FromSlice(make([]*ir.Node, 0, len(files)))
	for _, f := range files {
		node, err := l.Load(f)
		if err != nil {
			return nil, err
		}
		res.Values = append(res.Values, node)
	}
	return res, nil
}

func includeDirMergeList(l *Loader, ctx Context, payload *ir.Node) (*ir.Node, error) {
	files, err := scanDir("include_dir_merge_list", ctx, payload)
	if err != nil {
		return nil, err
	}
	res := ir.FromSlice(nil)
	for _, f := range files {
		node, err := l.Load(f)
		if err != nil {
			return nil, err
		}
		if node.Type != ir.ArrayType {
			continue
		}
		res.Values = append(res.Values, node.Values...)
	}
	return res, nil
}

func lambda(_ *Loader, _ Context, payload *ir.Node) (*ir.Node, error) {
	text, err := scalarArg("lambda", payload)
	if err != nil {
		return nil, err
	}
	return ir.FromScalar(ir.Lambda(text)), nil
}
