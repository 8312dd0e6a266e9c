package load

import (
	"fmt"
	"path/filepath"

	"github.com/hwconf/yamlpp/debug"
	"github.com/hwconf/yamlpp/ir"
)

// SecretsName is the conventional file name for the secrets document.
// It sits next to the files that reference it and is excluded from
// every directory scan result.
const SecretsName = "secrets.yaml"

// Secret loads the secrets document from the current directory and
// looks up key. The document is loaded fresh on every call.
func Secret(l *Loader, ctx Context, key string) (*ir.Node, error) {
	if debug.Secret() {
		debug.Logf("secret %s from %s\n", key, ctx.Dir)
	}
	secrets, err := l.Load(filepath.Join(ctx.Dir, SecretsName))
	if err != nil {
		return nil, err
	}
	node := secrets.Get(key)
	if node == nil {
		return nil, fmt.Errorf("%w: secret %s not defined", ir.ErrUndefinedSecret, key)
	}
	return node, nil
}
