package load

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hwconf/yamlpp/debug"
	"github.com/hwconf/yamlpp/ir"
)

// Scan recursively lists files under dir whose base name matches the
// shell glob pattern. Entries whose name starts with "." are skipped,
// and hidden directories are pruned before descent, so nothing inside
// a hidden subtree is ever visited. Results are in lexicographic path
// order, which fixes the tie-break order for directory merges.
func Scan(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot scan %s: %s", ir.ErrIO, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: cannot scan %s: not a directory", ir.ErrIO, dir)
	}
	var files []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s", ir.ErrIO, err)
		}
		hidden := strings.HasPrefix(d.Name(), ".") && p != dir
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}
		ok, err := path.Match(pattern, d.Name())
		if err != nil {
			return fmt.Errorf("%w: bad pattern %q: %s", ir.ErrIO, pattern, err)
		}
		if ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if debug.Scan() {
		debug.Logf("scan %s %q -> %d files\n", dir, pattern, len(files))
	}
	return files, nil
}
