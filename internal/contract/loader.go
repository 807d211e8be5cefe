package contract

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

// Load reads a contract JSON file from disk and resolves file references
// in TypeSpec position ("./address.json") relative to the referencing
// file's directory. Reference cycles are detected and reported.
func Load(path string) (*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, axerrors.NewType("cannot read contract %s: %s", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	loader := &fileLoader{visited: map[string]bool{abs: true}}
	c, lerr := ParseResolved(data, loader.resolver(filepath.Dir(abs)))
	if lerr != nil {
		if ax, ok := lerr.(*axerrors.Error); ok {
			return nil, ax.WithFilename(path)
		}
		return nil, lerr
	}
	return c, nil
}

// fileLoader tracks visited shape files while resolving references.
type fileLoader struct {
	visited map[string]bool
}

// resolver returns a RefResolver resolving references relative to dir.
func (fl *fileLoader) resolver(dir string) RefResolver {
	return func(ref string) (types.Type, error) {
		target := ref
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, ref)
		}
		abs, err := filepath.Abs(target)
		if err != nil {
			abs = target
		}

		if fl.visited[abs] {
			return nil, axerrors.NewType("cyclic shape reference %q", ref)
		}
		fl.visited[abs] = true
		defer delete(fl.visited, abs)

		data, err := os.ReadFile(abs)
		if err != nil {
			return nil, axerrors.NewType("cannot read shape file %q: %s", ref, err)
		}

		return parseShapeFile(data, fl.resolver(filepath.Dir(abs)))
	}
}

// parseShapeFile decodes a standalone TypeSpec document.
func parseShapeFile(data []byte, resolve RefResolver) (types.Type, error) {
	if !gjson.ValidBytes(data) {
		return nil, axerrors.NewType("shape file is not valid JSON")
	}
	return parseTypeSpec(gjson.ParseBytes(data), resolve)
}
