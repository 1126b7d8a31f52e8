package loader

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// loadFromFS reads name from files. Leading slashes are dropped because
// fs.FS paths are always unrooted.
func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean(strings.TrimLeft(name, "/"))
	if !fs.ValidPath(clean) || clean == "." {
		return nil, fmt.Errorf("invalid fs path %q", name)
	}
	return fs.ReadFile(files, clean)
}
