package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// maxLocalDocument bounds files read from disk.
const maxLocalDocument = 16 << 20

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" || path == "." {
		return nil, errors.New("file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxLocalDocument {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, maxLocalDocument)
	}
	return os.ReadFile(path)
}
