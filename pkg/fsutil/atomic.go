package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to path through a temp file in the same
// directory that replaces path in a single rename. If mode is 0, the mode
// of an existing file is kept, else DefaultFileMode is used. On error the
// original file is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
		if stat, err := os.Stat(path); err == nil {
			mode = stat.Mode().Perm()
		}
	}

	pending, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	//nolint:errcheck // Cleanup is a no-op once the file was renamed.
	defer pending.Cleanup()

	if _, err := pending.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := pending.Chmod(mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
