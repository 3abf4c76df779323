// Package atomicfile replaces files through a temporary sibling and a single
// rename, so readers observe either the old or the new contents.
//
// A process killed between Stage and Commit leaves the staged temporary file
// behind. Nothing in this package removes such orphans; they are harmless and
// can be deleted by hand.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tempPattern names staged files ".<base>-<random>.tmp" next to the target.
func tempPattern(path string) string {
	return "." + filepath.Base(path) + "-*.tmp"
}

// IsTemp reports whether name looks like a file staged for target. The
// target's base name is compared literally, so glob metacharacters in it
// have no effect.
func IsTemp(target, name string) bool {
	base := filepath.Base(name)
	prefix := "." + filepath.Base(target) + "-"
	return len(base) > len(prefix)+len(".tmp") &&
		strings.HasPrefix(base, prefix) && strings.HasSuffix(base, ".tmp")
}

// Stage writes data to a new temporary file in the directory of path and
// returns the temporary path. The target itself is not touched.
func Stage(path string, data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), tempPattern(path))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	return tmp, nil
}

// Commit renames a staged file onto path. If the rename fails the staged file
// is removed and path keeps its previous contents.
func Commit(tmp, path string) error {
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteFile atomically replaces path with data, creating parent directories
// as needed.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := Stage(path, data, perm)
	if err != nil {
		return err
	}
	return Commit(tmp, path)
}
