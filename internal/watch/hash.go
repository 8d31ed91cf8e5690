package watch

import (
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

// TreeHash returns a fast fingerprint of the directory trees, derived
// from relative file paths, sizes and modification times rather than
// content. Hidden directories are skipped, matching what the watcher
// reports. Missing directories contribute nothing.
func TreeHash(dirs []string) (string, error) {
	h := blake3.New()
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != dir && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				rel = path
			}
			if _, err := fmt.Fprintf(h, "%s:%d:%d;", filepath.ToSlash(rel), info.Size(), info.ModTime().UnixNano()); err != nil {
				return fmt.Errorf("failed to write to hash: %w", err)
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
