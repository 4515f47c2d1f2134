package discover

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Walk returns the absolute path of every file under root, descending into
// all subdirectories. Directories themselves are not returned. Paths come
// back in lexical order.
//
// A subdirectory that cannot be read is logged and skipped; only a root that
// cannot be read fails the walk.
func Walk(root string, logger *log.Logger) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return walkFS(os.DirFS(abs), abs, logger)
}

// walkFS walks fsys from its top and reports file paths joined onto base.
func walkFS(fsys fs.FS, base string, logger *log.Logger) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		full := filepath.Join(base, filepath.FromSlash(path))
		if err != nil {
			if path == "." {
				return err
			}
			if logger != nil {
				logger.Warn("skipping unreadable directory", "dir", full, "err", err)
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, full)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
