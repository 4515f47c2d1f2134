//go:build !windows

package discover

import "os"

// IsHidden follows the Unix convention: a leading dot in the base name.
func IsHidden(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		return false, err
	}
	return hasDotPrefix(path), nil
}
