//go:build windows

package discover

import "golang.org/x/sys/windows"

// IsHidden treats a file as hidden when either its name starts with a dot or
// the FILE_ATTRIBUTE_HIDDEN bit is set.
func IsHidden(path string) (bool, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false, err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false, err
	}
	return hasDotPrefix(path) || attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0, nil
}
