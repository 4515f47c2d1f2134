// Package discover finds the spreadsheet files a directory-scan run converts.
package discover

import (
	"path/filepath"
	"strings"
)

// Extensions are the accepted spreadsheet extensions, in the order a bare
// file name is resolved against them.
var Extensions = []string{".xlsx", ".xls"}

// TempPrefix marks the lock files spreadsheet editors keep next to open workbooks.
const TempPrefix = "~$"

// HiddenFunc reports whether the file at path is hidden. It queries file
// metadata, so it can fail for missing or unreadable files.
type HiddenFunc func(path string) (bool, error)

// Classifier decides which files are eligible for conversion.
type Classifier struct {
	Hidden HiddenFunc
}

// NewClassifier returns a Classifier using the platform hidden-file check.
func NewClassifier() Classifier {
	return Classifier{Hidden: IsHidden}
}

// HasSpreadsheetExt matches the extension exactly, without case folding.
func HasSpreadsheetExt(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsTemp reports whether the base name carries the editor lock-file prefix.
func IsTemp(path string) bool {
	return strings.HasPrefix(filepath.Base(path), TempPrefix)
}

// IsEligible reports whether path is a spreadsheet that is neither a lock
// file nor hidden. Name checks run first so a rejected name never hits the
// filesystem.
func (c Classifier) IsEligible(path string) (bool, error) {
	if IsTemp(path) || !HasSpreadsheetExt(path) {
		return false, nil
	}

	hidden := c.Hidden
	if hidden == nil {
		hidden = IsHidden
	}
	isHidden, err := hidden(path)
	if err != nil {
		return false, err
	}
	return !isHidden, nil
}

func hasDotPrefix(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
