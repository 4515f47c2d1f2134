// Package rowrange parses the user supplied start and end rows.
package rowrange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nconklindev/sheetjson/internal/types"
)

// ErrInvalidRange indicates the start/end rows could not be used.
var ErrInvalidRange = errors.New("invalid row range")

// Parse validates start and end row text. A blank end means the range runs
// through the last row of each sheet.
func Parse(startText, endText string) (types.RowRange, error) {
	startText = strings.TrimSpace(startText)
	endText = strings.TrimSpace(endText)

	start, err := strconv.Atoi(startText)
	if err != nil {
		return types.RowRange{}, fmt.Errorf("%w: start row %q is not a number", ErrInvalidRange, startText)
	}
	if start < 1 {
		return types.RowRange{}, fmt.Errorf("%w: start row must be at least 1, got %d", ErrInvalidRange, start)
	}

	if endText == "" {
		return types.RowRange{Start: start}, nil
	}

	end, err := strconv.Atoi(endText)
	if err != nil {
		return types.RowRange{}, fmt.Errorf("%w: end row %q is not a number", ErrInvalidRange, endText)
	}
	if end < start {
		return types.RowRange{}, fmt.Errorf("%w: end row %d is before start row %d", ErrInvalidRange, end, start)
	}

	return types.RowRange{Start: start, End: end}, nil
}

// String renders the range the way it is shown to the user, e.g. "2-10" or "2-end".
func String(r types.RowRange) string {
	if r.End == 0 {
		return fmt.Sprintf("%d-end", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
