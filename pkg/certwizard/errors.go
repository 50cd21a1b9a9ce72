package certwizard

import (
	"errors"
	"fmt"
)

// ErrNoValidRows is returned when a batch parses fine but not a single row
// survives validation. Unlike individual row rejections it must reach the
// user as a visible error.
var ErrNoValidRows = errors.New("no valid participant rows found")

// FormatError reports an unsupported upload format or a file whose structure
// cannot hold data (e.g. a header row without any data rows).
type FormatError struct {
	Format string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("invalid %s file: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("invalid file: %s", e.Reason)
}
