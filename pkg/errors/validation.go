package errors

import (
	"fmt"
	"strings"
	"unicode"
)

// Violations collects validation failures so that every broken rule is
// reported at once instead of only the first.
//
//	var v errors.Violations
//	v.Addf("height must be positive, got %g", h)
//	if err := v.Err(errors.ErrCodeInvalidParameter); err != nil {
//	    return err
//	}
type Violations struct {
	msgs []string
}

// Addf records a formatted violation.
func (v *Violations) Addf(format string, args ...any) {
	v.msgs = append(v.msgs, fmt.Sprintf(format, args...))
}

// Len returns the number of recorded violations.
func (v *Violations) Len() int { return len(v.msgs) }

// Messages returns the recorded violations in insertion order.
func (v *Violations) Messages() []string {
	return append([]string(nil), v.msgs...)
}

// Err returns nil when nothing was recorded, otherwise a single *Error with
// the given code whose message joins all violations with "; ".
func (v *Violations) Err(code Code) error {
	if len(v.msgs) == 0 {
		return nil
	}
	return &Error{Code: code, Message: strings.Join(v.msgs, "; ")}
}

// ValidateFilename validates an output file path for the drawing sink.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateFilename(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "filename too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "filename must not end with a path separator")
	}

	return nil
}
