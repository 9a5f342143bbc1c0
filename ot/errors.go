package ot

import (
	"errors"
	"fmt"
)

// Errors reported by reading, transforming and writing fonts. Clients test for
// them with errors.Is, as they usually arrive wrapped in a FontError.
var (
	// ErrMalformedHeader signals a header or table directory inconsistent
	// with the size of the font data.
	ErrMalformedHeader = errors.New("malformed sfnt header")
	// ErrTruncatedInput signals a read beyond the end of the font data.
	ErrTruncatedInput = errors.New("truncated font data")
	// ErrInvalidScaleFactor signals a scale factor which is not a finite
	// number in the admissible range.
	ErrInvalidScaleFactor = errors.New("invalid scale factor")
	// ErrSkippedNoMetrics signals that a font lacks table 'hhea' or 'hmtx'.
	// It is not fatal: the font is written unchanged.
	ErrSkippedNoMetrics = errors.New("no horizontal metrics, scaling skipped")
	// ErrWriteAlignment signals an internal inconsistency while writing a font.
	ErrWriteAlignment = errors.New("write alignment invariant violated")
)

// ErrorSeverity represents the severity level of a font error.
type ErrorSeverity int

const (
	// SeverityCritical indicates a severe error that makes the font unusable or unreliable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a significant error that may affect functionality but doesn't prevent usage.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered while reading, transforming or
// writing a font. It carries enough context (table, section, file offset) to
// diagnose a malformed font. Err is one of the sentinel errors of this package.
type FontError struct {
	Table    Tag           // The table where the error occurred (0 for the container itself)
	Section  string        // Specific section (e.g., "Header", "Directory", "Bounds")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
	Offset   uint32        // Byte offset in the font file where the error occurred (0 if unknown)
	Err      error         // Sentinel error classifying the issue
}

// Error implements the error interface.
func (e FontError) Error() string {
	table := "sfnt"
	if e.Table != 0 {
		table = e.Table.String()
	}
	msg := e.Issue
	if e.Err != nil {
		msg = fmt.Sprintf("%s (%v)", e.Issue, e.Err)
	}
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, table, e.Section, e.Offset, msg)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, table, e.Section, msg)
}

// Unwrap returns the sentinel error classifying e.
func (e FontError) Unwrap() error {
	return e.Err
}

// NewFontError creates a FontError for a sentinel error. All errors are
// critical, except for ErrSkippedNoMetrics.
func NewFontError(table Tag, section string, offset uint32, err error, format string, args ...any) error {
	severity := SeverityCritical
	if err == ErrSkippedNoMetrics {
		severity = SeverityMinor
	}
	return FontError{
		Table:    table,
		Section:  section,
		Issue:    fmt.Sprintf(format, args...),
		Severity: severity,
		Offset:   offset,
		Err:      err,
	}
}

// IsSkipped reports whether err signals a font without horizontal metrics.
func IsSkipped(err error) bool {
	return errors.Is(err, ErrSkippedNoMetrics)
}

// FontWarning represents a non-critical issue encountered during font parsing.
// Warnings indicate potential problems but do not prevent reading the font.
// Minor warnings are repaired when the font is written, major ones are not.
type FontWarning struct {
	Table    Tag           // The table where the warning occurred
	Issue    string        // Human-readable description of the warning
	Severity ErrorSeverity // SeverityMajor or SeverityMinor
	Offset   uint32        // Byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING/%s] %s at offset %d: %s", w.Severity, w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING/%s] %s: %s", w.Severity, w.Table, w.Issue)
}

// IsMajor reports whether w is an issue that writing the font will not repair.
func (w FontWarning) IsMajor() bool {
	return w.Severity <= SeverityMajor
}

// warningCollector accumulates warnings while checking a font.
type warningCollector struct {
	warnings []FontWarning
}

func (wc *warningCollector) addWarning(table Tag, severity ErrorSeverity, issue string, offset uint32) {
	tracer().Infof("%s: %s", table, issue)
	wc.warnings = append(wc.warnings, FontWarning{
		Table:    table,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
	})
}

func (wc *warningCollector) hasWarnings() bool {
	return len(wc.warnings) > 0
}
