package pricelist

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// LOAD ERROR TAXONOMY
// =============================================================================
// Every error that makes a load fatal matches exactly one of these sentinels
// via errors.Is. Icon index failures are never fatal and have no sentinel
// here; the icons package swallows them.

var (
	// ErrFetchFailure means the price payload could not be retrieved.
	ErrFetchFailure = errors.New("price data unavailable")

	// ErrMalformedPayload means the payload had fewer than two rows.
	ErrMalformedPayload = errors.New("price data has no rows")

	// ErrMissingColumns means one or more required headers are absent.
	ErrMissingColumns = errors.New("required columns missing")
)

// MissingColumnsError reports which required columns were not found and the
// full normalized header row that was searched.
type MissingColumnsError struct {
	// Missing lists the canonical names that were not found, in the order
	// item, kategorie, preis.
	Missing []string

	// Headers is the normalized header row, by position.
	Headers []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("required columns missing: %s (found headers: %s)",
		strings.Join(e.Missing, ", "),
		formatHeaders(e.Headers),
	)
}

// Is makes errors.Is(err, ErrMissingColumns) hold.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// FetchError wraps a transport failure so it matches ErrFetchFailure while
// keeping the underlying cause reachable.
func FetchError(err error) error {
	return fmt.Errorf("%w: %w", ErrFetchFailure, err)
}

// Diagnostic converts a load error into the single human-readable message shown
// in place of the table. It never returns an empty string for a non-nil error.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}

	var missing *MissingColumnsError
	switch {
	case errors.As(err, &missing):
		return fmt.Sprintf("Die Preisliste ist unvollständig: Spalte(n) %s fehlen. Gefundene Spalten: %s",
			strings.Join(missing.Missing, ", "),
			formatHeaders(missing.Headers),
		)
	case errors.Is(err, ErrMalformedPayload):
		return "Die Preisliste enthält keine Einträge."
	case errors.Is(err, ErrFetchFailure):
		return "Die Preisliste konnte nicht geladen werden. Bitte später erneut versuchen."
	default:
		return "Fehler beim Laden der Preisliste: " + err.Error()
	}
}

func formatHeaders(headers []string) string {
	if len(headers) == 0 {
		return "(keine)"
	}
	quoted := make([]string, len(headers))
	for i, h := range headers {
		quoted[i] = fmt.Sprintf("%q", h)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
