// Package calcerror defines the typed errors raised around the commission engine.
// The engine itself never fails; these errors come from strict input parsing,
// form-level validation, catalog lookups and export.
package calcerror

import (
	"fmt"
	"strings"
)

// InputError represents a value that could not be parsed in strict mode
type InputError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ValidationError represents a single form-level validation failure
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// ValidationErrors collects every failure found in one validation pass.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return fmt.Sprintf("%d validation errors: %s", len(e), strings.Join(msgs, "; "))
}

// CatalogError is returned when a service or advisor id is not in the catalog.
type CatalogError struct {
	Kind string
	ID   int
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s %d not found in catalog", e.Kind, e.ID)
}

// IndexError reports a ledger position outside the current item range.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for ledger of %d items", e.Index, e.Len)
}

// UnsupportedFormatError is returned for an export or input format the tool cannot handle
type UnsupportedFormatError struct {
	Format    string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s. Supported formats are %s",
		e.Format, strings.Join(e.Supported, ", "))
}
