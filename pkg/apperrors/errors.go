// Package apperrors defines the error taxonomy shared by the CRUD engine
// and the HTTP layer. Handlers classify failures with errors.Is against the
// sentinel values; the structured types carry table and operation context
// for logging.
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates zero rows matched a lookup, update or delete target.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint rejected a create.
	ErrAlreadyExists = errors.New("already exists")
	// ErrTooManyItems indicates a bulk delete exceeded its safety cap.
	// Nothing was mutated.
	ErrTooManyItems = errors.New("too many items")
	// ErrInvalidArgument indicates a malformed filter or sort specification.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStore indicates any other backend failure, including contract
	// violations such as an insert claiming success without returning rows.
	ErrStore = errors.New("store error")
)

// redactedValue replaces filter values for sensitive tables in error text.
const redactedValue = "hidden_value"

// FormatFilters renders an equality-filter map as "key: value" pairs in key
// order. When sensitive is true the values are replaced with a placeholder so
// they never reach logs or API responses.
func FormatFilters(filters map[string]any, sensitive bool) string {
	if len(filters) == 0 {
		return ""
	}
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		if sensitive {
			pairs = append(pairs, k+": "+redactedValue)
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s: %v", k, filters[k]))
	}
	return strings.Join(pairs, ", ")
}

// NotFoundError reports that no rows matched the given filters.
type NotFoundError struct {
	Table     string
	Op        string
	Filters   map[string]any
	Sensitive bool
}

func (e *NotFoundError) Error() string {
	if len(e.Filters) == 0 {
		return fmt.Sprintf("%s: no rows matched in table %q", e.Op, e.Table)
	}
	return fmt.Sprintf("%s: no rows matching filters (%s) in table %q",
		e.Op, FormatFilters(e.Filters, e.Sensitive), e.Table)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AlreadyExistsError reports a uniqueness violation during a create.
type AlreadyExistsError struct {
	Table string
	Op    string
	// Inputs describes the offending batch, already redacted by the caller
	// when the table is sensitive.
	Inputs string
	Err    error
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: rows conflicting with existing keys in table %q (%s)",
		e.Op, e.Table, e.Inputs)
}

func (e *AlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

func (e *AlreadyExistsError) Unwrap() error { return e.Err }

// TooManyItemsError reports that a bulk delete matched more rows than its
// safety cap allows. The delete was not executed.
type TooManyItemsError struct {
	Table   string
	Op      string
	Matched int
	Limit   int
}

func (e *TooManyItemsError) Error() string {
	return fmt.Sprintf("%s: %d rows matched in table %q, refusing to delete more than %d in one call",
		e.Op, e.Matched, e.Table, e.Limit)
}

func (e *TooManyItemsError) Is(target error) bool { return target == ErrTooManyItems }

// InvalidArgumentError reports a malformed filter or sort specification.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return e.Reason }

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// Invalidf builds an InvalidArgumentError from a format string.
func Invalidf(format string, args ...any) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// StoreError wraps an unclassified backend failure with the table and
// operation it occurred in. The cause is preserved for logging but handlers
// must not leak it to clients.
type StoreError struct {
	Table  string
	Op     string
	Detail string
	Err    error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s: store failure in table %q", e.Op, e.Table)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Is(target error) bool { return target == ErrStore }

func (e *StoreError) Unwrap() error { return e.Err }
