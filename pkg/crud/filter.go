package crud

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mediamarket-ai/chat-engine/pkg/apperrors"
)

// Sort directions accepted in FilterParams.SortOrders.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// FilterParams carries pagination and sorting for list queries. All fields
// are optional; a nil FilterParams means no ordering and no paging.
type FilterParams struct {
	// Limit caps the number of returned rows. Must be positive when set.
	Limit *int
	// Offset skips rows after ordering. Must not be negative.
	Offset int
	// SortColumns are applied in sequence as a stable multi-key ordering.
	SortColumns []string
	// SortOrders holds "asc" or "desc" per sort column. When absent every
	// column sorts ascending; when present the length must match
	// SortColumns.
	SortOrders []string
}

// compileFilterParams validates params against the binding's columns and
// renders the ORDER BY / LIMIT / OFFSET suffix. With orderingOnly set the
// paging fields are ignored, which is what delete uses to make its snapshot
// deterministic. Violations are hard InvalidArgument failures, never
// silently dropped.
func (b *Binding[R]) compileFilterParams(p *FilterParams, orderingOnly bool) (string, error) {
	if p == nil {
		return "", nil
	}

	if len(p.SortOrders) > 0 && len(p.SortColumns) == 0 {
		return "", apperrors.Invalidf("sort orders provided without corresponding sort columns")
	}
	if len(p.SortOrders) > 0 && len(p.SortOrders) != len(p.SortColumns) {
		return "", apperrors.Invalidf("the length of sort_columns (%d) and sort_orders (%d) must match",
			len(p.SortColumns), len(p.SortOrders))
	}
	for _, order := range p.SortOrders {
		if order != SortAsc && order != SortDesc {
			return "", apperrors.Invalidf("invalid sort order: %s, only %q or %q are allowed",
				order, SortAsc, SortDesc)
		}
	}
	for _, column := range p.SortColumns {
		if !b.HasColumn(column) {
			return "", apperrors.Invalidf("invalid column name: %s", column)
		}
	}

	var sb strings.Builder
	if len(p.SortColumns) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, column := range p.SortColumns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(column)
			if len(p.SortOrders) > 0 && p.SortOrders[i] == SortDesc {
				sb.WriteString(" DESC")
			} else {
				sb.WriteString(" ASC")
			}
		}
	}

	if orderingOnly {
		return sb.String(), nil
	}

	if p.Offset < 0 {
		return "", apperrors.Invalidf("offset must not be negative, got %d", p.Offset)
	}
	if p.Limit != nil && *p.Limit <= 0 {
		return "", apperrors.Invalidf("limit must be positive, got %d", *p.Limit)
	}

	if p.Limit != nil {
		fmt.Fprintf(&sb, " LIMIT %d", *p.Limit)
	}
	if p.Offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", p.Offset)
	}
	return sb.String(), nil
}

// compileFilters renders an equality-filter map as a WHERE clause with
// positional arguments, in key order so the generated SQL is deterministic.
// Unknown column names are rejected with the offending name echoed.
func (b *Binding[R]) compileFilters(filters map[string]any) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		if !b.HasColumn(k) {
			return "", nil, apperrors.Invalidf("invalid column name: %s", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	args := make([]any, 0, len(keys))
	sb.WriteString(" WHERE ")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		fmt.Fprintf(&sb, "%s = $%d", k, i+1)
		args = append(args, filters[k])
	}
	return sb.String(), args, nil
}
