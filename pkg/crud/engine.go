package crud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mediamarket-ai/chat-engine/pkg/apperrors"
	"github.com/mediamarket-ai/chat-engine/pkg/database"
)

// DefaultMaxDeleteLimit is the bulk delete safety cap. Deliberately small:
// a mis-scoped filter must not be able to erase unbounded data in one call.
const DefaultMaxDeleteLimit = 12

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations. Matching on the structured code keeps classification
// independent of server message wording.
const uniqueViolation = "23505"

// Engine provides CRUD operations for one entity. R is the persisted record
// shape, C and U the create and update input shapes. The engine holds no
// mutable state and is safe for concurrent use; every public operation runs
// inside exactly one transaction, joining a caller-opened one when the
// context carries it.
type Engine[R any, C FieldMapper, U FieldMapper] struct {
	db             *database.DB
	binding        *Binding[R]
	maxDeleteLimit int
}

// NewEngine builds an engine for the entity described by binding.
// maxDeleteLimit <= 0 falls back to DefaultMaxDeleteLimit.
func NewEngine[R any, C FieldMapper, U FieldMapper](db *database.DB, binding *Binding[R], maxDeleteLimit int) *Engine[R, C, U] {
	if maxDeleteLimit <= 0 {
		maxDeleteLimit = DefaultMaxDeleteLimit
	}
	return &Engine[R, C, U]{
		db:             db,
		binding:        binding,
		maxDeleteLimit: maxDeleteLimit,
	}
}

// Table returns the bound table name.
func (e *Engine[R, C, U]) Table() string { return e.binding.Table }

// Get returns all records matching the equality filters. Zero matches is a
// NotFound error; callers wanting single-record semantics pass an id filter
// and take the first element.
func (e *Engine[R, C, U]) Get(ctx context.Context, filters map[string]any) ([]R, error) {
	where, args, err := e.binding.compileFilters(filters)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + e.binding.selectList() + " FROM " + e.binding.Table + where

	var records []R
	err = e.db.InTx(ctx, func(ctx context.Context, q database.Querier) error {
		records, err = collect[R](ctx, q, query, args)
		return err
	})
	if err != nil {
		return nil, e.storeErr("get", err)
	}

	if len(records) == 0 {
		return nil, &apperrors.NotFoundError{
			Table:     e.binding.Table,
			Op:        "get",
			Filters:   filters,
			Sensitive: e.binding.Sensitive,
		}
	}
	return records, nil
}

// GetAll returns all records, optionally sorted and paged. An empty table is
// not an error: the result is an empty slice.
func (e *Engine[R, C, U]) GetAll(ctx context.Context, params *FilterParams) ([]R, error) {
	suffix, err := e.binding.compileFilterParams(params, false)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + e.binding.selectList() + " FROM " + e.binding.Table + suffix

	var records []R
	err = e.db.InTx(ctx, func(ctx context.Context, q database.Querier) error {
		records, err = collect[R](ctx, q, query, nil)
		return err
	})
	if err != nil {
		return nil, e.storeErr("get_all", err)
	}
	return records, nil
}

// CountAll returns the total row count for the entity, used for pagination
// metadata. Filters are deliberately not supported here.
func (e *Engine[R, C, U]) CountAll(ctx context.Context) (int64, error) {
	query := "SELECT COUNT(*) FROM " + e.binding.Table

	var count int64
	err := e.db.InTx(ctx, func(ctx context.Context, q database.Querier) error {
		return q.QueryRow(ctx, query).Scan(&count)
	})
	if err != nil {
		return 0, e.storeErr("count_all", err)
	}
	return count, nil
}

// Create inserts all inputs with a single statement inside one transaction,
// all-or-nothing. With returnNothing the RETURNING clause is omitted and nil
// is returned on success; this skips the round-trip of shipping rows back
// for fire-and-forget ingestion. The order of returned records is not
// guaranteed to correspond to input order.
func (e *Engine[R, C, U]) Create(ctx context.Context, inputs []C, returnNothing bool) ([]R, error) {
	if len(inputs) == 0 {
		return nil, apperrors.Invalidf("create requires at least one input")
	}

	query, args, err := e.insertStmt(inputs, returnNothing)
	if err != nil {
		return nil, err
	}

	var records []R
	err = e.db.InTx(ctx, func(ctx context.Context, q database.Querier) error {
		if returnNothing {
			_, err := q.Exec(ctx, query, args...)
			return err
		}
		records, err = collect[R](ctx, q, query, args)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, &apperrors.AlreadyExistsError{
				Table:  e.binding.Table,
				Op:     "create",
				Inputs: e.describeInputs(inputs),
				Err:    err,
			}
		}
		return nil, e.storeErr("create", err)
	}

	if returnNothing {
		return nil, nil
	}
	if len(records) == 0 {
		// The insert claimed success but returned nothing.
		return nil, &apperrors.StoreError{
			Table:  e.binding.Table,
			Op:     "create",
			Detail: "insert reported success but returned no rows",
		}
	}
	return records, nil
}

// Update overwrites every writable column of the record with the given id
// and returns the post-update state, so server-set columns such as update
// timestamps are reflected. A missing id is a NotFound error.
func (e *Engine[R, C, U]) Update(ctx context.Context, id uuid.UUID, input U) (R, error) {
	var record R

	fields := input.FieldMap()
	set := make([]string, 0, len(e.binding.Writable))
	args := make([]any, 0, len(e.binding.Writable)+1)
	for _, col := range e.binding.Writable {
		value, ok := fields[col]
		if !ok {
			return record, &apperrors.StoreError{
				Table:  e.binding.Table,
				Op:     "update",
				Detail: fmt.Sprintf("input is missing a value for column %q", col),
			}
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, value)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		e.binding.Table, strings.Join(set, ", "), len(args), e.binding.selectList())

	err := e.db.InTx(ctx, func(ctx context.Context, q database.Querier) error {
		var exists bool
		existsQuery := "SELECT EXISTS (SELECT 1 FROM " + e.binding.Table + " WHERE id = $1)"
		if err := q.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return &apperrors.NotFoundError{
				Table:     e.binding.Table,
				Op:        "update",
				Filters:   map[string]any{"id": id},
				Sensitive: e.binding.Sensitive,
			}
		}

		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		record, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[R])
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return record, err
		}
		return record, e.storeErr("update", err)
	}
	return record, nil
}

// Delete removes every record matching the equality filters and returns the
// pre-deletion snapshot. Zero matches is NotFound. When the matched count
// exceeds the cap (maxDeleteLimit, or the engine default if <= 0) the call
// fails with TooManyItems and nothing is deleted: the cap is a pre-check,
// not a truncation. Optional params apply ordering only, to make the
// returned snapshot deterministic.
func (e *Engine[R, C, U]) Delete(ctx context.Context, filters map[string]any, maxDeleteLimit int, params *FilterParams) ([]R, error) {
	if len(filters) == 0 {
		return nil, apperrors.Invalidf("delete requires at least one filter")
	}
	if maxDeleteLimit <= 0 {
		maxDeleteLimit = e.maxDeleteLimit
	}

	where, args, err := e.binding.compileFilters(filters)
	if err != nil {
		return nil, err
	}
	order, err := e.binding.compileFilterParams(params, true)
	if err != nil {
		return nil, err
	}

	selectQuery := "SELECT " + e.binding.selectList() + " FROM " + e.binding.Table + where + order
	deleteQuery := "DELETE FROM " + e.binding.Table + where

	var snapshot []R
	err = e.db.InTx(ctx, func(ctx context.Context, q database.Querier) error {
		snapshot, err = collect[R](ctx, q, selectQuery, args)
		if err != nil {
			return err
		}

		if len(snapshot) == 0 {
			return &apperrors.NotFoundError{
				Table:     e.binding.Table,
				Op:        "delete",
				Filters:   filters,
				Sensitive: e.binding.Sensitive,
			}
		}
		if len(snapshot) > maxDeleteLimit {
			return &apperrors.TooManyItemsError{
				Table:   e.binding.Table,
				Op:      "delete",
				Matched: len(snapshot),
				Limit:   maxDeleteLimit,
			}
		}

		_, err := q.Exec(ctx, deleteQuery, args...)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrTooManyItems) {
			return nil, err
		}
		return nil, e.storeErr("delete", err)
	}
	return snapshot, nil
}

// insertStmt builds a single multi-row INSERT for all inputs.
func (e *Engine[R, C, U]) insertStmt(inputs []C, returnNothing bool) (string, []any, error) {
	cols := e.binding.Writable

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(e.binding.Table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(inputs)*len(cols))
	for i, input := range inputs {
		fields := input.FieldMap()
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j, col := range cols {
			value, ok := fields[col]
			if !ok {
				return "", nil, &apperrors.StoreError{
					Table:  e.binding.Table,
					Op:     "create",
					Detail: fmt.Sprintf("input %d is missing a value for column %q", i, col),
				}
			}
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", len(args)+1)
			args = append(args, value)
		}
		sb.WriteString(")")
	}

	if !returnNothing {
		sb.WriteString(" RETURNING ")
		sb.WriteString(e.binding.selectList())
	}
	return sb.String(), args, nil
}

// describeInputs renders the batch for error messages, redacting values for
// sensitive tables.
func (e *Engine[R, C, U]) describeInputs(inputs []C) string {
	descs := make([]string, 0, len(inputs))
	for _, input := range inputs {
		descs = append(descs, "{"+apperrors.FormatFilters(input.FieldMap(), e.binding.Sensitive)+"}")
	}
	return strings.Join(descs, ", ")
}

func (e *Engine[R, C, U]) storeErr(op string, err error) error {
	// Taxonomy errors pass through untouched so callers classify once.
	if errors.Is(err, apperrors.ErrInvalidArgument) || errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrAlreadyExists) || errors.Is(err, apperrors.ErrTooManyItems) {
		return err
	}
	return &apperrors.StoreError{Table: e.binding.Table, Op: op, Err: err}
}

// collect runs query and maps every row onto R by matching db struct tags
// to column names.
func collect[R any](ctx context.Context, q database.Querier, query string, args []any) ([]R, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[R])
}
