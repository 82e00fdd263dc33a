package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"ordertrack/internal/pkg/errs"
)

// Where is an equality filter keyed by column name.
type Where map[string]any

// Table is typed access to the rows of one table. T must be a row struct with a
// gorm.DeletedAt field when SoftDelete is used.
//
// Example:
//
//	orders := store.NewTable[OrderDTO]("id")
//	h, err := recordStore.Connect(ctx)
//	if err != nil {
//	    return err
//	}
//	rows, err := orders.Rows(ctx, h, store.Where{"status": "scheduled"}, "created_at")
type Table[T Model] struct {
	name string
	key  string
}

// NewTable binds T to its table; key is the primary key column.
func NewTable[T Model](key string) Table[T] {
	var zero T
	return Table[T]{name: zero.TableName(), key: key}
}

func (t Table[T]) Name() string { return t.name }

// Rows returns the live rows matching where, sorted by orderBy when it is set.
func (t Table[T]) Rows(ctx context.Context, h *Handle, where Where, orderBy string) ([]T, error) {
	return t.find(ctx, h, h.DB(ctx), where, orderBy)
}

// AllRows is Rows including soft-deleted rows.
func (t Table[T]) AllRows(ctx context.Context, h *Handle, where Where, orderBy string) ([]T, error) {
	return t.find(ctx, h, h.DB(ctx).Unscoped(), where, orderBy)
}

// Get returns the live row with the given key or an ObjectNotFoundError.
func (t Table[T]) Get(ctx context.Context, h *Handle, key any) (T, error) {
	var row T
	err := h.DB(ctx).Where(t.key+" = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, errs.NewObjectNotFoundError(t.name, key)
	}
	if err != nil {
		return row, classify("get", t.name, err)
	}
	return row, nil
}

// Exists reports whether a live row matches where.
func (t Table[T]) Exists(ctx context.Context, h *Handle, where Where) (bool, error) {
	if err := t.checkColumns(h, "exists", keys(where)); err != nil {
		return false, err
	}

	var n int64
	if err := h.DB(ctx).Model(new(T)).Where(map[string]any(where)).Limit(1).Count(&n).Error; err != nil {
		return false, classify("exists", t.name, err)
	}
	return n > 0, nil
}

// Append inserts row. Every field of T must exist in the table.
func (t Table[T]) Append(ctx context.Context, h *Handle, row *T) error {
	stmt := &gorm.Statement{DB: h.db}
	if err := stmt.Parse(row); err != nil {
		return classify("append", t.name, err)
	}
	if err := t.checkColumns(h, "append", stmt.Schema.DBNames); err != nil {
		return err
	}

	if err := h.DB(ctx).Create(row).Error; err != nil {
		return classify("append", t.name, err)
	}
	return nil
}

// Update writes fields to the live row with the given key. Unknown columns fail before
// anything is sent.
func (t Table[T]) Update(ctx context.Context, h *Handle, key any, fields map[string]any) error {
	if err := t.checkColumns(h, "update", keys(fields)); err != nil {
		return err
	}

	result := h.DB(ctx).Model(new(T)).Where(t.key+" = ?", key).Updates(fields)
	if result.Error != nil {
		return classify("update", t.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(t.name, key)
	}
	return nil
}

// SoftDelete flags the row as deleted. The row stays readable through AllRows.
func (t Table[T]) SoftDelete(ctx context.Context, h *Handle, key any) error {
	result := h.DB(ctx).Where(t.key+" = ?", key).Delete(new(T))
	if result.Error != nil {
		return classify("soft delete", t.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(t.name, key)
	}
	return nil
}

// IDs returns every key ever written, soft-deleted rows included.
func (t Table[T]) IDs(ctx context.Context, h *Handle) ([]string, error) {
	var ids []string
	if err := h.DB(ctx).Unscoped().Model(new(T)).Pluck(t.key, &ids).Error; err != nil {
		return nil, classify("ids", t.name, err)
	}
	return ids, nil
}

// MaxInt returns the highest value of column among the rows matching where, soft-deleted
// rows included, or 0 when none match.
func (t Table[T]) MaxInt(ctx context.Context, h *Handle, column string, where Where) (int, error) {
	if err := t.checkColumns(h, "max", append(keys(where), column)); err != nil {
		return 0, err
	}

	var n int
	err := h.DB(ctx).Unscoped().Model(new(T)).
		Where(map[string]any(where)).
		Select(fmt.Sprintf("COALESCE(MAX(%s), 0)", column)).
		Scan(&n).Error
	if err != nil {
		return 0, classify("max", t.name, err)
	}
	return n, nil
}

func (t Table[T]) find(ctx context.Context, h *Handle, db *gorm.DB, where Where, orderBy string) ([]T, error) {
	if err := t.checkColumns(h, "rows", keys(where)); err != nil {
		return nil, err
	}

	if len(where) > 0 {
		db = db.Where(map[string]any(where))
	}
	if orderBy != "" {
		db = db.Order(orderBy)
	}

	var rows []T
	if err := db.Find(&rows).Error; err != nil {
		return nil, classify("rows", t.name, err)
	}
	return rows, nil
}

func (t Table[T]) checkColumns(h *Handle, op string, columns []string) error {
	for _, c := range columns {
		if !h.HasColumn(t.name, c) {
			return errs.NewStoreError(op, t.name, fmt.Errorf("%w: no column %q", ErrSchemaMismatch, c))
		}
	}
	return nil
}

func keys[M ~map[string]any](m M) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
