// Package store is the generic access layer over the remote record store.
//
// Every call is an independent remote operation: there are no transactions and nothing is
// retried here. Failures come back as *errs.StoreError, flagged transient when a retry by
// the caller could succeed.
//
// The only cached state is the metadata Handle. Connect returns it while it is younger than
// the configured TTL and reloads the column sets of every table otherwise.
package store

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"ordertrack/internal/core/domain/model/kernel"
)

// Model is a row type bound to one table.
type Model interface {
	TableName() string
}

// Handle is a metadata snapshot of the store: the column set of every known table at the
// time it was loaded. Handles are immutable.
type Handle struct {
	db       *gorm.DB
	columns  map[string]map[string]struct{}
	loadedAt time.Time
}

// DB returns a session bound to ctx.
func (h *Handle) DB(ctx context.Context) *gorm.DB {
	return h.db.WithContext(ctx)
}

func (h *Handle) LoadedAt() time.Time { return h.loadedAt }

// HasColumn reports whether column existed in table when the handle was loaded.
func (h *Handle) HasColumn(table, column string) bool {
	cols, ok := h.columns[table]
	if !ok {
		return false
	}
	_, ok = cols[column]
	return ok
}

// Columns returns the sorted column names of table.
func (h *Handle) Columns(table string) []string {
	names := make([]string, 0, len(h.columns[table]))
	for name := range h.columns[table] {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RecordStore hands out metadata handles over one database connection pool.
//
// Concurrent callers that find a stale handle may all reload it; the last load wins and a
// reader may keep using a handle up to one TTL old.
type RecordStore struct {
	db     *gorm.DB
	models []Model
	ttl    time.Duration
	clock  kernel.Clock
	logger *slog.Logger

	handle atomic.Pointer[Handle]
}

// NewRecordStore creates a store over db for the given models. A zero ttl reloads the
// metadata on every Connect.
func NewRecordStore(db *gorm.DB, ttl time.Duration, clock kernel.Clock, logger *slog.Logger, models ...Model) *RecordStore {
	return &RecordStore{
		db:     db,
		models: models,
		ttl:    ttl,
		clock:  clock,
		logger: logger.With("component", "record_store"),
	}
}

// Connect returns the cached handle, reloading it first when it is older than the TTL.
func (s *RecordStore) Connect(ctx context.Context) (*Handle, error) {
	if h := s.handle.Load(); h != nil && s.clock.Now().Sub(h.loadedAt) < s.ttl {
		return h, nil
	}

	h, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.handle.Store(h)
	return h, nil
}

// Invalidate drops the cached handle so that the next Connect reloads it.
func (s *RecordStore) Invalidate() {
	s.handle.Store(nil)
}

// AutoMigrate creates or extends every table of the store.
func (s *RecordStore) AutoMigrate(ctx context.Context) error {
	dst := make([]any, 0, len(s.models))
	for _, m := range s.models {
		dst = append(dst, m)
	}
	if err := s.db.WithContext(ctx).AutoMigrate(dst...); err != nil {
		return classify("migrate", "*", err)
	}
	s.Invalidate()
	return nil
}

func (s *RecordStore) load(ctx context.Context) (*Handle, error) {
	migrator := s.db.WithContext(ctx).Migrator()

	columns := make(map[string]map[string]struct{}, len(s.models))
	for _, m := range s.models {
		types, err := migrator.ColumnTypes(m)
		if err != nil {
			return nil, classify("connect", m.TableName(), err)
		}

		set := make(map[string]struct{}, len(types))
		for _, t := range types {
			set[t.Name()] = struct{}{}
		}
		columns[m.TableName()] = set
	}

	h := &Handle{db: s.db, columns: columns, loadedAt: s.clock.Now()}
	s.logger.DebugContext(ctx, "store metadata loaded", "tables", len(columns))
	return h, nil
}
