// Package postgres wires the record store and its repositories into the sessions used by
// the command handlers.
//
// A session is a scope, not a transaction: every write through it is committed on its own.
//
//	factory := postgres.NewSessionFactory(recordStore, clock)
//	session, err := factory.Open(ctx)
//	if err != nil {
//	    return err
//	}
//	o, err := session.OrderRepository().Get(ctx, "ORD001")
package postgres

import (
	"context"

	"ordertrack/internal/adapters/out/postgres/archiverepo"
	"ordertrack/internal/adapters/out/postgres/catalogrepo"
	"ordertrack/internal/adapters/out/postgres/notificationrepo"
	"ordertrack/internal/adapters/out/postgres/orderrepo"
	"ordertrack/internal/adapters/out/postgres/store"
	"ordertrack/internal/adapters/out/postgres/userrepo"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/ports"
)

// Models lists every table of the store.
func Models() []store.Model {
	return []store.Model{
		orderrepo.OrderDTO{},
		orderrepo.ItemDTO{},
		archiverepo.ArchivedOrderDTO{},
		notificationrepo.NotificationDTO{},
		catalogrepo.CatalogItemDTO{},
		userrepo.UserDTO{},
	}
}

// SessionFactory opens sessions over a RecordStore.
type SessionFactory struct {
	store *store.RecordStore
	clock kernel.Clock
}

func NewSessionFactory(recordStore *store.RecordStore, clock kernel.Clock) *SessionFactory {
	return &SessionFactory{store: recordStore, clock: clock}
}

// Open connects to the store, reloading its metadata when the cached handle is stale.
func (f *SessionFactory) Open(ctx context.Context) (*Session, error) {
	h, err := f.store.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{handle: h, clock: f.clock}, nil
}

// Session hands out repositories bound to one metadata handle.
type Session struct {
	handle *store.Handle
	clock  kernel.Clock
}

func (s *Session) OrderRepository() ports.OrderRepository {
	return orderrepo.NewRepository(s.handle)
}

func (s *Session) ItemRepository() ports.ItemRepository {
	return orderrepo.NewItemRepository(s.handle, s.clock)
}

func (s *Session) ArchiveRepository() ports.ArchiveRepository {
	return archiverepo.NewRepository(s.handle)
}

func (s *Session) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewRepository(s.handle)
}
