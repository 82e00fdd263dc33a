// Package commands contains the write operations of the order engine.
// Every command is built by a validating constructor and executed by its handler:
// open a store session, load, apply the domain change, persist, then dispatch events.
package commands

import (
	"context"

	"ordertrack/internal/core/ports"
)

// Session interfaces give handlers the repositories of one connection to the record store.
// The store has no transactions, so a session is only a scope for the TTL-checked metadata
// handle: each write through it is durable on its own.
type (
	OrderRepoProvider interface {
		OrderRepository() ports.OrderRepository
	}

	ItemRepoProvider interface {
		ItemRepository() ports.ItemRepository
	}

	ArchiveRepoProvider interface {
		ArchiveRepository() ports.ArchiveRepository
	}

	NotificationRepoProvider interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderSession is used by every order write.
	//
	// Example:
	//   session, err := factory.Open(ctx)
	//   if err != nil {
	//       return err
	//   }
	//   o, err := session.OrderRepository().Get(ctx, id)
	OrderSession interface {
		OrderRepoProvider
		ItemRepoProvider
		ArchiveRepoProvider
	}

	// OrderSessionFactory connects to the store, refreshing its metadata when stale.
	OrderSessionFactory interface {
		Open(ctx context.Context) (OrderSession, error)
	}

	NotificationSession interface {
		NotificationRepoProvider
	}

	NotificationSessionFactory interface {
		Open(ctx context.Context) (NotificationSession, error)
	}
)
