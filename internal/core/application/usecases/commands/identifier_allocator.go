package commands

import (
	"context"
	"log/slog"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/ports"
)

// OrderIDPrefix is the prefix of order identifiers (ORD001, ORD002, ...).
const OrderIDPrefix = "ORD"

// IdentifierAllocator derives the next short identifier of a record type by scanning the
// existing ones. Two concurrent callers can get the same id; the second insert then fails
// in the store.
type IdentifierAllocator struct {
	prefix string
	clock  kernel.Clock
	logger *slog.Logger
}

func NewIdentifierAllocator(prefix string, clock kernel.Clock, logger *slog.Logger) IdentifierAllocator {
	return IdentifierAllocator{
		prefix: prefix,
		clock:  clock,
		logger: logger.With("component", "IdentifierAllocator", "prefix", prefix),
	}
}

// NextID returns max+1 of the ids listed by source. When the scan fails it falls back to a
// time-derived id so that creation keeps working while the store is degraded.
func (a IdentifierAllocator) NextID(ctx context.Context, source ports.IDLister) string {
	ids, err := source.ListIDs(ctx)
	if err != nil {
		id := kernel.FallbackID(a.prefix, a.clock.Now())
		a.logger.WarnContext(ctx, "id scan failed, using time-derived id", "id", id, "error", err)
		return id
	}
	return kernel.NextSequentialID(a.prefix, ids)
}
