// Package kernel provides the value objects shared by the order engine's domain model.
//
// The package includes:
//   - Money: a non-negative decimal amount used for catalog and stamped prices
//   - RoomArea: a validated floor area in square meters
//   - UUID: identifiers for notifications and archive snapshots
//   - NextSequentialID / FallbackID: the human-readable identifier sequence (ORD001, ORD002, ...)
//   - Clock: an injectable time source
//
// Values are immutable and safe for concurrent use.
package kernel
