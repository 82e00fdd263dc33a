// Package order provides the Order aggregate and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root holding intake data, status and key-handoff state
//   - Status: the closed set of order statuses and the single transition table
//   - KeyStatus: the one-directional key-handoff sub-state (handed -> pending)
//   - Item: a priced line of an order, replaced as a whole batch on every edit
//   - ArchivedOrder: the immutable snapshot taken once when an order is paid
//
// Key business rules:
//   - Status changes go through Order.ApplyStatus, which consults the transition table
//     for the acting role; paid and both cancellations are terminal
//   - Requesters may only schedule, unschedule or cancel their own orders before work starts
//   - Key status only moves from handed to pending, and only after explicit confirmation
//   - Every accepted change records a lifecycle event, drained with PullEvents after the
//     change has been persisted
package order
