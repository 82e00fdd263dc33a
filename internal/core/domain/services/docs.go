// Package services provides domain services that hold business rules spanning more than
// one aggregate of the order engine.
//
// The package includes:
//   - PricingResolver: stamps a unit price onto an order line from a catalog item
//   - NotificationRouter: the fixed table deciding who is notified and emailed for an event
package services
