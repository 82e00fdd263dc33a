// Package catalog holds the read-mostly reference data an order line is priced from.
package catalog
