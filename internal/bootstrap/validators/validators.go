// Package validators holds the $jsonSchema documents attached to seeded collections.
//
// The schemas are advisory: collections are created with ValidationAction "warn" so
// the server logs non-conforming writes instead of rejecting them.
package validators

const (
	ValidationLevel  = "moderate"
	ValidationAction = "warn"
)
