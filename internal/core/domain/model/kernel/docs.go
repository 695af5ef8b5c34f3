// Package kernel contains shared value objects used across the domain model.
//
// UUID identifies entities and events; TrackingID is the human-readable,
// monotonically increasing identifier callers use to reference a package.
// Both are immutable: a zero value is invalid and must be built through the
// package's constructor functions.
package kernel
