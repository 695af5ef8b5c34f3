// Package parcel implements the package lifecycle domain model.
//
// The aggregate root is Parcel, which owns an append-only history of Events
// and a Status driven by a single transition table. Every state change goes
// through Parcel.UpdateStatus, which enforces the table and the rule that a
// package may only be DELIVERED after it has been IN_TRANSIT.
package parcel
