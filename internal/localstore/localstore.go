// Package localstore provides the durable key-value slots that back the
// credential and tenant stores. Every implementation is synchronous and safe
// for concurrent use; values survive process restarts except for the
// in-memory variant used in tests and short-lived tooling.
package localstore

// KV is a flat string-keyed slot store. Get reports whether the key held a
// value; Set and Delete are idempotent.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
