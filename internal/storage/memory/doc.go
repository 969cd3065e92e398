// Package memory provides the in-memory session registry for TransGate.
//
// It implements the session repository interface using a concurrent-safe
// sharded map keyed by identifier. Expired sessions are removed lazily
// on activity checks and in bulk by the background sweeper.
//
// Thread Safety:
//
// All operations are thread-safe through the sharded map's per-shard
// locking. Conditional deletes re-check expiry under the shard lock so
// lazy removal never races a concurrent re-activation.
package memory
