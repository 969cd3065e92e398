// Package cmap provides a concurrent-safe sharded map.
//
// Sharding reduces lock contention under concurrent request handling:
// each shard is guarded by its own RWMutex, and every exported
// operation on a single key executes as one atomic, non-interleaved
// step within its shard.
package cmap
