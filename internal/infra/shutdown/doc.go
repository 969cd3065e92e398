// Package shutdown coordinates graceful process termination.
//
// A Handler waits for SIGINT or SIGTERM, then unwinds registered
// cleanup hooks in reverse registration order under a shared
// deadline, so dependents are torn down before the things they
// depend on.
package shutdown
