// Package connection provides the HTTP client transgate-cli uses to
// talk to a TransGate server.
//
// The server wraps every JSON response in a standard envelope;
// ParseResponse unwraps it and surfaces error envelopes as Go errors.
package connection
