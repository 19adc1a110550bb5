// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, and a combined liveness/readiness handler. Run blocks until the
// context is cancelled, an interrupt/TERM arrives, or the listener fails.
package httpserver
