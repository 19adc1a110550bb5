// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// retry on startup, goose schema migrations, a readiness probe, and error
// classification helpers.
//
// The classification helpers matter to the domain: IsUniqueViolation is how
// the public-identifier generator and the per-kind email constraint tell a
// retryable collision apart from a real store failure. The store, not the
// application, is the arbiter of uniqueness.
package pg
