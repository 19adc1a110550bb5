// Package pgstore implements accounts.Storage on PostgreSQL via pgx.
//
// Uniqueness races resolve through the database constraints, never through
// pre-checks, and both secret redemptions (verification code, reset token)
// are single conditional UPDATE statements so concurrent redemptions of the
// same secret cannot both succeed.
package pgstore
