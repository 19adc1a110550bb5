// Package memstore provides an in-memory accounts.Storage for tests and
// local development. A single mutex serializes every operation, which makes
// each conditional mutation trivially atomic; the classification rules match
// the Postgres implementation exactly so service tests exercise the same
// error surface either way.
package memstore
