// Package core provides the shared HTTP response surface: machine-readable
// error values and the JSON envelope every handler renders. Domain packages
// map their sentinel errors to HTTPError values; internal errors reach the
// client only as "internal_error" unless the process runs in development.
package core
