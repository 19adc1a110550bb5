// Package accounts implements the account verification and credential
// lifecycle: signup with collision-free public identifiers, one-time email
// verification codes, password login, the password-reset handshake, session
// issuance, and the auth guard that protects per-kind routes.
//
// Two disjoint account kinds exist, institute and student. They are
// structurally identical, so a single Account entity tagged with Kind backs
// both; every lookup and uniqueness rule is scoped to the kind.
//
// The package holds no long-lived state of its own. The Storage interface
// is the only shared mutable resource, and all single-use guarantees
// (verification codes, reset tokens) are delegated to its atomic
// conditional operations rather than enforced with read-then-write.
package accounts
