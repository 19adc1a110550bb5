// Package secrethash provides the one-way transforms used by the credential
// lifecycle: slow salted password hashing (bcrypt), fast deterministic token
// digests (SHA-256), and cryptographically random secret generation.
//
// Two different transforms exist on purpose. Passwords are low-entropy and
// must be expensive to brute-force, so they get bcrypt with a tunable cost.
// Reset tokens already carry >=256 bits of entropy and are only ever looked
// up by digest, so they get a single SHA-256 pass; the digest is a lookup
// key, not a work factor.
//
// # Usage
//
//	h := secrethash.New(secrethash.WithBcryptCost(12))
//
//	hash, err := h.HashPassword("s3cret-pass")
//	if err != nil {
//	    return err
//	}
//	ok := h.VerifyPassword("s3cret-pass", hash) // true
//
//	raw, err := secrethash.NewResetToken()
//	digest := secrethash.DigestToken(raw) // store only the digest
//
// VerifyPassword never panics and never returns an error: a malformed or
// truncated hash simply verifies as false.
package secrethash
