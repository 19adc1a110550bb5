// Package sessiontoken issues and validates the stateless session
// credential: a compact HS256 JWT embedding the account's internal ID as
// subject and its principal kind as a custom claim.
//
// The signing key is process-wide configuration loaded once at startup;
// New fails on an empty key so a misconfigured service refuses to boot
// instead of issuing unverifiable tokens.
//
//	svc, err := sessiontoken.New("32-byte-or-longer-signing-secret",
//	    sessiontoken.WithTTL(7*24*time.Hour),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tok, err := svc.Issue(account.ID.String(), "institute")
//	principal, err := svc.Validate(tok)
//
// Validate verifies the signature before trusting any claim, restricts the
// accepted algorithm to HS256 to prevent algorithm-confusion attacks, and
// distinguishes ErrTokenExpired from ErrTokenInvalid so callers can report
// expiry separately.
//
// Tokens are stateless: there is no server-side revocation list. Logout is
// a client-side discard of the token.
package sessiontoken
