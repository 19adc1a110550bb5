// Package publicid generates short, human-shareable account identifiers of
// the form PREFIX_XXXXXX (for example NXI_8F2K1A) and runs the bounded
// claim-retry loop that makes generation safe under concurrent writers.
//
// The random part is drawn from an unambiguous alphabet (no 0/O, 1/I/L) so
// identifiers survive being read aloud or handwritten.
//
// Uniqueness is arbitrated by the caller's storage, never by an in-process
// check: GenerateUnique attempts to claim each candidate through the
// supplied claim function and treats ErrTaken as "collision, pick another".
// A check-then-insert pattern would let two concurrent callers both observe
// a candidate as free; claiming through the store's uniqueness constraint
// closes that race across any number of process instances.
//
//	id, err := publicid.GenerateUnique(ctx, "NXI", func(ctx context.Context, candidate string) error {
//	    err := store.Insert(ctx, newAccount(candidate))
//	    if errors.Is(err, storage.ErrDuplicatePublicID) {
//	        return publicid.ErrTaken
//	    }
//	    return err
//	})
//
// After MaxAttempts collisions GenerateUnique fails with ErrExhausted,
// which callers should treat as an operational alert: either the identifier
// space is too small or the store is misbehaving.
package publicid
