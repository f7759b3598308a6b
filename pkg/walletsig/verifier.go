package walletsig

import "errors"

var (
	// ErrInvalidSignature covers malformed input, wrong-key, and
	// bad-signature conditions alike; callers treat them identically.
	ErrInvalidSignature = errors.New("invalid wallet signature")
	// ErrAddressMismatch is returned when the claimed address is not
	// derivable from the supplied public key.
	ErrAddressMismatch = errors.New("address not derived from public key")
)

// Verifier validates a wallet's signature over a sign-document against the
// claimed address. Implementations must confirm the address is derivable from
// the public key before checking the cryptographic signature, and must return
// an error (never panic) for malformed input.
type Verifier interface {
	Verify(address string, pubKey, signature []byte, signDoc string) error
}
