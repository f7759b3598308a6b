package walletsig

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ripemd160"
)

const (
	compressedPubKeyLen = 33
	rawSignatureLen     = 64
)

// ADR36Verifier verifies ADR-36 "arbitrary message" signatures for a
// Cosmos-SDK chain. The address must be the bech32 encoding (with the
// configured prefix) of ripemd160(sha256(pubkey)).
type ADR36Verifier struct {
	addressPrefix string
}

// NewADR36Verifier creates a verifier for the given bech32 address prefix
// (e.g. "core" for Coreum).
func NewADR36Verifier(addressPrefix string) *ADR36Verifier {
	return &ADR36Verifier{addressPrefix: addressPrefix}
}

// Verify checks that address is derivable from pubKey and that signature is a
// valid secp256k1 signature over the ADR-36 envelope of signDoc.
func (v *ADR36Verifier) Verify(address string, pubKey, signature []byte, signDoc string) error {
	if len(pubKey) != compressedPubKeyLen {
		return fmt.Errorf("public key must be %d bytes: %w", compressedPubKeyLen, ErrInvalidSignature)
	}
	if len(signature) != rawSignatureLen {
		return fmt.Errorf("signature must be %d bytes: %w", rawSignatureLen, ErrInvalidSignature)
	}

	pk, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return fmt.Errorf("failed to parse public key: %w", ErrInvalidSignature)
	}

	derived, err := v.deriveAddress(pk)
	if err != nil {
		return err
	}
	if derived != strings.ToLower(address) {
		return ErrAddressMismatch
	}

	payload, err := SerializeADR36SignDoc(derived, signDoc)
	if err != nil {
		return fmt.Errorf("failed to serialize sign doc: %w", err)
	}
	digest := sha256.Sum256(payload)

	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow {
		return ErrInvalidSignature
	}
	if overflow := s.SetByteSlice(signature[32:]); overflow {
		return ErrInvalidSignature
	}

	if !btcecdsa.NewSignature(&r, &s).Verify(digest[:], pk) {
		return ErrInvalidSignature
	}
	return nil
}

// deriveAddress computes the chain account address for a compressed public key
func (v *ADR36Verifier) deriveAddress(pk *btcec.PublicKey) (string, error) {
	sha := sha256.Sum256(pk.SerializeCompressed())
	hasher := ripemd160.New()
	hasher.Write(sha[:])
	raw := hasher.Sum(nil)

	converted, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert address bits: %w", err)
	}
	encoded, err := bech32.Encode(v.addressPrefix, converted)
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}
	return encoded, nil
}
