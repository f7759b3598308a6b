package walletsig

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const evmSignatureLen = 65

// EVMVerifier verifies personal_sign signatures from EVM wallets. The public
// key is recovered from the signature itself, so the pubKey argument is
// optional; when present it must match the recovered key.
type EVMVerifier struct{}

// NewEVMVerifier creates an EVM personal_sign verifier
func NewEVMVerifier() *EVMVerifier {
	return &EVMVerifier{}
}

// Verify recovers the signer from the signature over the EIP-191 personal
// message hash of signDoc and compares it to the claimed address.
func (v *EVMVerifier) Verify(address string, pubKey, signature []byte, signDoc string) error {
	if len(signature) != evmSignatureLen {
		return fmt.Errorf("signature must be %d bytes: %w", evmSignatureLen, ErrInvalidSignature)
	}
	if !common.IsHexAddress(address) {
		return fmt.Errorf("malformed address: %w", ErrInvalidSignature)
	}

	// Wallets emit V as 27/28; go-ethereum expects 0/1
	sig := make([]byte, evmSignatureLen)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	digest := accounts.TextHash([]byte(signDoc))
	recovered, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return fmt.Errorf("failed to recover public key: %w", ErrInvalidSignature)
	}

	if len(pubKey) > 0 && !bytes.Equal(pubKey, crypto.CompressPubkey(recovered)) {
		return ErrAddressMismatch
	}

	if crypto.PubkeyToAddress(*recovered) != common.HexToAddress(address) {
		return ErrAddressMismatch
	}
	return nil
}
