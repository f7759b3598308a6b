// Package walletsig builds wallet sign-documents and verifies the signatures
// wallets produce over them. Two signing schemes are supported: ADR-36
// (Cosmos-SDK chains, secp256k1 over an amino StdSignDoc envelope) and EVM
// personal_sign.
package walletsig

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// DefaultSignDocPrefix is the first line of the sign-document
const DefaultSignDocPrefix = "Sign in to ShieldNest"

// BuildSignDoc constructs the exact text a wallet is asked to sign. The
// document carries no timestamp so the server can re-derive the signed bytes
// from the stored nonce alone.
func BuildSignDoc(prefix, address, nonce string) string {
	return fmt.Sprintf("%s\nAddress: %s\nNonce: %s", prefix, address, nonce)
}

// adr36SignDoc is the amino StdSignDoc envelope wrapping an arbitrary signed
// message (sign/MsgSignData). Field order matches amino JSON: keys sorted,
// no whitespace.
type adr36SignDoc struct {
	AccountNumber string          `json:"account_number"`
	ChainID       string          `json:"chain_id"`
	Fee           adr36Fee        `json:"fee"`
	Memo          string          `json:"memo"`
	Msgs          []adr36SignMsg  `json:"msgs"`
	Sequence      string          `json:"sequence"`
}

type adr36Fee struct {
	Amount []struct{} `json:"amount"`
	Gas    string     `json:"gas"`
}

type adr36SignMsg struct {
	Type  string         `json:"type"`
	Value adr36SignValue `json:"value"`
}

type adr36SignValue struct {
	Data   string `json:"data"`
	Signer string `json:"signer"`
}

// SerializeADR36SignDoc produces the canonical bytes a wallet signs for an
// arbitrary message: the StdSignDoc with empty chain id, zero fee, zero
// sequence, and the sign-document base64-encoded as MsgSignData.
func SerializeADR36SignDoc(signer, signDoc string) ([]byte, error) {
	doc := adr36SignDoc{
		AccountNumber: "0",
		ChainID:       "",
		Fee:           adr36Fee{Amount: []struct{}{}, Gas: "0"},
		Memo:          "",
		Msgs: []adr36SignMsg{{
			Type: "sign/MsgSignData",
			Value: adr36SignValue{
				Data:   base64.StdEncoding.EncodeToString([]byte(signDoc)),
				Signer: signer,
			},
		}},
		Sequence: "0",
	}
	return json.Marshal(doc)
}
