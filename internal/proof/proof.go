// Package proof assembles the placeholder zk-email proof records submitted
// alongside claimed messages. The records mimic the shape a Groth16
// circuit would emit; no real proving happens here.
package proof

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// placeholderPoint stands in for unproven curve coordinates.
const placeholderPoint = "0x0"

// placeholderDKIMHash stands in for the DKIM public key hash until real
// header extraction exists.
var placeholderDKIMHash = "0x" + strings.Repeat("0", 64)

// Record is the proof structure the Farewell contract expects. JSON key
// names match the contract ABI exactly.
type Record struct {
	PA            [2]string    `json:"pA"`
	PB            [2][2]string `json:"pB"`
	PC            [2]string    `json:"pC"`
	PublicSignals [3]string    `json:"publicSignals"`
}

// Build assembles a proof record for one delivered message.
//
// The public signals are, in order: the hash of the normalized recipient
// address, the DKIM public key hash placeholder, and the content hash
// passed through verbatim (the caller normalizes it beforehand).
//
// rawMessage is accepted but not yet used: a real prover would parse the
// DKIM headers out of it. The parameter keeps the contract stable for
// when that integration lands.
func Build(rawMessage []byte, recipientAddr, contentHash string) Record {
	_ = rawMessage

	return Record{
		PA: [2]string{placeholderPoint, placeholderPoint},
		PB: [2][2]string{
			{placeholderPoint, placeholderPoint},
			{placeholderPoint, placeholderPoint},
		},
		PC: [2]string{placeholderPoint, placeholderPoint},
		PublicSignals: [3]string{
			RecipientHash(recipientAddr),
			placeholderDKIMHash,
			contentHash,
		},
	}
}

// RecipientHash returns the 0x-prefixed SHA3-256 digest of the normalized
// (lowercased, whitespace-trimmed) recipient address. SHA3-256 stands in
// for the Poseidon hash the production circuit uses.
func RecipientHash(recipientAddr string) string {
	normalized := strings.ToLower(strings.TrimSpace(recipientAddr))
	digest := sha3.Sum256([]byte(normalized))
	return "0x" + hex.EncodeToString(digest[:])
}
