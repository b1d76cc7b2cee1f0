package hlsign

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer is the signing capability consumed by the pipeline: given a
// 32-byte digest it returns a 65-byte [R || S || V] secp256k1 signature.
// V may be a raw recovery id (0/1) or the ethereum form (27/28); the
// pipeline normalizes either. Implementations own their own concurrency
// discipline, e.g. serializing access to a hardware signer.
type Signer interface {
	Sign(digest []byte) ([]byte, error)
}

// LocalSigner signs with an in-process private key via go-ethereum.
type LocalSigner struct {
	key *ecdsa.PrivateKey
}

func NewLocalSigner(key *ecdsa.PrivateKey) *LocalSigner {
	return &LocalSigner{key: key}
}

func (s *LocalSigner) Sign(digest []byte) ([]byte, error) {
	return crypto.Sign(digest, s.key)
}

// Address returns the account address the signatures recover to.
func (s *LocalSigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}
