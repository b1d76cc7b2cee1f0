package hlsign

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/vmihailenco/msgpack/v5"
)

// Signature is a normalized ECDSA signature over a phantom agent. V is
// always 27 or 28.
type Signature struct {
	R string `json:"r"`
	S string `json:"s"`
	V int    `json:"v"`
}

// addressToBytes decodes a 20-byte address from hex text with an optional
// 0x prefix.
func addressToBytes(address string) ([]byte, error) {
	address = strings.TrimPrefix(address, "0x")
	if len(address) != 40 {
		return nil, fmt.Errorf("%w: want 40 hex characters, got %d", ErrMalformedAddress, len(address))
	}
	b, err := hex.DecodeString(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAddress, address)
	}
	return b, nil
}

// actionHash computes the 32-byte content hash the verifier recomputes on
// its side: msgpack(action) || nonce as 8 bytes big endian || vault address
// framing (0x00, or 0x01 plus the 20 raw bytes) || optional expiry framing.
// Every byte is positionally significant; nothing here may be reordered or
// conditionally padded.
func actionHash(action any, vaultAddress string, nonce int64, expiresAfter *int64) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	// Integers must take the smallest msgpack representation; the verifier
	// packs them that way and the hash covers raw bytes.
	enc.UseCompactInts(true)
	if err := enc.Encode(action); err != nil {
		return nil, fmt.Errorf("failed to marshal action: %w", err)
	}
	data := buf.Bytes()

	if nonce < 0 {
		return nil, fmt.Errorf("nonce cannot be negative: %d", nonce)
	}
	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, uint64(nonce))
	data = append(data, nonceBytes...)

	if vaultAddress == "" {
		data = append(data, 0x00)
	} else {
		addr, err := addressToBytes(vaultAddress)
		if err != nil {
			return nil, err
		}
		data = append(data, 0x01)
		data = append(data, addr...)
	}

	if expiresAfter != nil {
		if *expiresAfter < 0 {
			return nil, fmt.Errorf("expiresAfter cannot be negative: %d", *expiresAfter)
		}
		data = append(data, 0x00)
		expiresBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(expiresBytes, uint64(*expiresAfter))
		data = append(data, expiresBytes...)
	}

	return crypto.Keccak256(data), nil
}

// constructPhantomAgent wraps an action hash in the two-field message that
// actually gets signed. The source tag binds the signature to one network:
// "a" for mainnet, "b" for testnet.
func constructPhantomAgent(hash []byte, isMainnet bool) map[string]any {
	source := "b"
	if isMainnet {
		source = "a"
	}
	return map[string]any{
		"source":       source,
		"connectionId": hash,
	}
}

// l1Payload builds the EIP-712 envelope for a phantom agent. The domain is
// a fixed protocol constant, not configurable per call.
func l1Payload(phantomAgent map[string]any) apitypes.TypedData {
	chainId := math.HexOrDecimal256(*big.NewInt(1337))
	return apitypes.TypedData{
		Domain: apitypes.TypedDataDomain{
			ChainId:           &chainId,
			Name:              "Exchange",
			Version:           "1",
			VerifyingContract: "0x0000000000000000000000000000000000000000",
		},
		Types: apitypes.Types{
			"Agent": []apitypes.Type{
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
		},
		PrimaryType: "Agent",
		Message:     phantomAgent,
	}
}

// signInner hashes the typed data and signs it through the provided
// capability, normalizing the recovery id to the 27/28 form regardless of
// whether the backend returned 0/1 (raw secp256k1, hardware signers) or
// 27/28 already.
func signInner(signer Signer, typedData apitypes.TypedData) (Signature, error) {
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return Signature{}, fmt.Errorf("failed to hash domain: %w", err)
	}

	typedDataHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to hash typed data: %w", err)
	}

	rawData := []byte{0x19, 0x01}
	rawData = append(rawData, domainSeparator...)
	rawData = append(rawData, typedDataHash...)
	msgHash := crypto.Keccak256Hash(rawData)

	signature, err := signer.Sign(msgHash.Bytes())
	if err != nil {
		return Signature{}, fmt.Errorf("failed to sign message: %w", err)
	}

	if len(signature) != 65 {
		return Signature{}, fmt.Errorf("%w: want 65 bytes, got %d", ErrInvalidSignature, len(signature))
	}

	var v int
	switch signature[64] {
	case 0, 1:
		v = int(signature[64]) + 27
	case 27, 28:
		v = int(signature[64])
	default:
		return Signature{}, fmt.Errorf("%w: recovery id %d", ErrInvalidSignature, signature[64])
	}

	r := new(big.Int).SetBytes(signature[:32])
	s := new(big.Int).SetBytes(signature[32:64])

	return Signature{
		R: hexutil.EncodeBig(r),
		S: hexutil.EncodeBig(s),
		V: v,
	}, nil
}

// SignL1Action runs the whole pipeline for one action: canonical hash,
// phantom agent, EIP-712 signature. Signing the same inputs with the same
// key always yields byte-identical output.
func SignL1Action(
	signer Signer,
	action any,
	vaultAddress string,
	nonce int64,
	expiresAfter *int64,
	isMainnet bool,
) (Signature, error) {
	hash, err := actionHash(action, vaultAddress, nonce, expiresAfter)
	if err != nil {
		return Signature{}, err
	}

	phantomAgent := constructPhantomAgent(hash, isMainnet)

	typedData := l1Payload(phantomAgent)

	return signInner(signer, typedData)
}
