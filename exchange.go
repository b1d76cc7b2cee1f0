package hlsign

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"
)

// Exchange executes signed actions: it advances the nonce, runs the signing
// pipeline and posts the {action, nonce, signature, vaultAddress?} tuple.
// Instances hold no cross-call state beyond the nonce counter, so
// concurrent use needs no external coordination.
type Exchange struct {
	debug        bool
	isMainnet    bool
	client       *Client
	signer       Signer
	vault        string
	assets       *assetIndex
	expiresAfter *int64
	lastNonce    atomic.Int64

	clientOpts []ClientOpt
}

func NewExchange(
	signer Signer,
	baseURL string,
	meta *Meta,
	spotMeta *SpotMeta,
	vaultAddr string,
	opts ...ExchangeOpt,
) *Exchange {
	ex := &Exchange{
		signer: signer,
		vault:  vaultAddr,
		assets: newAssetIndex(meta, spotMeta),
	}

	for _, opt := range opts {
		opt.Apply(ex)
	}

	if ex.debug {
		ex.clientOpts = append(ex.clientOpts, ClientOptDebugMode())
	}

	ex.isMainnet = baseURL != TestnetAPIURL

	ex.client = NewClient(baseURL, ex.clientOpts...)

	return ex
}

// nextNonce returns either the current timestamp in milliseconds or the
// last value incremented by one, so nonces stay unique under concurrent
// calls. The server additionally requires nonces within (T - 2 days,
// T + 1 day) around block time; staying near wall clock satisfies that.
func (e *Exchange) nextNonce() int64 {
	for {
		last := e.lastNonce.Load()
		candidate := time.Now().UnixMilli()

		if candidate <= last {
			candidate = last + 1
		}

		// Try to publish our candidate; if someone beat us, retry.
		if e.lastNonce.CompareAndSwap(last, candidate) {
			return candidate
		}
	}
}

// SetExpiresAfter sets the expiration time attached to subsequent actions;
// nil disables expiration.
func (e *Exchange) SetExpiresAfter(expiresAfter *int64) {
	e.expiresAfter = expiresAfter
}

// SetLastNonce allows resuming from a persisted nonce, e.g. one stored
// before a restart. Most users do not need this.
func (e *Exchange) SetLastNonce(n int64) {
	e.lastNonce.Store(n)
}

// executeAction signs and posts an action, decoding the response into
// result.
func (e *Exchange) executeAction(ctx context.Context, action, result any) error {
	nonce := e.nextNonce()

	sig, err := SignL1Action(
		e.signer,
		action,
		e.vault,
		nonce,
		e.expiresAfter,
		e.isMainnet,
	)
	if err != nil {
		return err
	}

	resp, err := e.postAction(ctx, action, sig, nonce)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp, result); err != nil {
		return err
	}

	return nil
}

func (e *Exchange) postAction(
	ctx context.Context,
	action any,
	signature Signature,
	nonce int64,
) ([]byte, error) {
	payload := map[string]any{
		"action":    action,
		"nonce":     nonce,
		"signature": signature,
	}

	if e.vault != "" {
		payload["vaultAddress"] = e.vault
	}

	if e.expiresAfter != nil {
		payload["expiresAfter"] = *e.expiresAfter
	}

	return e.client.post(ctx, "/exchange", payload)
}

func (e *Exchange) Client() *Client {
	return e.client
}
