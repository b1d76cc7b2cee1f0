package hlsign

import (
	"context"
	"encoding/json"
)

// ScheduleCancel schedules cancellation of all open orders at the given
// millisecond timestamp; a nil time disarms a previously armed schedule.
func (e *Exchange) ScheduleCancel(
	ctx context.Context,
	scheduleTime *int64,
) (*ScheduleCancelResponse, error) {
	nonce := e.nextNonce()

	action := ScheduleCancelAction{
		Type: "scheduleCancel",
		Time: scheduleTime,
	}

	sig, err := SignL1Action(
		e.signer,
		action,
		e.vault,
		nonce,
		e.expiresAfter,
		e.isMainnet,
	)
	if err != nil {
		return nil, err
	}

	resp, err := e.postAction(ctx, action, sig, nonce)
	if err != nil {
		return nil, err
	}

	var result ScheduleCancelResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
