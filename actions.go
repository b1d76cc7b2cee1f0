package hlsign

//go:generate easyjson -all

// Action structs with deterministic field ordering for consistent
// MessagePack serialization. The field order in these structs is part of
// the wire contract: the verifier recomputes the action hash from the same
// layout, so reordering a field changes the signed bytes.

// OrderWire is the wire format for a single order. Canonical field order is
// a, b, p, s, r, t and, only when a client order id is present, c. The
// cloid field is omitted entirely when unset; a null value would hash
// differently than an absent key.
type OrderWire struct {
	Asset      int           `json:"a"           msgpack:"a"`
	IsBuy      bool          `json:"b"           msgpack:"b"`
	LimitPx    string        `json:"p"           msgpack:"p"`
	Size       string        `json:"s"           msgpack:"s"`
	ReduceOnly bool          `json:"r"           msgpack:"r"`
	OrderType  orderWireType `json:"t"           msgpack:"t"`
	Cloid      *string       `json:"c,omitempty" msgpack:"c,omitempty"`
}

type orderWireType struct {
	Limit   *orderWireTypeLimit   `json:"limit,omitempty"   msgpack:"limit,omitempty"`
	Trigger *orderWireTypeTrigger `json:"trigger,omitempty" msgpack:"trigger,omitempty"`
}

type orderWireTypeLimit struct {
	Tif Tif `json:"tif" msgpack:"tif"`
}

type orderWireTypeTrigger struct {
	TriggerPx string `json:"triggerPx" msgpack:"triggerPx"`
	IsMarket  bool   `json:"isMarket"  msgpack:"isMarket"`
	Tpsl      Tpsl   `json:"tpsl"      msgpack:"tpsl"` // "tp" or "sl"
}

// OrderAction is the top-level wrapper for order placement.
type OrderAction struct {
	Type     string       `json:"type"              msgpack:"type"`
	Orders   []OrderWire  `json:"orders"            msgpack:"orders"`
	Grouping string       `json:"grouping"          msgpack:"grouping"`
	Builder  *BuilderInfo `json:"builder,omitempty" msgpack:"builder,omitempty"`
}

// CancelOrderWire cancels by exchange order id.
type CancelOrderWire struct {
	Asset   int   `json:"a" msgpack:"a"`
	OrderID int64 `json:"o" msgpack:"o"`
}

type CancelAction struct {
	Type    string            `json:"type"    msgpack:"type"`
	Cancels []CancelOrderWire `json:"cancels" msgpack:"cancels"`
}

// CancelByCloidWire cancels by client order id. NB: this wire uses the long
// `asset` key, not `a` like CancelOrderWire; the verifier expects exactly
// that spelling for the cloid variant.
type CancelByCloidWire struct {
	Asset    int    `json:"asset" msgpack:"asset"`
	ClientID string `json:"cloid" msgpack:"cloid"`
}

type CancelByCloidAction struct {
	Type    string              `json:"type"    msgpack:"type"`
	Cancels []CancelByCloidWire `json:"cancels" msgpack:"cancels"`
}

// ModifyAction replaces a single resting order. Oid is either an exchange
// order id (int64) or a cloid rendered to its canonical string. The type
// tag is cleared when the modify rides inside a batch.
type ModifyAction struct {
	Type  string    `json:"type,omitempty" msgpack:"type,omitempty"`
	Oid   any       `json:"oid"            msgpack:"oid"`
	Order OrderWire `json:"order"          msgpack:"order"`
}

type BatchModifyAction struct {
	Type     string         `json:"type"     msgpack:"type"`
	Modifies []ModifyAction `json:"modifies" msgpack:"modifies"`
}

// ScheduleCancelAction arms (or, with a nil time, disarms) the dead man's
// switch cancelling all open orders at the given millisecond timestamp.
type ScheduleCancelAction struct {
	Type string `json:"type"           msgpack:"type"`
	Time *int64 `json:"time,omitempty" msgpack:"time,omitempty"`
}
