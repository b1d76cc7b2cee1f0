package hlsign

import (
	"context"
	"encoding/json"
	"fmt"
)

type CreateOrderRequest struct {
	Coin          string
	IsBuy         bool
	Price         float64
	Size          float64
	ReduceOnly    bool
	OrderType     OrderType
	ClientOrderID *Cloid
}

func (s *CreateOrderRequest) String() string {
	data, _ := json.Marshal(s)
	return string(data)
}

type OrderStatusResting struct {
	Oid      int64   `json:"oid"`
	ClientID *string `json:"cloid"`
	Status   string  `json:"status"`
}

type OrderStatusFilled struct {
	TotalSz string `json:"totalSz"`
	AvgPx   string `json:"avgPx"`
	Oid     int    `json:"oid"`
}

type OrderStatus struct {
	Resting *OrderStatusResting `json:"resting,omitempty"`
	Filled  *OrderStatusFilled  `json:"filled,omitempty"`
	Error   *string             `json:"error,omitempty"`
}

func (s *OrderStatus) String() string {
	data, _ := json.Marshal(s)
	return string(data)
}

type OrderResponse struct {
	Statuses []OrderStatus
}

// newOrderTypeWire encodes the order type variant. Trigger prices cross
// the float boundary here, through the same wire rendering as price and
// size.
func newOrderTypeWire(t OrderType) (orderWireType, error) {
	if t.Limit != nil {
		return orderWireType{
			Limit: &orderWireTypeLimit{
				Tif: t.Limit.Tif,
			},
		}, nil
	}

	if t.Trigger != nil {
		triggerPxWire, err := floatToWire(t.Trigger.TriggerPx)
		if err != nil {
			return orderWireType{}, fmt.Errorf("failed to wire trigger price: %w", err)
		}

		return orderWireType{
			Trigger: &orderWireTypeTrigger{
				TriggerPx: triggerPxWire,
				IsMarket:  t.Trigger.IsMarket,
				Tpsl:      t.Trigger.Tpsl,
			},
		}, nil
	}

	return orderWireType{}, ErrInvalidOrderType
}

// newOrderWire renders one request into its canonical wire form. All
// magnitudes cross from float64 into wire strings here and never come
// back.
func newOrderWire(asset int, order CreateOrderRequest) (OrderWire, error) {
	priceWire, err := floatToWire(order.Price)
	if err != nil {
		return OrderWire{}, fmt.Errorf("failed to wire price: %w", err)
	}

	sizeWire, err := floatToWire(order.Size)
	if err != nil {
		return OrderWire{}, fmt.Errorf("failed to wire size: %w", err)
	}

	orderTypeWire, err := newOrderTypeWire(order.OrderType)
	if err != nil {
		return OrderWire{}, err
	}

	wire := OrderWire{
		Asset:      asset,
		IsBuy:      order.IsBuy,
		LimitPx:    priceWire,
		Size:       sizeWire,
		ReduceOnly: order.ReduceOnly,
		OrderType:  orderTypeWire,
	}

	if order.ClientOrderID != nil {
		cloid := order.ClientOrderID.String()
		wire.Cloid = &cloid
	}

	return wire, nil
}

func newCreateOrderAction(
	e *Exchange,
	orders []CreateOrderRequest,
	builder *BuilderInfo,
) (OrderAction, error) {
	wires := make([]OrderWire, len(orders))
	for i, order := range orders {
		asset, err := e.assets.resolve(order.Coin)
		if err != nil {
			return OrderAction{}, fmt.Errorf("order %d: %w", i, err)
		}

		wire, err := newOrderWire(asset, order)
		if err != nil {
			return OrderAction{}, fmt.Errorf("order %d: %w", i, err)
		}

		wires[i] = wire
	}

	return OrderAction{
		Type:     "order",
		Orders:   wires,
		Grouping: string(GroupingNA),
		Builder:  builder,
	}, nil
}

func (e *Exchange) Order(
	ctx context.Context,
	req CreateOrderRequest,
	builder *BuilderInfo,
) (result OrderStatus, err error) {
	resp, err := e.BulkOrders(ctx, []CreateOrderRequest{req}, builder)
	if err != nil {
		return
	}

	if !resp.Ok {
		err = fmt.Errorf("failed to create order: %s", resp.Err)
		return
	}

	data := resp.Data
	if len(data.Statuses) == 0 {
		err = fmt.Errorf("no status for order: %s", resp.Err)
		return
	}

	return data.Statuses[0], nil
}

func (e *Exchange) BulkOrders(
	ctx context.Context,
	orders []CreateOrderRequest,
	builder *BuilderInfo,
) (result *APIResponse[OrderResponse], err error) {
	action, err := newCreateOrderAction(e, orders, builder)
	if err != nil {
		return nil, err
	}

	if err = e.executeAction(ctx, action, &result); err != nil {
		return nil, err
	}

	if result != nil {
		// check if any of the statuses has an error set
		for _, s := range result.Data.Statuses {
			if s.Error != nil {
				return result, fmt.Errorf("%s", *s.Error)
			}
		}
	}

	return
}

type ModifyOrderRequest struct {
	Oid   any // can be int64 or Cloid
	Order CreateOrderRequest
}

// normalizeOid maps a cloid to its canonical string so only primitive
// values reach the encoder; exchange order ids pass through as-is.
func normalizeOid(oid any) (any, error) {
	switch v := oid.(type) {
	case Cloid:
		return v.String(), nil
	case *Cloid:
		if v == nil {
			return nil, fmt.Errorf("%w: nil cloid", ErrInvalidCloid)
		}
		return v.String(), nil
	default:
		return oid, nil
	}
}

func newModifyOrderAction(
	e *Exchange,
	req ModifyOrderRequest,
) (ModifyAction, error) {
	asset, err := e.assets.resolve(req.Order.Coin)
	if err != nil {
		return ModifyAction{}, err
	}

	wire, err := newOrderWire(asset, req.Order)
	if err != nil {
		return ModifyAction{}, err
	}

	oid, err := normalizeOid(req.Oid)
	if err != nil {
		return ModifyAction{}, err
	}

	return ModifyAction{
		Type:  "modify",
		Oid:   oid,
		Order: wire,
	}, nil
}

func newBatchModifyAction(
	e *Exchange,
	reqs []ModifyOrderRequest,
) (BatchModifyAction, error) {
	modifies := make([]ModifyAction, len(reqs))
	for i, req := range reqs {
		modify, err := newModifyOrderAction(e, req)
		if err != nil {
			return BatchModifyAction{}, fmt.Errorf("modify %d: %w", i, err)
		}
		modify.Type = ""
		modifies[i] = modify
	}

	return BatchModifyAction{
		Type:     "batchModify",
		Modifies: modifies,
	}, nil
}

// ModifyOrder modifies an existing order
func (e *Exchange) ModifyOrder(
	ctx context.Context,
	req ModifyOrderRequest,
) (result OrderStatus, err error) {
	resp := APIResponse[OrderResponse]{}
	action, err := newModifyOrderAction(e, req)
	if err != nil {
		return result, fmt.Errorf("failed to create modify action: %w", err)
	}

	if err = e.executeAction(ctx, action, &resp); err != nil {
		err = fmt.Errorf("failed to modify order: %w", err)
		return
	}

	if !resp.Ok {
		err = fmt.Errorf("failed to modify order: %s", resp.Err)
		return
	}

	data := resp.Data
	if len(data.Statuses) == 0 {
		err = fmt.Errorf("no status for modified order: %s", resp.Err)
		return
	}

	return data.Statuses[0], nil
}

// BulkModifyOrders modifies multiple orders
func (e *Exchange) BulkModifyOrders(
	ctx context.Context,
	reqs []ModifyOrderRequest,
) ([]OrderStatus, error) {
	resp := APIResponse[OrderResponse]{}
	action, err := newBatchModifyAction(e, reqs)
	if err != nil {
		return nil, fmt.Errorf("failed to create bulk modify action: %w", err)
	}

	if err = e.executeAction(ctx, action, &resp); err != nil {
		return nil, fmt.Errorf("failed to modify orders: %w", err)
	}

	if !resp.Ok {
		return nil, fmt.Errorf("failed to modify orders: %s", resp.Err)
	}

	data := resp.Data
	if len(data.Statuses) == 0 {
		return nil, fmt.Errorf("no status for modified order: %s", resp.Err)
	}

	return data.Statuses, nil
}
