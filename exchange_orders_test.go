package hlsign

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExchange() *Exchange {
	return &Exchange{assets: newAssetIndex(testMeta(), testSpotMeta())}
}

func TestNewOrderTypeWire(t *testing.T) {
	limit, err := newOrderTypeWire(OrderType{
		Limit: &LimitOrderType{Tif: TifAlo},
	})
	require.NoError(t, err)
	require.NotNil(t, limit.Limit)
	assert.Nil(t, limit.Trigger)
	assert.Equal(t, TifAlo, limit.Limit.Tif)

	trigger, err := newOrderTypeWire(OrderType{
		Trigger: &TriggerOrderType{TriggerPx: 1912.5, IsMarket: true, Tpsl: StopLoss},
	})
	require.NoError(t, err)
	require.NotNil(t, trigger.Trigger)
	assert.Equal(t, "1912.5", trigger.Trigger.TriggerPx)
	assert.True(t, trigger.Trigger.IsMarket)
	assert.Equal(t, StopLoss, trigger.Trigger.Tpsl)

	_, err = newOrderTypeWire(OrderType{})
	assert.ErrorIs(t, err, ErrInvalidOrderType)
}

func TestNewOrderTypeWireTriggerPrecision(t *testing.T) {
	_, err := newOrderTypeWire(OrderType{
		Trigger: &TriggerOrderType{TriggerPx: 0.123456785, Tpsl: TakeProfit},
	})
	assert.ErrorIs(t, err, ErrPrecisionLoss)
}

func TestNewCreateOrderAction(t *testing.T) {
	e := testExchange()

	action, err := newCreateOrderAction(e, []CreateOrderRequest{
		{
			Coin:  "ETH",
			IsBuy: true,
			Price: 1670.1,
			Size:  0.0147,
			OrderType: OrderType{
				Limit: &LimitOrderType{Tif: TifIoc},
			},
		},
		{
			Coin:       "BTC",
			Price:      43000,
			Size:       0.5,
			ReduceOnly: true,
			OrderType: OrderType{
				Limit: &LimitOrderType{Tif: TifGtc},
			},
		},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "order", action.Type)
	assert.Equal(t, "na", action.Grouping)
	assert.Nil(t, action.Builder)
	require.Len(t, action.Orders, 2)

	assert.Equal(t, 1, action.Orders[0].Asset)
	assert.Equal(t, "1670.1", action.Orders[0].LimitPx)
	assert.Equal(t, "0.0147", action.Orders[0].Size)
	assert.Nil(t, action.Orders[0].Cloid)

	assert.Equal(t, 0, action.Orders[1].Asset)
	assert.Equal(t, "43000", action.Orders[1].LimitPx)
	assert.True(t, action.Orders[1].ReduceOnly)
}

func TestNewCreateOrderActionUnknownCoin(t *testing.T) {
	e := testExchange()

	_, err := newCreateOrderAction(e, []CreateOrderRequest{
		{
			Coin:      "DOGE",
			Price:     1,
			Size:      1,
			OrderType: OrderType{Limit: &LimitOrderType{Tif: TifGtc}},
		},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown coin")
}

func TestNormalizeOid(t *testing.T) {
	cloid, err := CloidFromInt(7)
	require.NoError(t, err)

	byValue, err := normalizeOid(cloid)
	require.NoError(t, err)
	assert.Equal(t, "0x00000000000000000000000000000007", byValue)

	byPointer, err := normalizeOid(&cloid)
	require.NoError(t, err)
	assert.Equal(t, "0x00000000000000000000000000000007", byPointer)

	passthrough, err := normalizeOid(int64(12345))
	require.NoError(t, err)
	assert.Equal(t, int64(12345), passthrough)

	// A typed nil pointer must fail instead of panicking in the encoder.
	_, err = normalizeOid((*Cloid)(nil))
	assert.ErrorIs(t, err, ErrInvalidCloid)
}

func TestNewModifyOrderActionNilCloid(t *testing.T) {
	e := testExchange()

	_, err := newModifyOrderAction(e, ModifyOrderRequest{
		Oid: (*Cloid)(nil),
		Order: CreateOrderRequest{
			Coin:      "ETH",
			Price:     1700,
			Size:      1,
			OrderType: OrderType{Limit: &LimitOrderType{Tif: TifGtc}},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidCloid)
}

func TestNewBatchModifyActionClearsInnerType(t *testing.T) {
	e := testExchange()

	order := CreateOrderRequest{
		Coin:      "ETH",
		Price:     1700,
		Size:      1,
		OrderType: OrderType{Limit: &LimitOrderType{Tif: TifGtc}},
	}

	single, err := newModifyOrderAction(e, ModifyOrderRequest{Oid: int64(1), Order: order})
	require.NoError(t, err)
	assert.Equal(t, "modify", single.Type)

	batch, err := newBatchModifyAction(e, []ModifyOrderRequest{
		{Oid: int64(1), Order: order},
		{Oid: int64(2), Order: order},
	})
	require.NoError(t, err)
	assert.Equal(t, "batchModify", batch.Type)
	require.Len(t, batch.Modifies, 2)
	for _, modify := range batch.Modifies {
		// The standalone type tag must not leak into the batch items.
		assert.Empty(t, modify.Type)
	}
}

func TestBulkCancelRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"response": {
				"type": "cancel",
				"data": {"statuses": ["success", "success"]}
			}
		}`))
	}))
	defer server.Close()

	signer := newTestSigner(t)
	exchange := NewExchange(signer, server.URL, testMeta(), nil, "")

	res, err := exchange.BulkCancel(context.Background(), []CancelOrderRequest{
		{Coin: "ETH", OrderID: 1},
		{Coin: "BTC", OrderID: 2},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Ok)
	assert.Len(t, res.Data.Statuses, 2)
}

func TestBulkCancelSurfacesPerItemError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"response": {
				"type": "cancel",
				"data": {"statuses": ["success", {"error": "Order was never placed"}]}
			}
		}`))
	}))
	defer server.Close()

	signer := newTestSigner(t)
	exchange := NewExchange(signer, server.URL, testMeta(), nil, "")

	_, err := exchange.BulkCancel(context.Background(), []CancelOrderRequest{
		{Coin: "ETH", OrderID: 1},
		{Coin: "ETH", OrderID: 2},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Order was never placed")
}

func TestCancelByCloidUnknownCoin(t *testing.T) {
	e := testExchange()
	e.client = NewClient(LocalAPIURL)

	cloid, err := CloidFromInt(1)
	require.NoError(t, err)

	// Resolution fails before anything is signed or posted.
	_, err = e.BulkCancelByCloids(context.Background(), []CancelOrderRequestByCloid{
		{Coin: "DOGE", Cloid: cloid},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown coin")
}
