package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityCoercion(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Quantity
	}{
		{"integer", `{"quantity":3}`, 3},
		{"fractional", `{"quantity":2.5}`, 2},
		{"numeric string", `{"quantity":"4"}`, 4},
		{"fractional string", `{"quantity":"1.9"}`, 1},
		{"garbage string", `{"quantity":"abc"}`, 0},
		{"null", `{"quantity":null}`, 0},
		{"boolean", `{"quantity":true}`, 0},
		{"negative", `{"quantity":-2}`, -2},
		{"absent", `{}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var item CreateOrderItem
			require.NoError(t, json.Unmarshal([]byte(tc.body), &item))
			assert.Equal(t, tc.want, item.Quantity)
		})
	}
}

func TestQuantityNeverFailsCartDecode(t *testing.T) {
	// A cart with an unusable quantity still binds; normalization happens
	// later in the service.
	var req CreateOrderRequest
	err := json.Unmarshal([]byte(`{"items":[{"productId":5,"quantity":"abc"}]}`), &req)
	require.NoError(t, err)
	require.Len(t, req.Items, 1)
	assert.Equal(t, int64(5), req.Items[0].ProductID)
	assert.Equal(t, Quantity(0), req.Items[0].Quantity)
}
