package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/dto"
)

func TestDecodePayload(t *testing.T) {
	object := `{"party_type":"Customer","party":"Acme","plan":{"name":"Gold","item_code":"GOLD","quantity":2}}`
	quoted, err := json.Marshal(object)
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
	}{
		{name: "plain object", body: object},
		{name: "data envelope", body: `{"data":` + object + `}`},
		{name: "json string", body: string(quoted)},
		{name: "data envelope with json string", body: `{"data":` + string(quoted) + `}`},
		{name: "surrounding whitespace", body: "\n  " + object + "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.CreateSubscriptionRequest
			require.NoError(t, dto.DecodePayload([]byte(tt.body), &req))

			assert.Equal(t, "Customer", req.PartyType)
			assert.Equal(t, "Acme", req.Party)
			require.NotNil(t, req.Plan)
			assert.Equal(t, "Gold", req.Plan.Name)
			assert.Equal(t, "GOLD", req.Plan.ItemCode)
			assert.Equal(t, 2, req.Plan.Qty())
		})
	}
}

func TestDecodePayload_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "blank string", body: `"   "`},
		{name: "not json", body: "party=Acme"},
		{name: "truncated object", body: `{"party":`},
		{name: "string holding garbage", body: `"{not json"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.CreateSubscriptionRequest
			assert.Error(t, dto.DecodePayload([]byte(tt.body), &req))
		})
	}
}

func TestDecodePayload_NullDataKeepsBody(t *testing.T) {
	var req dto.DeleteSubscriptionRequest
	require.NoError(t, dto.DecodePayload([]byte(`{"data":null,"subscription_id":"SUB-1"}`), &req))
	assert.Equal(t, "SUB-1", req.SubscriptionID)
}

func TestPlanInput(t *testing.T) {
	var nilPlan *dto.PlanInput
	assert.True(t, nilPlan.IsEmpty())
	assert.True(t, (&dto.PlanInput{}).IsEmpty())
	assert.False(t, (&dto.PlanInput{Name: "x"}).IsEmpty())

	assert.Equal(t, 1, (&dto.PlanInput{}).Qty())
	q := 5
	assert.Equal(t, 5, (&dto.PlanInput{Quantity: &q}).Qty())
}
