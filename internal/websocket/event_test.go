package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":          1,
		"description": "Rent",
		"amount":      "1200.00",
	}

	before := time.Now().Add(-time.Second)
	evt := NewEvent(EventTypeCreated, EntityTypeTemplate, payload)
	after := time.Now().Add(time.Second)

	assert.Equal(t, "template.created", evt.Type)
	assert.Equal(t, EntityTypeTemplate, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, evt.Timestamp.After(before) && evt.Timestamp.Before(after))
	assert.Equal(t, time.UTC, evt.Timestamp.Location())
}

func TestEvent_JSON_Serialization(t *testing.T) {
	fixedTime := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"transactionId": float64(7),
		"year":          float64(2025),
		"month":         float64(1),
		"status":        "paid",
	}

	evt := Event{
		Type:      "status.updated",
		Entity:    EntityTypeStatus,
		Payload:   payload,
		Timestamp: fixedTime,
	}

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, evt.Type, decoded.Type)
	assert.Equal(t, evt.Entity, decoded.Entity)
	assert.Equal(t, fixedTime, decoded.Timestamp.UTC())

	decodedPayload, ok := decoded.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), decodedPayload["transactionId"])
	assert.Equal(t, "paid", decodedPayload["status"])
}

func TestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"id": float64(1)}

	tests := []struct {
		name     string
		evt      Event
		wantType string
		entity   EntityType
	}{
		{"TemplateCreated", TemplateCreated(payload), "template.created", EntityTypeTemplate},
		{"TemplateUpdated", TemplateUpdated(payload), "template.updated", EntityTypeTemplate},
		{"TemplateDeleted", TemplateDeleted(payload), "template.deleted", EntityTypeTemplate},
		{"StatusUpdated", StatusUpdated(2024, 6, payload), "status.updated", EntityTypeStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.evt.Type)
			assert.Equal(t, tt.entity, tt.evt.Entity)
			assert.Equal(t, payload, tt.evt.Payload)
		})
	}
}

func TestEvent_MonthScope(t *testing.T) {
	assert.Equal(t, "2024-06", StatusUpdated(2024, 6, nil).Month)
	assert.Empty(t, TemplateUpdated(nil).Month)

	data, err := TemplateCreated(nil).ToJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"month"`)
}
