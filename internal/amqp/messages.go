package amqp

import (
	"encoding/json"
	"time"
)

// BillingEventMessage is the lightweight change notification the billing
// services publish whenever an invoice or a payment is created, updated or
// deleted. The dashboard only needs to know that something changed, not what;
// it refetches the affected view models from the gateway.
type BillingEventMessage struct {
	Resource  string    `json:"resource"` // "invoice" or "payment"
	Action    string    `json:"action"`   // "created", "updated", "deleted"
	EntityID  string    `json:"entityId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBillingEventMessage(resource, action, entityID string) *BillingEventMessage {
	return &BillingEventMessage{
		Resource:  resource,
		Action:    action,
		EntityID:  entityID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BillingEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func BillingEventMessageFromJSON(data []byte) (*BillingEventMessage, error) {
	var msg BillingEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
