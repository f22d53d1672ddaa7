package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() PaynetEvent {
	return PaynetEvent{
		EventDate:  "2024-05-17 13:45:09",
		EventID:    "12345",
		EventType:  "Paid",
		Amount:     "50000",
		Customer:   "Ion Popescu",
		ExternalID: "INV-0001",
		PaymentID:  "987654",
		Merchant:   "LILIA SRL",
		StatusDate: "2024-05-17 13:45:10",
	}
}

func TestComputePaynetHash(t *testing.T) {
	hash := ComputePaynetHash(sampleEvent(), "notify-secret-key")
	assert.Equal(t, "0N0/YcR26sKFSYvF7cH4Qg==", hash)
}

func TestComputePaynetHashIsFieldSensitive(t *testing.T) {
	base := ComputePaynetHash(sampleEvent(), "notify-secret-key")

	tampered := sampleEvent()
	tampered.Amount = "50001"
	assert.NotEqual(t, base, ComputePaynetHash(tampered, "notify-secret-key"))

	assert.NotEqual(t, base, ComputePaynetHash(sampleEvent(), "other-secret"))
}

func TestPreparedStringOrder(t *testing.T) {
	prepared := sampleEvent().PreparedString()
	assert.Equal(t, "2024-05-17 13:45:0912345Paid50000Ion PopescuINV-0001987654LILIA SRL2024-05-17 13:45:10", prepared)
}

func TestParsePaynetEvent(t *testing.T) {
	body := []byte(`{
		"EventDate": "2024-05-17 13:45:09",
		"EventId": 12345,
		"EventType": "Paid",
		"Payment": {
			"Amount": 50000,
			"Customer": "Ion Popescu",
			"ExternalID": "INV-0001",
			"ID": 987654,
			"Merchant": "LILIA SRL",
			"StatusDate": "2024-05-17 13:45:10"
		}
	}`)

	event, err := ParsePaynetEvent(body)
	require.NoError(t, err)
	assert.Equal(t, sampleEvent(), event)
}

// The gateway is inconsistent about key casing between environments.
func TestParsePaynetEventKeyVariants(t *testing.T) {
	body := []byte(`{
		"EventDate": "2024-05-17 13:45:09",
		"Eventid": "12345",
		"eventType": "Paid",
		"payment": {
			"Amount": "50000",
			"Customer": "Ion Popescu",
			"ExternalId": "INV-0001",
			"Id": "987654",
			"Merchant": "LILIA SRL",
			"StatusDate": "2024-05-17 13:45:10"
		}
	}`)

	event, err := ParsePaynetEvent(body)
	require.NoError(t, err)
	assert.Equal(t, sampleEvent(), event)
}

func TestParsePaynetEventMissingPayment(t *testing.T) {
	event, err := ParsePaynetEvent([]byte(`{"EventType": "Registered"}`))
	require.NoError(t, err)
	assert.Equal(t, "Registered", event.EventType)
	assert.Empty(t, event.ExternalID)
}

func TestParsePaynetEventInvalidJSON(t *testing.T) {
	_, err := ParsePaynetEvent([]byte("not json"))
	assert.Error(t, err)
}

// Amounts must survive parsing verbatim; a float round-trip would corrupt the
// signature input.
func TestParsePaynetEventKeepsNumbersVerbatim(t *testing.T) {
	body := []byte(`{"Payment": {"Amount": 12345678901234}}`)

	event, err := ParsePaynetEvent(body)
	require.NoError(t, err)
	assert.Equal(t, "12345678901234", event.Amount)
}
