package utils

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"lms/config"
	"log"

	"github.com/go-resty/resty/v2"
)

// PaynetEvent carries the notification fields that enter the callback
// signature, in the order Paynet concatenates them.
type PaynetEvent struct {
	EventDate  string
	EventID    string
	EventType  string
	Amount     string
	Customer   string
	ExternalID string
	PaymentID  string
	Merchant   string
	StatusDate string
}

// PreparedString concatenates the signed fields exactly as the gateway does.
func (e PaynetEvent) PreparedString() string {
	return e.EventDate + e.EventID + e.EventType + e.Amount + e.Customer +
		e.ExternalID + e.PaymentID + e.Merchant + e.StatusDate
}

// ComputePaynetHash returns Base64(MD5(PreparedString + secret)).
func ComputePaynetHash(event PaynetEvent, secret string) string {
	sum := md5.Sum([]byte(event.PreparedString() + secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// ParsePaynetEvent decodes a callback body. The gateway is inconsistent about
// key casing (Eventid/EventId, ID/Id), so fields are picked from a generic
// map with json.Number decoding to keep numeric values verbatim.
func ParsePaynetEvent(body []byte) (PaynetEvent, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var payload map[string]interface{}
	if err := decoder.Decode(&payload); err != nil {
		return PaynetEvent{}, err
	}

	payment := subObject(payload, "Payment", "payment")

	event := PaynetEvent{
		EventDate:  pickString(payload, "EventDate"),
		EventID:    pickString(payload, "Eventid", "EventId"),
		EventType:  pickString(payload, "EventType", "eventType"),
		Amount:     pickString(payment, "Amount"),
		Customer:   pickString(payment, "Customer"),
		ExternalID: pickString(payment, "ExternalID", "ExternalId"),
		PaymentID:  pickString(payment, "ID", "Id"),
		Merchant:   pickString(payment, "Merchant"),
		StatusDate: pickString(payment, "StatusDate"),
	}
	return event, nil
}

func subObject(m map[string]interface{}, keys ...string) map[string]interface{} {
	for _, key := range keys {
		if sub, ok := m[key].(map[string]interface{}); ok {
			return sub
		}
	}
	return map[string]interface{}{}
}

func pickString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		value, ok := m[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			return v
		case json.Number:
			return v.String()
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

// PaynetCheckout is what the browser needs to continue a payment: a form
// action plus the parameters to POST to it.
type PaynetCheckout struct {
	Action string            `json:"paynet_redirect_action"`
	Params map[string]string `json:"paynet_redirect_params"`
}

// CreatePaynetPayment registers a pending payment with the gateway and
// returns the redirect instructions for the customer's browser.
func CreatePaynetPayment(invoice string, amount int64, currency, customerName, customerEmail, customerPhone string) (*PaynetCheckout, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"Invoice":      invoice,
			"MerchantCode": config.AppConfig.PaynetMerchantCode,
			"SecretKey":    config.AppConfig.PaynetMerchantKey,
			"Amount":       amount,
			"Currency":     currency,
			"ExternalID":   invoice,
			"Customer": map[string]string{
				"Name":  customerName,
				"Email": customerEmail,
				"Phone": customerPhone,
			},
			"LinkSuccess": config.AppConfig.SiteURL + "/multumim",
			"LinkCancel":  config.AppConfig.SiteURL + "/inscriere",
		}).
		Post(config.AppConfig.PaynetAPIURL + "/api/Payments/Send")
	if err != nil {
		log.Printf("Paynet payment registration failed: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Paynet payment registration rejected: %s", resp.String())
		return nil, fmt.Errorf("paynet returned status %d", resp.StatusCode())
	}

	var paymentResp struct {
		PaymentID json.Number `json:"PaymentId"`
	}
	if err := json.Unmarshal(resp.Body(), &paymentResp); err != nil {
		log.Printf("Failed to parse Paynet response: %v", err)
		return nil, err
	}

	return &PaynetCheckout{
		Action: config.AppConfig.PaynetAPIURL + "/form",
		Params: map[string]string{
			"operation":     paymentResp.PaymentID.String(),
			"LinkUrlSucces": config.AppConfig.SiteURL + "/multumim",
			"LinkUrlCancel": config.AppConfig.SiteURL + "/inscriere",
			"Lang":          "ro",
		},
	}, nil
}
