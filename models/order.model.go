package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderStatusPending = "PENDING"
	OrderStatusPaid    = "PAID"
)

// Order is the payment record for a course purchase. Rows are created when a
// checkout is started and transitioned to PAID by the gateway callback. The
// entitlement ledger is synced from paid orders separately, so access checks
// never depend on gateway availability.
type Order struct {
	gorm.Model
	Invoice       string `json:"invoice" gorm:"uniqueIndex;not null"` // external reference sent to the gateway
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email" gorm:"index;not null"`
	CustomerPhone string `json:"customer_phone"`
	ProductID     string `json:"product_id"`
	Amount        int64  `json:"amount"` // minor units
	Currency      string `json:"currency" gorm:"default:'MDL'"`
	Status        string `json:"status" gorm:"default:'PENDING'"` // PENDING, PAID

	PaidAt              *time.Time     `json:"paid_at"`
	PaynetPaymentID     string         `json:"paynet_payment_id"`
	PaynetTransactionID string         `json:"paynet_transaction_id"`
	PaynetPayload       datatypes.JSON `json:"paynet_payload"` // raw callback body

	InviteSentAt *time.Time `json:"invite_sent_at"`
	IsDeleted    bool       `gorm:"default:false"`
}
