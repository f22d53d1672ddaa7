package paymentController

import (
	"lms/config"
	"lms/database"
	"lms/models"
	"lms/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// PaynetCallback handles the gateway's asynchronous payment notification.
// The signature (Hash header) is verified against the shared notify secret;
// a mismatch is rejected in production and only logged in declared test mode.
// The handler always answers 200 once past signature checks: the gateway
// retries on anything else and internal errors must not cause a delivery
// storm.
func PaynetCallback(c *fiber.Ctx) error {
	body := c.Body()
	hashHeader := c.Get("Hash")

	log.Printf("Paynet callback received: %s", string(body))

	event, err := utils.ParsePaynetEvent(body)
	if err != nil {
		log.Printf("Paynet callback: invalid payload: %v", err)
		// Unparseable body is still acknowledged to stop retries
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	}

	notifySecret := config.AppConfig.PaynetNotifySecret
	isTest := config.AppConfig.PaynetEnv == "test"

	if notifySecret == "" && !isTest {
		log.Println("Paynet notify secret not configured")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	}

	// Verify signature when Hash is present and we have a secret
	if hashHeader != "" && notifySecret != "" {
		computed := utils.ComputePaynetHash(event, notifySecret)
		if computed != hashHeader {
			log.Println("Paynet callback: hash verification failed")
			if !isTest {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid signature"})
			}
			log.Println("Test mode: proceeding despite invalid hash")
		}
	} else if hashHeader != "" && notifySecret == "" && isTest {
		log.Println("Test mode: no notify secret, skipping hash verification")
	}

	if event.EventType == "Paid" {
		markOrderPaid(event, body)
	}

	// Always return 200 OK quickly to avoid retries
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// markOrderPaid transitions the order referenced by the event's ExternalID to
// PAID, recording the gateway identifiers and raw payload. Errors are logged,
// never surfaced to the gateway.
func markOrderPaid(event utils.PaynetEvent, rawPayload []byte) {
	if event.ExternalID == "" {
		log.Println("Paynet callback: no ExternalID in Payment object")
		return
	}

	db := database.Database.Db

	var order models.Order
	if err := db.Where("invoice = ? AND is_deleted = ?", event.ExternalID, false).First(&order).Error; err != nil {
		log.Printf("Paynet callback: order not found for invoice %s: %v", event.ExternalID, err)
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         models.OrderStatusPaid,
		"paid_at":        now,
		"paynet_payload": datatypes.JSON(rawPayload),
	}
	if event.PaymentID != "" {
		updates["paynet_payment_id"] = event.PaymentID
		updates["paynet_transaction_id"] = event.PaymentID
	}

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		log.Printf("Paynet callback: failed to update order %d: %v", order.ID, err)
		return
	}

	log.Printf("Order %d marked as paid (invoice: %s)", order.ID, event.ExternalID)
}
