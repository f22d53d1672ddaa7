package utils

import (
	"lms/database"
	"lms/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeInviteScheduler sets up the paid-order invite sweep
func InitializeInviteScheduler() {
	log.Println("[INVITE-SWEEP] Initializing invite scheduler...")

	c := cron.New()

	// Every 5 minutes, catch paid orders whose invite mail has not gone out
	c.AddFunc("*/5 * * * *", func() {
		ProcessPendingInvites()
	})

	c.Start()
	log.Println("[INVITE-SWEEP] Invite scheduler started - runs every 5 minutes")
}

// ProcessPendingInvites sends the access invite for every paid order that has
// not been invited yet. Idempotent: invite_sent_at is set only after the mail
// goes out, and orders already marked are skipped.
func ProcessPendingInvites() {
	db := database.Database.Db

	var orders []models.Order
	if err := db.
		Where("status = ? AND invite_sent_at IS NULL AND is_deleted = false", models.OrderStatusPaid).
		Find(&orders).Error; err != nil {
		log.Printf("[INVITE-SWEEP] Error fetching paid orders: %v", err)
		return
	}

	if len(orders) == 0 {
		return
	}
	log.Printf("[INVITE-SWEEP] Found %d paid orders without invite", len(orders))

	for _, order := range orders {
		if order.CustomerEmail == "" {
			log.Printf("[INVITE-SWEEP] Order %d has no customer email, skipping", order.ID)
			continue
		}

		if err := SendOrderInviteEmail(order.CustomerEmail, order.CustomerName); err != nil {
			log.Printf("[INVITE-SWEEP] Error sending invite for order %d: %v", order.ID, err)
			continue
		}

		now := time.Now()
		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("invite_sent_at", now).Error; err != nil {
			log.Printf("[INVITE-SWEEP] Error marking order %d invited: %v", order.ID, err)
			continue
		}

		log.Printf("[INVITE-SWEEP] Invite sent for order %d (%s)", order.ID, order.CustomerEmail)
	}
}
