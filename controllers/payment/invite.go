package paymentController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AdminListOrders lists orders for the admin dashboard
func AdminListOrders(c *fiber.Ctx) error {
	var orders []models.Order
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("created_at desc").Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully!", fiber.Map{
		"orders": orders,
	})
}

// SendOrderInvite sends the course-access invite for a paid order.
// Idempotent: an order whose invite already went out is acknowledged without
// sending again.
func SendOrderInvite(c *fiber.Ctx) error {
	orderID := c.Locals("orderID").(int)

	db := database.Database.Db

	var order models.Order
	if err := db.Where("id = ? AND is_deleted = ?", orderID, false).First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	if order.Status != models.OrderStatusPaid {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Order not paid!", nil)
	}
	if order.CustomerEmail == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Order has no customer email!", nil)
	}

	if order.InviteSentAt != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Invite already sent.", fiber.Map{
			"already_sent": true,
		})
	}

	if err := utils.SendOrderInviteEmail(order.CustomerEmail, order.CustomerName); err != nil {
		log.Printf("Send invite error for order %d: %v", order.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send invite!", nil)
	}

	now := time.Now()
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("invite_sent_at", now).Error; err != nil {
		log.Printf("Failed to mark invite sent for order %d: %v", order.ID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invite sent successfully!", nil)
}
