package paymentController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateCheckout creates a PENDING order and registers the payment with the
// gateway. The response carries the form action and parameters the browser
// needs to continue on the gateway's page. No entitlement is granted here;
// that happens after the paid callback, via reconciliation.
func CreateCheckout(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCheckout").(*struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phone  string `json:"phone"`
		Amount int64  `json:"amount"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	order := models.Order{
		Invoice:       uuid.NewString(),
		CustomerName:  reqData.Name,
		CustomerEmail: reqData.Email,
		CustomerPhone: reqData.Phone,
		ProductID:     config.AppConfig.PaymentProductID,
		Amount:        reqData.Amount,
		Currency:      "MDL",
		Status:        models.OrderStatusPending,
	}

	if err := database.Database.Db.Create(&order).Error; err != nil {
		log.Printf("Failed to create order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create order!", nil)
	}

	checkout, err := utils.CreatePaynetPayment(order.Invoice, order.Amount, order.Currency,
		order.CustomerName, order.CustomerEmail, order.CustomerPhone)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway unavailable!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout created successfully!", fiber.Map{
		"order_id":               order.ID,
		"invoice":                order.Invoice,
		"paynet_redirect_action": checkout.Action,
		"paynet_redirect_params": checkout.Params,
	})
}
