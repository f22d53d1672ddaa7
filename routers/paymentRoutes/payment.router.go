package paymentRoutes

import (
	paymentControllers "lms/controllers/payment"
	"lms/middleware"
	paymentValidators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	// Public endpoints hit by the storefront and the gateway
	paymentGroup.Post("/checkout", paymentValidators.Checkout(), paymentControllers.CreateCheckout)
	paymentGroup.Post("/paynet/callback", paymentControllers.PaynetCallback)

	// Order administration
	adminGroup := app.Group("/admin/order", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/list", paymentControllers.AdminListOrders)
	adminGroup.Post("/:id/invite", paymentValidators.OrderID(), paymentControllers.SendOrderInvite)
}
