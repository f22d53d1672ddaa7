package courseValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title     string `json:"title"`
			SortOrder int    `json:"sort_order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.SortOrder < 0 {
			errors["sort_order"] = "Sort order must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title string `json:"title"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title is required!", nil)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

func ReorderModules() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleIDs []uint `json:"module_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.ModuleIDs) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module IDs are required!", nil)
		}
		seen := make(map[uint]bool, len(reqData.ModuleIDs))
		for _, id := range reqData.ModuleIDs {
			if id == 0 || seen[id] {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module IDs must be unique and non-zero!", nil)
			}
			seen[id] = true
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}
