package courseValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"

	courseModels "lms/models/course"
)

func isValidKind(kind string) bool {
	return kind == courseModels.LessonKindVideo || kind == courseModels.LessonKindText
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title     string `json:"title"`
			Kind      string `json:"kind"`
			VideoURL  string `json:"video_url"`
			PdfURL    string `json:"pdf_url"`
			BodyMD    string `json:"body_md"`
			SortOrder int    `json:"sort_order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		reqData.Kind = strings.ToUpper(strings.TrimSpace(reqData.Kind))
		if reqData.Kind == "" {
			reqData.Kind = courseModels.LessonKindVideo
		} else if !isValidKind(reqData.Kind) {
			errors["kind"] = "Kind must be VIDEO or TEXT!"
		}

		if reqData.Kind == courseModels.LessonKindVideo && strings.TrimSpace(reqData.VideoURL) == "" {
			errors["video_url"] = "Video URL is required for video lessons!"
		}
		if reqData.SortOrder < 0 {
			errors["sort_order"] = "Sort order must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title    string `json:"title"`
			Kind     string `json:"kind"`
			VideoURL string `json:"video_url"`
			PdfURL   string `json:"pdf_url"`
			BodyMD   string `json:"body_md"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Kind = strings.ToUpper(strings.TrimSpace(reqData.Kind))
		if reqData.Kind != "" && !isValidKind(reqData.Kind) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Kind must be VIDEO or TEXT!", nil)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

func ReorderLessons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LessonIDs []uint `json:"lesson_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.LessonIDs) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson IDs are required!", nil)
		}
		seen := make(map[uint]bool, len(reqData.LessonIDs))
		for _, id := range reqData.LessonIDs {
			if id == 0 || seen[id] {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson IDs must be unique and non-zero!", nil)
			}
			seen[id] = true
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}
