package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// paramToLocal validates a positive integer route parameter and stores it in
// the request locals under the given key.
func paramToLocal(param, local, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}

		c.Locals(local, id)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return paramToLocal("id", "courseID", "Course ID")
}

func CourseIDParam() fiber.Handler {
	return paramToLocal("course_id", "courseID", "Course ID")
}

func ModuleIDParam() fiber.Handler {
	return paramToLocal("module_id", "moduleID", "Module ID")
}

func LessonID() fiber.Handler {
	return paramToLocal("id", "lessonID", "Lesson ID")
}

func LessonIDParam() fiber.Handler {
	return paramToLocal("lesson_id", "lessonID", "Lesson ID")
}

func StudentIDParam() fiber.Handler {
	return paramToLocal("user_id", "studentID", "User ID")
}
