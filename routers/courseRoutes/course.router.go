package courseRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", middleware.JWTMiddleware, courseControllers.GetAllCourses)
	courseGroup.Get("/lesson/:id", courseValidators.LessonID(), middleware.JWTMiddleware, courseControllers.ViewLesson)
	courseGroup.Post("/lesson/:id/complete", courseValidators.LessonID(), middleware.JWTMiddleware, courseControllers.MarkLessonComplete)
	courseGroup.Get("/:id", courseValidators.CourseID(), middleware.JWTMiddleware, courseControllers.GetCourseDetails)
	courseGroup.Get("/:id/progress", courseValidators.CourseID(), middleware.JWTMiddleware, courseControllers.GetCourseProgress)
}
