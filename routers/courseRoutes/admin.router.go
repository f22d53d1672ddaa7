package courseRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	// Course management
	adminGroup.Get("/course/list", courseControllers.AdminGetAllCourses)
	adminGroup.Post("/course/create", courseValidators.CreateCourse(), courseControllers.AdminCreateCourse)
	adminGroup.Put("/course/:id", courseValidators.CourseID(), courseValidators.UpdateCourse(), courseControllers.AdminUpdateCourse)
	adminGroup.Post("/course/:id/cover", courseValidators.CourseID(), courseControllers.AdminUploadCourseCover)
	adminGroup.Patch("/course/:id/publish", courseValidators.CourseID(), courseValidators.PublishCourse(), courseControllers.AdminPublishCourse)
	adminGroup.Delete("/course/:id", courseValidators.CourseID(), courseControllers.AdminDeleteCourse)

	// Module management
	adminGroup.Get("/course/:course_id/modules", courseValidators.CourseIDParam(), courseControllers.AdminListModules)
	adminGroup.Post("/course/:course_id/modules", courseValidators.CourseIDParam(), courseValidators.CreateModule(), courseControllers.AdminCreateModule)
	adminGroup.Put("/course/:course_id/modules/:module_id", courseValidators.CourseIDParam(), courseValidators.ModuleIDParam(), courseValidators.UpdateModule(), courseControllers.AdminUpdateModule)
	adminGroup.Post("/course/:course_id/modules/reorder", courseValidators.CourseIDParam(), courseValidators.ReorderModules(), courseControllers.AdminReorderModules)
	adminGroup.Delete("/course/:course_id/modules/:module_id", courseValidators.CourseIDParam(), courseValidators.ModuleIDParam(), courseControllers.AdminDeleteModule)

	// Lesson management
	adminGroup.Post("/course/:course_id/modules/:module_id/lessons", courseValidators.CourseIDParam(), courseValidators.ModuleIDParam(), courseValidators.CreateLesson(), courseControllers.AdminCreateLesson)
	adminGroup.Post("/course/:course_id/modules/:module_id/lessons/reorder", courseValidators.CourseIDParam(), courseValidators.ModuleIDParam(), courseValidators.ReorderLessons(), courseControllers.AdminReorderLessons)
	adminGroup.Put("/lesson/:id", courseValidators.LessonID(), courseValidators.UpdateLesson(), courseControllers.AdminUpdateLesson)
	adminGroup.Delete("/lesson/:id", courseValidators.LessonID(), courseControllers.AdminDeleteLesson)

	// Entitlement management
	adminGroup.Get("/user/find", courseControllers.AdminFindUser)
	adminGroup.Post("/entitlement/grant", courseValidators.Entitlement(), courseControllers.AdminGrantEntitlement)
	adminGroup.Post("/entitlement/revoke", courseValidators.Entitlement(), courseControllers.AdminRevokeEntitlement)
	adminGroup.Get("/user/:user_id/progress", courseValidators.StudentIDParam(), courseControllers.AdminGetStudentProgress)
}
