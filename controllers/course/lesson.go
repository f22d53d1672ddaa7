package controllers

import (
	"errors"
	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ViewLesson runs the paywall check for a lesson and, when allowed, returns
// the lesson body with the course sidebar. The first lesson of a course is
// free; the rest require an active entitlement. A missing lesson is 404 and
// a denied one is 402 with the course title, never the other way around.
func ViewLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	lessonID := uint(c.Locals("lessonID").(int))

	access := services.NewAccess(db, config.AppConfig.FirstLessonID)
	decision, err := access.AuthorizeLessonView(userID, lessonID)
	if err != nil {
		if errors.Is(err, services.ErrLessonNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to authorize lesson view!", nil)
	}

	if !decision.Allowed {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "This lesson requires course access.", fiber.Map{
			"paywalled":    true,
			"course_id":    decision.CourseID,
			"course_title": decision.CourseTitle,
		})
	}

	// Record the view after a successful authorization (log-and-continue)
	progress := services.NewProgress(db)
	if err := progress.RecordView(userID, lessonID); err != nil {
		log.Printf("Failed to record lesson view for user %d lesson %d: %v", userID, lessonID, err)
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	catalog := services.NewCatalog(db, config.AppConfig.FirstLessonID)
	sidebar, err := buildSidebar(userID, decision.CourseID, lessonID, catalog, progress)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build lesson sidebar!", nil)
	}

	summary, err := progress.CourseProgress(userID, decision.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var done bool
	var row courseModels.LessonProgress
	if err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&row).Error; err == nil {
		done = row.CompletedAt != nil
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":          lesson,
		"course_id":       decision.CourseID,
		"course_title":    decision.CourseTitle,
		"is_first_lesson": decision.IsFirstLesson,
		"is_completed":    done,
		"progress":        summary,
		"sidebar":         sidebar.Items,
		"next_lesson_id":  sidebar.NextLessonID,
	})
}

// MarkLessonComplete sets completed_at for the lesson. Gated the same way as
// viewing: completing a paywalled lesson is not allowed.
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	lessonID := uint(c.Locals("lessonID").(int))

	access := services.NewAccess(db, config.AppConfig.FirstLessonID)
	decision, err := access.AuthorizeLessonView(userID, lessonID)
	if err != nil {
		if errors.Is(err, services.ErrLessonNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to authorize lesson view!", nil)
	}
	if !decision.Allowed {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "This lesson requires course access.", fiber.Map{
			"paywalled":    true,
			"course_id":    decision.CourseID,
			"course_title": decision.CourseTitle,
		})
	}

	progress := services.NewProgress(db)
	if err := progress.RecordCompletion(userID, lessonID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	nextID, err := progress.NextLessonID(userID, decision.CourseID)
	if err != nil {
		log.Printf("Failed to derive next lesson for user %d course %d: %v", userID, decision.CourseID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", fiber.Map{
		"lesson_id":      lessonID,
		"next_lesson_id": nextID,
	})
}

type lessonSidebar struct {
	Items        []sidebarItem
	NextLessonID uint
}

type sidebarItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	ModuleTitle string `json:"module_title"`
	IsCompleted bool   `json:"is_completed"`
	IsCurrent   bool   `json:"is_current"`
}

// buildSidebar lists every lesson of the course in canonical order with
// completion flags, and resolves the lesson following the one being viewed.
func buildSidebar(userID, courseID, currentLessonID uint, catalog *services.Catalog, progress *services.Progress) (lessonSidebar, error) {
	modules, err := catalog.Modules(courseID)
	if err != nil {
		return lessonSidebar{}, err
	}
	moduleTitles := make(map[uint]string, len(modules))
	for _, module := range modules {
		moduleTitles[module.ID] = module.Title
	}

	lessons, err := catalog.CanonicalLessons(courseID)
	if err != nil {
		return lessonSidebar{}, err
	}

	ids := make([]uint, len(lessons))
	for i, lesson := range lessons {
		ids[i] = lesson.ID
	}
	completed, err := progress.CompletedLessonIDs(userID, ids)
	if err != nil {
		return lessonSidebar{}, err
	}

	sidebar := lessonSidebar{Items: make([]sidebarItem, len(lessons))}
	for i, lesson := range lessons {
		sidebar.Items[i] = sidebarItem{
			ID:          lesson.ID,
			Title:       lesson.Title,
			ModuleTitle: moduleTitles[lesson.ModuleID],
			IsCompleted: completed[lesson.ID],
			IsCurrent:   lesson.ID == currentLessonID,
		}
		if lesson.ID == currentLessonID && i < len(lessons)-1 {
			sidebar.NextLessonID = lessons[i+1].ID
		}
	}

	return sidebar, nil
}
