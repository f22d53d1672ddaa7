package controllers

import (
	"errors"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses renders the authenticated home view: published courses with
// the user's entitlement flag, per-course progress and the free first lesson.
// Paid orders are reconciled into the ledger first, best effort; a failed
// sync must never block the page.
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Grant entitlements from paid orders (log-and-continue)
	reconciler := services.NewReconciler(db, services.ReconcileConfig{
		CourseID:  config.AppConfig.PaymentCourseID,
		ProductID: config.AppConfig.PaymentProductID,
	})
	if _, err := reconciler.SyncFromOrders(user.ID, user.Email); err != nil {
		log.Printf("Entitlement sync failed for user %d: %v", user.ID, err)
	}

	var courses []courseModels.Course
	if err := db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("created_at asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	entitlements := services.NewEntitlements(db)
	catalog := services.NewCatalog(db, config.AppConfig.FirstLessonID)
	progress := services.NewProgress(db)

	type CourseCard struct {
		courseModels.Course
		IsEntitled    bool                     `json:"is_entitled"`
		FirstLessonID uint                     `json:"first_lesson_id,omitempty"`
		Progress      services.ProgressSummary `json:"progress"`
	}

	cards := make([]CourseCard, len(courses))
	for i, course := range courses {
		cards[i] = CourseCard{Course: course}

		active, err := entitlements.IsActive(userID, course.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch entitlements!", nil)
		}
		cards[i].IsEntitled = active

		if active {
			summary, err := progress.CourseProgress(userID, course.ID)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
			}
			cards[i].Progress = summary
		} else {
			// Free preview link for courses the user has not bought
			firstID, err := catalog.FirstLessonID(course.ID)
			if err != nil && !errors.Is(err, services.ErrNoFreeLesson) {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve first lesson!", nil)
			}
			cards[i].FirstLessonID = firstID
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": cards,
	})
}

// GetCourseDetails gets course details with modules and lessons in canonical
// order, completion flags and the user's current/next lesson.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	catalog := services.NewCatalog(db, config.AppConfig.FirstLessonID)
	progress := services.NewProgress(db)

	modules, err := catalog.Modules(course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	lessons, err := catalog.CanonicalLessons(course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	lessonIDs := make([]uint, len(lessons))
	for i, lesson := range lessons {
		lessonIDs[i] = lesson.ID
	}
	completed, err := progress.CompletedLessonIDs(userID, lessonIDs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	type LessonItem struct {
		ID          uint   `json:"id"`
		ModuleID    uint   `json:"module_id"`
		Title       string `json:"title"`
		Kind        string `json:"kind"`
		IsCompleted bool   `json:"is_completed"`
		IsCurrent   bool   `json:"is_current"`
	}

	currentID, err := progress.CurrentLessonID(userID, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to derive current lesson!", nil)
	}
	nextID, err := progress.NextLessonID(userID, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to derive next lesson!", nil)
	}

	items := make([]LessonItem, len(lessons))
	for i, lesson := range lessons {
		items[i] = LessonItem{
			ID:          lesson.ID,
			ModuleID:    lesson.ModuleID,
			Title:       lesson.Title,
			Kind:        lesson.Kind,
			IsCompleted: completed[lesson.ID],
			IsCurrent:   lesson.ID == currentID,
		}
	}

	summary, err := progress.CourseProgress(userID, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":            course,
		"modules":           modules,
		"lessons":           items,
		"progress":          summary,
		"current_lesson_id": currentID,
		"next_lesson_id":    nextID,
	})
}

// GetCourseProgress returns the completed/total summary for a course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	progress := services.NewProgress(db)
	summary, err := progress.CourseProgress(userID, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", summary)
}
