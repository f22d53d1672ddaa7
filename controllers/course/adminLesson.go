package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateLesson creates a lesson in a module. Video URLs are normalized
// to their embeddable form here, at save time.
func AdminCreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title     string `json:"title"`
		Kind      string `json:"kind"`
		VideoURL  string `json:"video_url"`
		PdfURL    string `json:"pdf_url"`
		BodyMD    string `json:"body_md"`
		SortOrder int    `json:"sort_order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Append to the end when no explicit order is given
	sortOrder := reqData.SortOrder
	if sortOrder == 0 {
		var maxOrder int
		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ?", moduleID, false).
			Select("COALESCE(MAX(sort_order), 0)").Scan(&maxOrder)
		sortOrder = maxOrder + 1
	}

	lesson := courseModels.Lesson{
		ModuleID:  uint(moduleID),
		Title:     reqData.Title,
		Kind:      reqData.Kind,
		VideoURL:  utils.NormalizeVideoURL(reqData.VideoURL),
		PdfURL:    reqData.PdfURL,
		BodyMD:    reqData.BodyMD,
		SortOrder: sortOrder,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminUpdateLesson updates an existing lesson
func AdminUpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*struct {
		Title    string `json:"title"`
		Kind     string `json:"kind"`
		VideoURL string `json:"video_url"`
		PdfURL   string `json:"pdf_url"`
		BodyMD   string `json:"body_md"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		lesson.Title = reqData.Title
	}
	if reqData.Kind != "" {
		lesson.Kind = reqData.Kind
	}
	if reqData.VideoURL != "" {
		lesson.VideoURL = utils.NormalizeVideoURL(reqData.VideoURL)
	}
	if reqData.PdfURL != "" {
		lesson.PdfURL = reqData.PdfURL
	}
	if reqData.BodyMD != "" {
		lesson.BodyMD = reqData.BodyMD
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminReorderLessons rewrites the sort order of a module's lessons from the
// full target id list, in a single transaction.
func AdminReorderLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedReorder").(*struct {
		LessonIDs []uint `json:"lesson_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var existing []courseModels.Lesson
	if err := db.Where("module_id = ? AND is_deleted = ?", moduleID, false).Find(&existing).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	if len(existing) != len(reqData.LessonIDs) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reorder list must contain every lesson of the module!", nil)
	}
	existingIDs := make(map[uint]bool, len(existing))
	for _, lesson := range existing {
		existingIDs[lesson.ID] = true
	}
	for _, id := range reqData.LessonIDs {
		if !existingIDs[id] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reorder list contains an unknown lesson!", nil)
		}
		delete(existingIDs, id)
	}

	tx := db.Begin()
	for position, id := range reqData.LessonIDs {
		if err := tx.Model(&courseModels.Lesson{}).Where("id = ?", id).
			Update("sort_order", position+1).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder lessons!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons reordered successfully!", nil)
}

// AdminDeleteLesson soft deletes a lesson
func AdminDeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
