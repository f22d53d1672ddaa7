package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminFindUser looks up a student by email
func AdminFindUser(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is required!", nil)
	}

	var user models.User
	err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up user!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User found!", user)
}

// AdminGrantEntitlement grants a user access to a course. Idempotent upsert:
// repeating the grant keeps a single ledger row.
func AdminGrantEntitlement(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEntitlement").(*struct {
		UserID   uint `json:"user_id"`
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", reqData.UserID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	entitlements := services.NewEntitlements(db)
	if err := entitlements.Grant(user.ID, course.ID, courseModels.EntitlementSourceAdmin, nil); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grant entitlement!", nil)
	}

	utils.SendEntitlementGrantedEmail(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Entitlement granted successfully!", nil)
}

// AdminRevokeEntitlement revokes a user's access. The ledger row is kept.
func AdminRevokeEntitlement(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEntitlement").(*struct {
		UserID   uint `json:"user_id"`
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	entitlements := services.NewEntitlements(database.Database.Db)
	if err := entitlements.Revoke(reqData.UserID, reqData.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Entitlement not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke entitlement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Entitlement revoked successfully!", nil)
}

// AdminGetStudentProgress returns a student's per-course progress summary
func AdminGetStudentProgress(c *fiber.Ctx) error {
	studentID := c.Locals("studentID").(int)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", studentID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var entitlementRows []courseModels.Entitlement
	if err := db.Where("user_id = ?", studentID).Find(&entitlementRows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch entitlements!", nil)
	}

	progress := services.NewProgress(db)

	type CourseProgress struct {
		CourseID uint                     `json:"course_id"`
		Status   string                   `json:"status"`
		Source   string                   `json:"source"`
		Progress services.ProgressSummary `json:"progress"`
	}

	result := make([]CourseProgress, len(entitlementRows))
	for i, entitlement := range entitlementRows {
		summary, err := progress.CourseProgress(uint(studentID), entitlement.CourseID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		result[i] = CourseProgress{
			CourseID: entitlement.CourseID,
			Status:   entitlement.Status,
			Source:   entitlement.Source,
			Progress: summary,
		}
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"user":    user,
		"courses": result,
	})
}
