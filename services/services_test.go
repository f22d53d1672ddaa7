package services

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a fresh in-memory database per test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Entitlement{},
		&courseModels.LessonProgress{},
	)
	require.NoError(t, err)

	return db
}

// seedCourse creates a published course with two modules of two lessons each,
// in canonical order. Returns the course and its lessons in that order.
func seedCourse(t *testing.T, db *gorm.DB) (courseModels.Course, []courseModels.Lesson) {
	t.Helper()

	course := courseModels.Course{Title: "Curs de baza", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	moduleA := courseModels.Module{CourseID: course.ID, Title: "Introducere", SortOrder: 1}
	moduleB := courseModels.Module{CourseID: course.ID, Title: "Avansat", SortOrder: 2}
	require.NoError(t, db.Create(&moduleA).Error)
	require.NoError(t, db.Create(&moduleB).Error)

	lessons := []courseModels.Lesson{
		{ModuleID: moduleA.ID, Title: "Lectia 1", Kind: courseModels.LessonKindVideo, SortOrder: 1},
		{ModuleID: moduleA.ID, Title: "Lectia 2", Kind: courseModels.LessonKindVideo, SortOrder: 2},
		{ModuleID: moduleB.ID, Title: "Lectia 3", Kind: courseModels.LessonKindText, SortOrder: 1},
		{ModuleID: moduleB.ID, Title: "Lectia 4", Kind: courseModels.LessonKindVideo, SortOrder: 2},
	}
	for i := range lessons {
		require.NoError(t, db.Create(&lessons[i]).Error)
	}

	return course, lessons
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, Password: "irrelevant"}
	require.NoError(t, db.Create(&user).Error)
	return user
}
