package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"lms/database"
	courseModels "lms/models/course"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupReorderApp wires the reorder route against an in-memory database,
// skipping the auth chain. The handler under test reads only the validator
// locals.
func setupReorderApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/admin/course/:course_id/modules/reorder",
		courseValidator.CourseIDParam(), courseValidator.ReorderModules(), AdminReorderModules)
	return app, db
}

func postReorder(t *testing.T, app *fiber.App, path string, moduleIDs []uint) int {
	t.Helper()

	body, err := json.Marshal(fiber.Map{"module_ids": moduleIDs})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestReorderModulesRewritesFullList(t *testing.T) {
	app, db := setupReorderApp(t)

	course := courseModels.Course{Title: "Curs"}
	require.NoError(t, db.Create(&course).Error)

	modules := make([]courseModels.Module, 3)
	for i := range modules {
		modules[i] = courseModels.Module{CourseID: course.ID, Title: "M", SortOrder: i + 1}
		require.NoError(t, db.Create(&modules[i]).Error)
	}

	status := postReorder(t, app, "/admin/course/1/modules/reorder",
		[]uint{modules[2].ID, modules[0].ID, modules[1].ID})
	assert.Equal(t, fiber.StatusOK, status)

	var reordered []courseModels.Module
	require.NoError(t, db.Where("course_id = ?", course.ID).
		Order("sort_order asc").Find(&reordered).Error)
	require.Len(t, reordered, 3)
	assert.Equal(t, modules[2].ID, reordered[0].ID)
	assert.Equal(t, modules[0].ID, reordered[1].ID)
	assert.Equal(t, modules[1].ID, reordered[2].ID)
}

func TestReorderModulesRejectsPartialList(t *testing.T) {
	app, db := setupReorderApp(t)

	course := courseModels.Course{Title: "Curs"}
	require.NoError(t, db.Create(&course).Error)

	moduleA := courseModels.Module{CourseID: course.ID, Title: "A", SortOrder: 1}
	moduleB := courseModels.Module{CourseID: course.ID, Title: "B", SortOrder: 2}
	require.NoError(t, db.Create(&moduleA).Error)
	require.NoError(t, db.Create(&moduleB).Error)

	// Omitting a module must not silently drop it from the ordering.
	status := postReorder(t, app, "/admin/course/1/modules/reorder", []uint{moduleB.ID})
	assert.Equal(t, fiber.StatusBadRequest, status)

	var unchanged courseModels.Module
	require.NoError(t, db.First(&unchanged, moduleA.ID).Error)
	assert.Equal(t, 1, unchanged.SortOrder)
}

func TestReorderModulesRejectsForeignModule(t *testing.T) {
	app, db := setupReorderApp(t)

	course := courseModels.Course{Title: "Curs"}
	other := courseModels.Course{Title: "Alt curs"}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&other).Error)

	mine := courseModels.Module{CourseID: course.ID, Title: "A", SortOrder: 1}
	foreign := courseModels.Module{CourseID: other.ID, Title: "X", SortOrder: 1}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&foreign).Error)

	status := postReorder(t, app, "/admin/course/1/modules/reorder", []uint{foreign.ID})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
