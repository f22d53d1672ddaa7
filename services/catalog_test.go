package services

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstLessonIDFollowsSortOrder(t *testing.T) {
	db := openTestDB(t)
	course, lessons := seedCourse(t, db)

	catalog := NewCatalog(db, 0)

	id, err := catalog.FirstLessonID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, lessons[0].ID, id)
}

func TestFirstLessonIDIgnoresInsertionOrder(t *testing.T) {
	db := openTestDB(t)

	course := courseModels.Course{Title: "Curs", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	// Later module inserted first; sort order must win over row ids.
	moduleLate := courseModels.Module{CourseID: course.ID, Title: "B", SortOrder: 5}
	require.NoError(t, db.Create(&moduleLate).Error)
	moduleEarly := courseModels.Module{CourseID: course.ID, Title: "A", SortOrder: 1}
	require.NoError(t, db.Create(&moduleEarly).Error)

	late := courseModels.Lesson{ModuleID: moduleLate.ID, Title: "late", SortOrder: 1}
	require.NoError(t, db.Create(&late).Error)
	early := courseModels.Lesson{ModuleID: moduleEarly.ID, Title: "early", SortOrder: 1}
	require.NoError(t, db.Create(&early).Error)

	catalog := NewCatalog(db, 0)

	id, err := catalog.FirstLessonID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, early.ID, id)
}

func TestFirstLessonIDEmptyFirstModuleDoesNotFallThrough(t *testing.T) {
	db := openTestDB(t)

	course := courseModels.Course{Title: "Curs", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	empty := courseModels.Module{CourseID: course.ID, Title: "gol", SortOrder: 1}
	require.NoError(t, db.Create(&empty).Error)
	full := courseModels.Module{CourseID: course.ID, Title: "plin", SortOrder: 2}
	require.NoError(t, db.Create(&full).Error)
	lesson := courseModels.Lesson{ModuleID: full.ID, Title: "Lectia", SortOrder: 1}
	require.NoError(t, db.Create(&lesson).Error)

	catalog := NewCatalog(db, 0)

	_, err := catalog.FirstLessonID(course.ID)
	assert.ErrorIs(t, err, ErrNoFreeLesson)
}

func TestFirstLessonIDNoModules(t *testing.T) {
	db := openTestDB(t)

	course := courseModels.Course{Title: "Curs gol", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	catalog := NewCatalog(db, 0)

	_, err := catalog.FirstLessonID(course.ID)
	assert.ErrorIs(t, err, ErrNoFreeLesson)
}

func TestFirstLessonIDOverrideWins(t *testing.T) {
	db := openTestDB(t)
	course, _ := seedCourse(t, db)

	catalog := NewCatalog(db, 999)

	id, err := catalog.FirstLessonID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(999), id)
}

func TestCanonicalLessonsOrder(t *testing.T) {
	db := openTestDB(t)
	course, lessons := seedCourse(t, db)

	catalog := NewCatalog(db, 0)

	ordered, err := catalog.CanonicalLessons(course.ID)
	require.NoError(t, err)
	require.Len(t, ordered, len(lessons))
	for i, lesson := range ordered {
		assert.Equal(t, lessons[i].ID, lesson.ID)
	}
}

func TestCanonicalLessonsSkipsDeleted(t *testing.T) {
	db := openTestDB(t)
	course, lessons := seedCourse(t, db)

	require.NoError(t, db.Model(&courseModels.Lesson{}).
		Where("id = ?", lessons[1].ID).Update("is_deleted", true).Error)

	catalog := NewCatalog(db, 0)

	ordered, err := catalog.CanonicalLessons(course.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, lessons[0].ID, ordered[0].ID)
	assert.Equal(t, lessons[2].ID, ordered[1].ID)
	assert.Equal(t, lessons[3].ID, ordered[2].ID)
}
