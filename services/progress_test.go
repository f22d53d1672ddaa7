package services

import (
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordViewDoesNotComplete(t *testing.T) {
	db := openTestDB(t)
	course, lessons := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	progress := NewProgress(db)
	require.NoError(t, progress.RecordView(user.ID, lessons[0].ID))
	require.NoError(t, progress.RecordView(user.ID, lessons[0].ID))

	var rows []courseModels.LessonProgress
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.NotNil(t, rows[0].LastSeenAt)
	assert.Nil(t, rows[0].CompletedAt)

	summary, err := progress.CourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Completed)
}

func TestRecordCompletionIsSetOnce(t *testing.T) {
	db := openTestDB(t)
	_, lessons := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	progress := NewProgress(db)
	require.NoError(t, progress.RecordCompletion(user.ID, lessons[0].ID))

	var first courseModels.LessonProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).First(&first).Error)
	require.NotNil(t, first.CompletedAt)

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, progress.RecordCompletion(user.ID, lessons[0].ID))

	var second courseModels.LessonProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).First(&second).Error)
	require.NotNil(t, second.CompletedAt)

	// completed_at keeps the original timestamp, last_seen_at moves forward
	assert.True(t, second.CompletedAt.Equal(*first.CompletedAt))
	assert.True(t, second.LastSeenAt.After(*first.LastSeenAt))
}

func TestCourseProgressPercentage(t *testing.T) {
	db := openTestDB(t)
	course, lessons := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	progress := NewProgress(db)
	require.NoError(t, progress.RecordCompletion(user.ID, lessons[0].ID))

	summary, err := progress.CourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 25, summary.Percentage)

	require.NoError(t, progress.RecordCompletion(user.ID, lessons[1].ID))
	require.NoError(t, progress.RecordCompletion(user.ID, lessons[2].ID))

	summary, err = progress.CourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Completed)
	assert.Equal(t, 75, summary.Percentage)
}

func TestCourseProgressEmptyCourse(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "student@example.com")

	course := courseModels.Course{Title: "Curs gol", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	summary, err := NewProgress(db).CourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, ProgressSummary{}, summary)
}

func TestCurrentLessonDefaultsToFirstCanonical(t *testing.T) {
	db := openTestDB(t)
	course, lessons := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	progress := NewProgress(db)

	id, err := progress.CurrentLessonID(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, lessons[0].ID, id)
}

func TestCurrentLessonDefaultSkipsEmptyFirstModule(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "student@example.com")

	course := courseModels.Course{Title: "Curs", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	empty := courseModels.Module{CourseID: course.ID, Title: "gol", SortOrder: 1}
	require.NoError(t, db.Create(&empty).Error)
	full := courseModels.Module{CourseID: course.ID, Title: "plin", SortOrder: 2}
	require.NoError(t, db.Create(&full).Error)
	lesson := courseModels.Lesson{ModuleID: full.ID, Title: "Lectia", SortOrder: 1}
	require.NoError(t, db.Create(&lesson).Error)

	// The resume default walks the full canonical order, unlike the
	// free-lesson lookup which stops at the first module.
	id, err := NewProgress(db).CurrentLessonID(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, lesson.ID, id)
}

func TestCurrentLessonFollowsLatestActivity(t *testing.T) {
	db := openTestDB(t)
	course, lessons := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	progress := NewProgress(db)
	require.NoError(t, progress.RecordCompletion(user.ID, lessons[0].ID))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, progress.RecordView(user.ID, lessons[2].ID))

	id, err := progress.CurrentLessonID(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, lessons[2].ID, id)

	// Coming back to an earlier lesson moves the pointer there.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, progress.RecordView(user.ID, lessons[1].ID))

	id, err = progress.CurrentLessonID(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, lessons[1].ID, id)
}

func TestCurrentLessonEmptyCourse(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "student@example.com")

	course := courseModels.Course{Title: "Curs gol", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	id, err := NewProgress(db).CurrentLessonID(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), id)
}

func TestNextLessonCrossesModuleBoundary(t *testing.T) {
	db := openTestDB(t)
	course, lessons := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	progress := NewProgress(db)
	require.NoError(t, progress.RecordView(user.ID, lessons[1].ID))

	// Current is the last lesson of module A; next is the first of module B.
	next, err := progress.NextLessonID(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, lessons[2].ID, next)
}

func TestNextLessonAfterLastIsZero(t *testing.T) {
	db := openTestDB(t)
	course, lessons := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	progress := NewProgress(db)
	require.NoError(t, progress.RecordView(user.ID, lessons[len(lessons)-1].ID))

	next, err := progress.NextLessonID(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), next)
}

func TestCompletedLessonIDs(t *testing.T) {
	db := openTestDB(t)
	_, lessons := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	progress := NewProgress(db)
	require.NoError(t, progress.RecordCompletion(user.ID, lessons[0].ID))
	require.NoError(t, progress.RecordView(user.ID, lessons[1].ID))

	ids := []uint{lessons[0].ID, lessons[1].ID, lessons[2].ID}
	completed, err := progress.CompletedLessonIDs(user.ID, ids)
	require.NoError(t, err)
	assert.True(t, completed[lessons[0].ID])
	assert.False(t, completed[lessons[1].ID])
	assert.False(t, completed[lessons[2].ID])
}
