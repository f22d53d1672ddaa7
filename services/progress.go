package services

import (
	"math"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressSummary is the per-course completed/total aggregate.
type ProgressSummary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// Progress records lesson views and completions and derives the per-course
// aggregates from them. All writes are upserts on (user_id, lesson_id), so
// concurrent requests for the same user are safe. Last writer wins on
// last_seen_at, which is accepted behavior.
type Progress struct {
	db      *gorm.DB
	catalog *Catalog
}

func NewProgress(db *gorm.DB) *Progress {
	return &Progress{db: db, catalog: NewCatalog(db, 0)}
}

// RecordView refreshes last_seen_at for the (user, lesson) row. It never
// touches completed_at.
func (s *Progress) RecordView(userID, lessonID uint) error {
	now := time.Now()
	row := courseModels.LessonProgress{
		UserID:     userID,
		LessonID:   lessonID,
		LastSeenAt: &now,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_seen_at": now,
			"updated_at":   now,
		}),
	}).Create(&row).Error
}

// RecordCompletion marks the lesson done and refreshes last_seen_at.
// completed_at is set once; repeated calls keep the original timestamp.
func (s *Progress) RecordCompletion(userID, lessonID uint) error {
	now := time.Now()
	row := courseModels.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		LastSeenAt:  &now,
		CompletedAt: &now,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_seen_at": now,
			"completed_at": gorm.Expr("COALESCE(completed_at, ?)", now),
			"updated_at":   now,
		}),
	}).Create(&row).Error
}

// CourseProgress returns the completed/total counts for the course.
func (s *Progress) CourseProgress(userID, courseID uint) (ProgressSummary, error) {
	lessons, err := s.catalog.CanonicalLessons(courseID)
	if err != nil {
		return ProgressSummary{}, err
	}

	summary := ProgressSummary{Total: len(lessons)}
	if summary.Total == 0 {
		return summary, nil
	}

	var count int64
	err = s.db.Model(&courseModels.LessonProgress{}).
		Where("user_id = ? AND lesson_id IN ? AND completed_at IS NOT NULL", userID, lessonIDs(lessons)).
		Count(&count).Error
	if err != nil {
		return ProgressSummary{}, err
	}

	summary.Completed = int(count)
	summary.Percentage = int(math.Round(float64(summary.Completed) / float64(summary.Total) * 100))
	return summary, nil
}

// CurrentLessonID is the lesson with the most recent activity (the greater
// of last_seen_at and completed_at) among the user's progress rows for the
// course. With no progress it defaults to the first lesson of the canonical
// order (scanning all modules, unlike the free-lesson lookup). Returns 0 when
// the course has no lessons at all.
func (s *Progress) CurrentLessonID(userID, courseID uint) (uint, error) {
	lessons, err := s.catalog.CanonicalLessons(courseID)
	if err != nil {
		return 0, err
	}
	if len(lessons) == 0 {
		return 0, nil
	}

	var rows []courseModels.LessonProgress
	err = s.db.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs(lessons)).Find(&rows).Error
	if err != nil {
		return 0, err
	}

	currentID := uint(0)
	var latest time.Time
	for _, row := range rows {
		seen := lastActivity(row)
		if seen == nil {
			continue
		}
		if currentID == 0 || seen.After(latest) {
			currentID = row.LessonID
			latest = *seen
		}
	}

	if currentID == 0 {
		currentID = lessons[0].ID
	}
	return currentID, nil
}

// NextLessonID is the lesson immediately after the current one in canonical
// order, or 0 when the current lesson is the last.
func (s *Progress) NextLessonID(userID, courseID uint) (uint, error) {
	currentID, err := s.CurrentLessonID(userID, courseID)
	if err != nil || currentID == 0 {
		return 0, err
	}

	lessons, err := s.catalog.CanonicalLessons(courseID)
	if err != nil {
		return 0, err
	}

	for i, lesson := range lessons {
		if lesson.ID == currentID && i < len(lessons)-1 {
			return lessons[i+1].ID, nil
		}
	}
	return 0, nil
}

// CompletedLessonIDs returns the subset of the given lessons the user has
// completed, for sidebar checkmarks.
func (s *Progress) CompletedLessonIDs(userID uint, ids []uint) (map[uint]bool, error) {
	completed := make(map[uint]bool)
	if len(ids) == 0 {
		return completed, nil
	}

	var rows []courseModels.LessonProgress
	err := s.db.Where("user_id = ? AND lesson_id IN ? AND completed_at IS NOT NULL", userID, ids).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		completed[row.LessonID] = true
	}
	return completed, nil
}

func lastActivity(row courseModels.LessonProgress) *time.Time {
	if row.LastSeenAt == nil {
		return row.CompletedAt
	}
	if row.CompletedAt != nil && row.CompletedAt.After(*row.LastSeenAt) {
		return row.CompletedAt
	}
	return row.LastSeenAt
}

func lessonIDs(lessons []courseModels.Lesson) []uint {
	ids := make([]uint, len(lessons))
	for i, lesson := range lessons {
		ids[i] = lesson.ID
	}
	return ids
}
