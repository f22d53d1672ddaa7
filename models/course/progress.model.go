package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress tracks a user's view/completion state for a lesson. One row
// per (user, lesson); last_seen_at is refreshed on every view, completed_at
// is set once and never cleared by the normal flow.
type LessonProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	LessonID    uint       `json:"lesson_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	LastSeenAt  *time.Time `json:"last_seen_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
