package services

import (
	"errors"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// ErrLessonNotFound is returned when a lesson cannot be resolved to a course.
// Callers must surface this as not-found, never as a paywall denial.
var ErrLessonNotFound = errors.New("lesson not found")

// Decision is the outcome of a lesson-view authorization. When Allowed is
// false the course title is carried for the paywall message.
type Decision struct {
	Allowed       bool   `json:"allowed"`
	IsFirstLesson bool   `json:"is_first_lesson"`
	CourseID      uint   `json:"course_id"`
	CourseTitle   string `json:"course_title"`
}

// Access decides whether a user may view a lesson: the course's first lesson
// is free for everyone, the rest require an ACTIVE entitlement. It is a pure
// predicate; recording the view is the caller's concern.
type Access struct {
	db           *gorm.DB
	catalog      *Catalog
	entitlements *Entitlements
}

func NewAccess(db *gorm.DB, firstLessonOverride uint) *Access {
	return &Access{
		db:           db,
		catalog:      NewCatalog(db, firstLessonOverride),
		entitlements: NewEntitlements(db),
	}
}

// AuthorizeLessonView resolves the lesson's owning course and applies the
// paywall rule. Returns ErrLessonNotFound when the lesson, its module or its
// course does not exist.
func (s *Access) AuthorizeLessonView(userID, lessonID uint) (Decision, error) {
	var lesson courseModels.Lesson
	if err := s.db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Decision{}, ErrLessonNotFound
		}
		return Decision{}, err
	}

	var module courseModels.Module
	if err := s.db.Where("id = ? AND is_deleted = ?", lesson.ModuleID, false).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Decision{}, ErrLessonNotFound
		}
		return Decision{}, err
	}

	var course courseModels.Course
	if err := s.db.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Decision{}, ErrLessonNotFound
		}
		return Decision{}, err
	}

	decision := Decision{
		CourseID:    course.ID,
		CourseTitle: course.Title,
	}

	firstLessonID, err := s.catalog.FirstLessonID(course.ID)
	if err != nil && !errors.Is(err, ErrNoFreeLesson) {
		return Decision{}, err
	}

	// Free preview: the first lesson is open regardless of entitlement.
	if firstLessonID != 0 && lessonID == firstLessonID {
		decision.Allowed = true
		decision.IsFirstLesson = true
		return decision, nil
	}

	active, err := s.entitlements.IsActive(userID, course.ID)
	if err != nil {
		return Decision{}, err
	}

	decision.Allowed = active
	return decision, nil
}
