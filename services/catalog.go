package services

import (
	"errors"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// ErrNoFreeLesson is returned when a course has no modules, or its first
// module has no lessons. The lookup does not fall through to later modules.
var ErrNoFreeLesson = errors.New("course has no free lesson")

// Catalog answers ordering questions about a course: which lesson is the free
// first lesson, and what the canonical lesson sequence is (modules ascending
// by sort_order, lessons ascending by sort_order within each module).
type Catalog struct {
	db *gorm.DB

	// firstLessonOverride pins the free lesson for every course when > 0,
	// for deployments where the dynamic lookup is unreliable.
	firstLessonOverride uint
}

func NewCatalog(db *gorm.DB, firstLessonOverride uint) *Catalog {
	return &Catalog{db: db, firstLessonOverride: firstLessonOverride}
}

// FirstLessonID resolves the course's free lesson: the lowest-ordered lesson
// of the lowest-ordered module. The operator override wins unconditionally.
func (s *Catalog) FirstLessonID(courseID uint) (uint, error) {
	if s.firstLessonOverride > 0 {
		return s.firstLessonOverride, nil
	}

	var module courseModels.Module
	err := s.db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("sort_order asc, id asc").First(&module).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoFreeLesson
		}
		return 0, err
	}

	var lesson courseModels.Lesson
	err = s.db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
		Order("sort_order asc, id asc").First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First module is empty: no free lesson, even when later
			// modules have lessons.
			return 0, ErrNoFreeLesson
		}
		return 0, err
	}

	return lesson.ID, nil
}

// Modules returns the course's modules in canonical order.
func (s *Catalog) Modules(courseID uint) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	err := s.db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("sort_order asc, id asc").Find(&modules).Error
	return modules, err
}

// CanonicalLessons returns every lesson of the course in canonical order.
func (s *Catalog) CanonicalLessons(courseID uint) ([]courseModels.Lesson, error) {
	modules, err := s.Modules(courseID)
	if err != nil {
		return nil, err
	}

	var ordered []courseModels.Lesson
	for _, module := range modules {
		var lessons []courseModels.Lesson
		err := s.db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Order("sort_order asc, id asc").Find(&lessons).Error
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, lessons...)
	}

	return ordered, nil
}
