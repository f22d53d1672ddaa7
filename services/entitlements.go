package services

import (
	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entitlements is the ledger of paid-content access per (user, course).
// Grants are idempotent upserts on the composite key; revoking keeps the row.
type Entitlements struct {
	db *gorm.DB
}

func NewEntitlements(db *gorm.DB) *Entitlements {
	return &Entitlements{db: db}
}

// Grant upserts the (user, course) entitlement to ACTIVE. Calling it twice
// leaves exactly one row.
func (s *Entitlements) Grant(userID, courseID uint, source string, orderID *uint) error {
	entitlement := courseModels.Entitlement{
		UserID:   userID,
		CourseID: courseID,
		Status:   courseModels.EntitlementActive,
		Source:   source,
		OrderID:  orderID,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "source", "order_id", "updated_at"}),
	}).Create(&entitlement).Error
}

// Revoke flips the entitlement to REVOKED. The row is preserved so the
// history of a one-time grant survives.
func (s *Entitlements) Revoke(userID, courseID uint) error {
	result := s.db.Model(&courseModels.Entitlement{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("status", courseModels.EntitlementRevoked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsActive reports whether the user holds an ACTIVE entitlement for the course.
func (s *Entitlements) IsActive(userID, courseID uint) (bool, error) {
	var count int64
	err := s.db.Model(&courseModels.Entitlement{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, courseModels.EntitlementActive).
		Count(&count).Error
	return count > 0, err
}
