package course

import "gorm.io/gorm"

const (
	EntitlementActive  = "ACTIVE"
	EntitlementRevoked = "REVOKED"

	EntitlementSourceOrder = "ORDER"
	EntitlementSourceAdmin = "ADMIN"
)

// Entitlement grants paid-content access for a (user, course) pair. At most
// one row exists per pair; grants upsert on the composite key. Revoking flips
// the status but keeps the row, so the history of a one-time grant survives.
type Entitlement struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_entitlement_user_course;not null"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_entitlement_user_course;not null"`
	Status   string `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, REVOKED
	Source   string `json:"source" gorm:"default:'ADMIN'"`  // ORDER, ADMIN
	OrderID  *uint  `json:"order_id"`                       // back-reference when granted from a paid order
}
