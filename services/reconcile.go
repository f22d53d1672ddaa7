package services

import (
	"lms/models"
	courseModels "lms/models/course"
	"strings"

	"gorm.io/gorm"
)

// ReconcileConfig maps a payment product to the single course it unlocks.
// Multi-course products are out of scope.
type ReconcileConfig struct {
	CourseID  uint   // course granted for a paid order; 0 disables the sync
	ProductID string // when set, only orders for this product are considered
}

// Reconciler is the one-way bridge from the orders table (written by the
// gateway callback) into the entitlement ledger. It is deliberately decoupled
// from the callback so access checks never depend on gateway availability;
// the ledger may lag the gateway's view by the callback delivery latency.
type Reconciler struct {
	db           *gorm.DB
	entitlements *Entitlements
	cfg          ReconcileConfig
}

func NewReconciler(db *gorm.DB, cfg ReconcileConfig) *Reconciler {
	return &Reconciler{db: db, entitlements: NewEntitlements(db), cfg: cfg}
}

// SyncFromOrders grants the configured course for every paid order belonging
// to the user's email. Idempotent, safe to call on every authenticated home
// load. Returns the number of orders matched.
func (s *Reconciler) SyncFromOrders(userID uint, email string) (int, error) {
	if s.cfg.CourseID == 0 {
		return 0, nil
	}
	email = strings.TrimSpace(email)
	if email == "" || userID == 0 {
		return 0, nil
	}

	var orders []models.Order
	err := s.db.Where("customer_email = ? AND status = ? AND is_deleted = ?", email, models.OrderStatusPaid, false).
		Find(&orders).Error
	if err != nil {
		return 0, err
	}

	granted := 0
	for _, order := range orders {
		if s.cfg.ProductID != "" && order.ProductID != s.cfg.ProductID {
			continue
		}
		orderID := order.ID
		if err := s.entitlements.Grant(userID, s.cfg.CourseID, courseModels.EntitlementSourceOrder, &orderID); err != nil {
			return granted, err
		}
		granted++
	}

	return granted, nil
}
