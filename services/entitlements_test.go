package services

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGrantIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	course, _ := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	entitlements := NewEntitlements(db)

	require.NoError(t, entitlements.Grant(user.ID, course.ID, courseModels.EntitlementSourceAdmin, nil))
	require.NoError(t, entitlements.Grant(user.ID, course.ID, courseModels.EntitlementSourceAdmin, nil))

	var count int64
	require.NoError(t, db.Model(&courseModels.Entitlement{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	active, err := entitlements.IsActive(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestRevokeKeepsRow(t *testing.T) {
	db := openTestDB(t)
	course, _ := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	entitlements := NewEntitlements(db)
	require.NoError(t, entitlements.Grant(user.ID, course.ID, courseModels.EntitlementSourceAdmin, nil))

	require.NoError(t, entitlements.Revoke(user.ID, course.ID))

	var row courseModels.Entitlement
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&row).Error)
	assert.Equal(t, courseModels.EntitlementRevoked, row.Status)

	active, err := entitlements.IsActive(user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestRevokeMissingEntitlement(t *testing.T) {
	db := openTestDB(t)

	entitlements := NewEntitlements(db)

	err := entitlements.Revoke(42, 7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRegrantAfterRevoke(t *testing.T) {
	db := openTestDB(t)
	course, _ := seedCourse(t, db)
	user := seedUser(t, db, "student@example.com")

	entitlements := NewEntitlements(db)
	require.NoError(t, entitlements.Grant(user.ID, course.ID, courseModels.EntitlementSourceAdmin, nil))
	require.NoError(t, entitlements.Revoke(user.ID, course.ID))

	orderID := uint(10)
	require.NoError(t, entitlements.Grant(user.ID, course.ID, courseModels.EntitlementSourceOrder, &orderID))

	var row courseModels.Entitlement
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&row).Error)
	assert.Equal(t, courseModels.EntitlementActive, row.Status)
	assert.Equal(t, courseModels.EntitlementSourceOrder, row.Source)
	require.NotNil(t, row.OrderID)
	assert.Equal(t, orderID, *row.OrderID)

	var count int64
	require.NoError(t, db.Model(&courseModels.Entitlement{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
