package service

import (
	"context"
	"testing"

	"milhas-tracker/internal/model"
	"milhas-tracker/internal/valuation"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect to test database")

	// The pool must stay on one connection or each new connection gets
	// its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.LoyaltyProgram{},
		&model.FamilyMember{},
		&model.MemberProgram{},
		&model.ActivityLog{},
	)
	require.NoError(t, err, "failed to migrate database schema")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := model.User{Username: username, Password: "x", Name: username}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedMember(t *testing.T, db *gorm.DB, userID int64, name string) *model.FamilyMember {
	t.Helper()
	m := model.FamilyMember{UserID: userID, Name: name, Role: "extended"}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func seedProgram(t *testing.T, db *gorm.DB, name, company string) *model.LoyaltyProgram {
	t.Helper()
	p := model.LoyaltyProgram{Name: name, Company: company, LogoColor: "#7c3aed"}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func seedEnrollment(t *testing.T, db *gorm.DB, memberID, programID, points int64) *model.MemberProgram {
	t.Helper()
	mp := model.MemberProgram{MemberID: memberID, ProgramID: programID, PointsBalance: points}
	require.NoError(t, db.Create(&mp).Error)
	return &mp
}

func testServices(t *testing.T) (*gorm.DB, *valuation.Table, *ActivityService) {
	t.Helper()
	db := setupTestDB(t)
	return db, valuation.DefaultTable(), NewActivityService(db)
}

func activityCount(t *testing.T, db *gorm.DB, userID int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.ActivityLog{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

var ctx = context.Background()
