package service

import (
	"context"
	"fmt"

	"milhas-tracker/internal/logger"
	"milhas-tracker/internal/model"

	"gorm.io/gorm"
)

type ActivityService struct{ db *gorm.DB }

func NewActivityService(db *gorm.DB) *ActivityService { return &ActivityService{db: db} }

// Record appends one audit entry. Best effort: a failed insert is
// logged and swallowed so audit trouble never fails the mutation that
// triggered it.
func (s *ActivityService) Record(ctx context.Context, userID int64, action, description string, metadata map[string]any) {
	entry := model.ActivityLog{
		UserID:      userID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		logger.Warn("activity.record failed", "action", action, "err", err)
	}
}

// List returns the most recent entries for a user, newest first.
func (s *ActivityService) List(ctx context.Context, userID int64, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []model.ActivityLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	if entries == nil {
		entries = []model.ActivityLog{}
	}
	return entries, nil
}
