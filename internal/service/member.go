package service

import (
	"context"
	"fmt"

	"milhas-tracker/internal/model"

	"gorm.io/gorm"
)

type MemberService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewMemberService(db *gorm.DB, activity *ActivityService) *MemberService {
	return &MemberService{db: db, activity: activity}
}

func validRole(role string) bool {
	switch role {
	case "primary", "extended", "view_only":
		return true
	}
	return false
}

func (s *MemberService) List(ctx context.Context, userID int64) ([]model.FamilyMember, error) {
	var members []model.FamilyMember
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	if members == nil {
		members = []model.FamilyMember{}
	}
	return members, nil
}

func (s *MemberService) Get(ctx context.Context, id int64) (*model.FamilyMember, error) {
	var m model.FamilyMember
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: member %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("query member: %w", err)
	}
	return &m, nil
}

func (s *MemberService) Create(ctx context.Context, userID int64, req model.MemberRequest) (*model.FamilyMember, error) {
	if req.Role == "" {
		req.Role = "extended"
	}
	if !validRole(req.Role) {
		return nil, fmt.Errorf("%w: role %q", ErrValidation, req.Role)
	}
	m := model.FamilyMember{
		UserID:       userID,
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		FrameColor:   req.FrameColor,
		ProfileEmoji: req.ProfileEmoji,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	s.activity.Record(ctx, userID, "member.create", "Membro adicionado: "+m.Name,
		map[string]any{"memberId": m.ID})
	return &m, nil
}

func (s *MemberService) Update(ctx context.Context, id int64, req model.MemberRequest) (*model.FamilyMember, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Role != "" && !validRole(req.Role) {
		return nil, fmt.Errorf("%w: role %q", ErrValidation, req.Role)
	}
	m.Name = req.Name
	if req.Email != "" {
		m.Email = req.Email
	}
	if req.Role != "" {
		m.Role = req.Role
	}
	if req.FrameColor != "" {
		m.FrameColor = req.FrameColor
	}
	if req.ProfileEmoji != "" {
		m.ProfileEmoji = req.ProfileEmoji
	}
	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	s.activity.Record(ctx, m.UserID, "member.update", "Membro atualizado: "+m.Name,
		map[string]any{"memberId": m.ID})
	return m, nil
}

// Delete removes the member and all of its enrollments in one
// transaction, mirroring the FK cascade on engines that enforce it.
func (s *MemberService) Delete(ctx context.Context, id int64) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&model.MemberProgram{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.FamilyMember{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	s.activity.Record(ctx, m.UserID, "member.delete", "Membro removido: "+m.Name,
		map[string]any{"memberId": id})
	return nil
}
