package service

import (
	"context"
	"fmt"

	"milhas-tracker/internal/model"
	"milhas-tracker/internal/valuation"

	"gorm.io/gorm"
)

// EnrollmentService manages member_programs rows: one family member's
// account in one loyalty program, with its mutable points balance and
// credential fields. Balance writes are plain last-write-wins updates.
type EnrollmentService struct {
	db       *gorm.DB
	table    *valuation.Table
	activity *ActivityService
}

func NewEnrollmentService(db *gorm.DB, table *valuation.Table, activity *ActivityService) *EnrollmentService {
	return &EnrollmentService{db: db, table: table, activity: activity}
}

func (s *EnrollmentService) view(mp model.MemberProgram) model.EnrollmentView {
	company := ""
	if mp.Program != nil {
		company = mp.Program.Company
	}
	return model.EnrollmentView{
		MemberProgram:  mp,
		EstimatedValue: valuation.FormatBRL(s.table.Estimate(mp.PointsBalance, company)),
	}
}

// ListForMember returns a member's enrollments with their programs and
// read-time estimated values.
func (s *EnrollmentService) ListForMember(ctx context.Context, memberID int64) ([]model.EnrollmentView, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.FamilyMember{}).Where("id = ?", memberID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("query member: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, memberID)
	}

	var rows []model.MemberProgram
	err := s.db.WithContext(ctx).
		Preload("Program").
		Where("member_id = ?", memberID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query enrollments: %w", err)
	}

	views := make([]model.EnrollmentView, 0, len(rows))
	for _, mp := range rows {
		views = append(views, s.view(mp))
	}
	return views, nil
}

func (s *EnrollmentService) Enroll(ctx context.Context, userID int64, req model.EnrollRequest) (*model.EnrollmentView, error) {
	if req.PointsBalance < 0 {
		return nil, fmt.Errorf("%w: pointsBalance must be >= 0", ErrValidation)
	}

	var member model.FamilyMember
	if err := s.db.WithContext(ctx).First(&member, req.MemberID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: member %d", ErrNotFound, req.MemberID)
		}
		return nil, fmt.Errorf("query member: %w", err)
	}
	var program model.LoyaltyProgram
	if err := s.db.WithContext(ctx).First(&program, req.ProgramID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: program %d", ErrNotFound, req.ProgramID)
		}
		return nil, fmt.Errorf("query program: %w", err)
	}

	var existing int64
	err := s.db.WithContext(ctx).Model(&model.MemberProgram{}).
		Where("member_id = ? AND program_id = ?", req.MemberID, req.ProgramID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("query enrollment: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: member %d already enrolled in program %d", ErrValidation, req.MemberID, req.ProgramID)
	}

	mp := model.MemberProgram{
		MemberID:      req.MemberID,
		ProgramID:     req.ProgramID,
		AccountNumber: req.AccountNumber,
		PointsBalance: req.PointsBalance,
		AccountData:   req.AccountData,
	}
	if err := s.db.WithContext(ctx).Create(&mp).Error; err != nil {
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}
	mp.Program = &program

	s.activity.Record(ctx, userID, "enrollment.create",
		fmt.Sprintf("%s inscrito em %s", member.Name, program.Name),
		map[string]any{"memberId": member.ID, "programId": program.ID, "pointsBalance": mp.PointsBalance})

	v := s.view(mp)
	return &v, nil
}

func (s *EnrollmentService) Update(ctx context.Context, userID, id int64, req model.EnrollmentUpdate) (*model.EnrollmentView, error) {
	var mp model.MemberProgram
	if err := s.db.WithContext(ctx).Preload("Program").First(&mp, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: enrollment %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("query enrollment: %w", err)
	}
	if req.PointsBalance != nil {
		if *req.PointsBalance < 0 {
			return nil, fmt.Errorf("%w: pointsBalance must be >= 0", ErrValidation)
		}
		mp.PointsBalance = *req.PointsBalance
	}
	if req.AccountNumber != nil {
		mp.AccountNumber = *req.AccountNumber
	}
	if req.AccountData != nil {
		mp.AccountData = req.AccountData
	}
	if err := s.db.WithContext(ctx).Save(&mp).Error; err != nil {
		return nil, fmt.Errorf("update enrollment: %w", err)
	}

	s.activity.Record(ctx, userID, "enrollment.update", "Saldo atualizado",
		map[string]any{"enrollmentId": mp.ID, "pointsBalance": mp.PointsBalance})

	v := s.view(mp)
	return &v, nil
}

func (s *EnrollmentService) Delete(ctx context.Context, userID, id int64) error {
	var mp model.MemberProgram
	if err := s.db.WithContext(ctx).First(&mp, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: enrollment %d", ErrNotFound, id)
		}
		return fmt.Errorf("query enrollment: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&model.MemberProgram{}, id).Error; err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	s.activity.Record(ctx, userID, "enrollment.delete", "Conta removida",
		map[string]any{"enrollmentId": id, "memberId": mp.MemberID, "programId": mp.ProgramID})
	return nil
}
