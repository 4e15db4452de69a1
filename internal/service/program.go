package service

import (
	"context"
	"fmt"

	"milhas-tracker/internal/model"

	"gorm.io/gorm"
)

type ProgramService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewProgramService(db *gorm.DB, activity *ActivityService) *ProgramService {
	return &ProgramService{db: db, activity: activity}
}

func (s *ProgramService) List(ctx context.Context) ([]model.LoyaltyProgram, error) {
	var programs []model.LoyaltyProgram
	if err := s.db.WithContext(ctx).Order("name").Find(&programs).Error; err != nil {
		return nil, fmt.Errorf("query programs: %w", err)
	}
	if programs == nil {
		programs = []model.LoyaltyProgram{}
	}
	return programs, nil
}

func (s *ProgramService) Get(ctx context.Context, id int64) (*model.LoyaltyProgram, error) {
	var p model.LoyaltyProgram
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: program %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("query program: %w", err)
	}
	return &p, nil
}

func (s *ProgramService) Create(ctx context.Context, userID int64, req model.ProgramRequest) (*model.LoyaltyProgram, error) {
	if req.PointValuePerThousand != nil && *req.PointValuePerThousand < 0 {
		return nil, fmt.Errorf("%w: pointValuePerThousand must be >= 0", ErrValidation)
	}
	p := model.LoyaltyProgram{
		Name:                  req.Name,
		Company:               req.Company,
		LogoColor:             req.LogoColor,
		Website:               req.Website,
		PointValuePerThousand: req.PointValuePerThousand,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("insert program: %w", err)
	}
	s.activity.Record(ctx, userID, "program.create", "Programa adicionado: "+p.Name,
		map[string]any{"programId": p.ID})
	return &p, nil
}

func (s *ProgramService) Update(ctx context.Context, userID, id int64, req model.ProgramRequest) (*model.LoyaltyProgram, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.PointValuePerThousand != nil && *req.PointValuePerThousand < 0 {
		return nil, fmt.Errorf("%w: pointValuePerThousand must be >= 0", ErrValidation)
	}
	p.Name = req.Name
	p.Company = req.Company
	if req.LogoColor != "" {
		p.LogoColor = req.LogoColor
	}
	if req.Website != "" {
		p.Website = req.Website
	}
	if req.PointValuePerThousand != nil {
		p.PointValuePerThousand = req.PointValuePerThousand
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("update program: %w", err)
	}
	s.activity.Record(ctx, userID, "program.update", "Programa atualizado: "+p.Name,
		map[string]any{"programId": p.ID})
	return p, nil
}

// Delete removes the program and cascades to every enrollment in it.
func (s *ProgramService) Delete(ctx context.Context, userID, id int64) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("program_id = ?", id).Delete(&model.MemberProgram{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.LoyaltyProgram{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	s.activity.Record(ctx, userID, "program.delete", "Programa removido: "+p.Name,
		map[string]any{"programId": id})
	return nil
}
