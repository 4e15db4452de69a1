package service

import (
	"context"
	"fmt"

	"milhas-tracker/internal/model"
	"milhas-tracker/internal/valuation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardService computes the per-user summary the dashboard cards
// show. Every call re-runs the queries against current state: with a
// handful of members times a handful of programs there is nothing
// worth caching. The queries are independent reads, not a transaction,
// so a concurrent balance update may be half-visible; fine for a
// family tool, and any query error aborts the whole aggregation.
type DashboardService struct {
	db    *gorm.DB
	table *valuation.Table
}

func NewDashboardService(db *gorm.DB, table *valuation.Table) *DashboardService {
	return &DashboardService{db: db, table: table}
}

func (s *DashboardService) Stats(ctx context.Context, userID int64) (*model.DashboardStats, error) {
	db := s.db.WithContext(ctx)

	var totalMembers int64
	err := db.Model(&model.FamilyMember{}).
		Where("user_id = ?", userID).
		Count(&totalMembers).Error
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}

	var activePrograms int64
	err = db.Model(&model.MemberProgram{}).
		Joins("JOIN family_members ON family_members.id = member_programs.member_id").
		Where("family_members.user_id = ?", userID).
		Distinct("member_programs.program_id").
		Count(&activePrograms).Error
	if err != nil {
		return nil, fmt.Errorf("count active programs: %w", err)
	}

	var totalPoints int64
	err = db.Model(&model.MemberProgram{}).
		Joins("JOIN family_members ON family_members.id = member_programs.member_id").
		Where("family_members.user_id = ?", userID).
		Select("COALESCE(SUM(member_programs.points_balance), 0)").
		Scan(&totalPoints).Error
	if err != nil {
		return nil, fmt.Errorf("sum points: %w", err)
	}

	// Points grouped by the program's company; zero balances carry no
	// value and are filtered before grouping.
	var groups []struct {
		Company string
		Points  int64
	}
	err = db.Model(&model.MemberProgram{}).
		Select("loyalty_programs.company AS company, SUM(member_programs.points_balance) AS points").
		Joins("JOIN family_members ON family_members.id = member_programs.member_id").
		Joins("JOIN loyalty_programs ON loyalty_programs.id = member_programs.program_id").
		Where("family_members.user_id = ? AND member_programs.points_balance > 0", userID).
		Group("loyalty_programs.company").
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("group points by company: %w", err)
	}

	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(s.table.Estimate(g.Points, g.Company))
	}

	return &model.DashboardStats{
		TotalMembers:   totalMembers,
		ActivePrograms: activePrograms,
		TotalPoints:    totalPoints,
		EstimatedValue: valuation.FormatBRL(total),
	}, nil
}

// MembersWithPrograms returns a user's members with nested enrollments,
// each carrying its program and read-time estimated value.
func (s *DashboardService) MembersWithPrograms(ctx context.Context, userID int64) ([]model.MemberWithPrograms, error) {
	db := s.db.WithContext(ctx)

	var members []model.FamilyMember
	if err := db.Where("user_id = ?", userID).Order("id").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	if len(members) == 0 {
		return []model.MemberWithPrograms{}, nil
	}

	memberIDs := make([]int64, len(members))
	for i, m := range members {
		memberIDs[i] = m.ID
	}

	var rows []model.MemberProgram
	err := db.Preload("Program").
		Where("member_id IN ?", memberIDs).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query enrollments: %w", err)
	}

	byMember := make(map[int64][]model.EnrollmentView, len(members))
	for _, mp := range rows {
		company := ""
		if mp.Program != nil {
			company = mp.Program.Company
		}
		byMember[mp.MemberID] = append(byMember[mp.MemberID], model.EnrollmentView{
			MemberProgram:  mp,
			EstimatedValue: valuation.FormatBRL(s.table.Estimate(mp.PointsBalance, company)),
		})
	}

	out := make([]model.MemberWithPrograms, 0, len(members))
	for _, m := range members {
		programs := byMember[m.ID]
		if programs == nil {
			programs = []model.EnrollmentView{}
		}
		out = append(out, model.MemberWithPrograms{FamilyMember: m, Programs: programs})
	}
	return out, nil
}
