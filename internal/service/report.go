package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"milhas-tracker/internal/model"
	"milhas-tracker/internal/valuation"

	"github.com/google/uuid"
)

// ReportService builds the shareable WhatsApp summary: a pt-BR text
// report of every member's balances plus the dashboard totals, and a
// wa.me link carrying it.
type ReportService struct {
	dashboard *DashboardService
}

func NewReportService(dashboard *DashboardService) *ReportService {
	return &ReportService{dashboard: dashboard}
}

func (s *ReportService) WhatsApp(ctx context.Context, userID int64) (*model.WhatsAppReport, error) {
	members, err := s.dashboard.MembersWithPrograms(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.dashboard.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("✈️ *Milhas da Família*\n\n")
	for _, m := range members {
		sb.WriteString(fmt.Sprintf("*%s*\n", m.Name))
		if len(m.Programs) == 0 {
			sb.WriteString("  (nenhum programa)\n")
		}
		for _, p := range m.Programs {
			name := "?"
			if p.Program != nil {
				name = p.Program.Name
			}
			sb.WriteString(fmt.Sprintf("  %s: %s pts (%s)\n",
				name, valuation.FormatPoints(p.PointsBalance), p.EstimatedValue))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Total: %s pts em %d programas\n",
		valuation.FormatPoints(stats.TotalPoints), stats.ActivePrograms))
	sb.WriteString(fmt.Sprintf("Valor estimado: %s", stats.EstimatedValue))

	msg := sb.String()
	return &model.WhatsAppReport{
		Token:   uuid.NewString(),
		Message: msg,
		Link:    "https://wa.me/?text=" + url.QueryEscape(msg),
	}, nil
}
