package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
	portssvc "github.com/testbanken/backoffice/internal/core/ports/services"
	"github.com/testbanken/backoffice/internal/dto"
)

// reportingService serves the back-office overview aggregates.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetCountryStats returns per-country rows plus bank-wide totals.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GetCountryStats(ctx context.Context) (*dto.CountryStatsResponse, error) {
	stats, err := s.reportingRepo.CountryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve country stats: %w", err)
	}

	resp := &dto.CountryStatsResponse{Countries: stats}
	resp.Global.SumOfBalances = decimal.Zero
	for _, stat := range stats {
		resp.Global.NumberOfCustomers += stat.NumberOfCustomers
		resp.Global.NumberOfAccounts += stat.NumberOfAccounts
		resp.Global.SumOfBalances = resp.Global.SumOfBalances.Add(stat.SumOfBalances)
	}
	return resp, nil
}
