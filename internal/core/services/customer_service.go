package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/testbanken/backoffice/internal/apperrors"
	"github.com/testbanken/backoffice/internal/core/domain"
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
	portssvc "github.com/testbanken/backoffice/internal/core/ports/services"
	"github.com/testbanken/backoffice/internal/dto"
	"github.com/testbanken/backoffice/internal/middleware"
)

// customerService handles onboarding. Every new customer gets exactly one
// initial Checking account, created atomically with the customer record.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	countryRepo  portsrepo.CountryRepositoryFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, countryRepo portsrepo.CountryRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		countryRepo:  countryRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// RegisterCustomer creates a customer with their initial Checking account.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) RegisterCustomer(ctx context.Context, req dto.RegisterCustomerRequest) (*domain.Customer, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.countryRepo.FindCountryByCode(ctx, req.CountryCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: unsupported country %q", apperrors.ErrValidation, req.CountryCode)
		}
		logger.Error("Failed to resolve country for registration", slog.String("country_code", req.CountryCode), slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to resolve country %s: %w", req.CountryCode, err)
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     req.Address,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Birthday:    req.Birthday,
		NationalID:  req.NationalID,
		Telephone:   req.Telephone,
		Email:       req.Email,
		CountryCode: req.CountryCode,
	}
	initialAccount := domain.Account{
		AccountType: domain.Checking,
		Created:     now,
		Balance:     decimal.Zero,
	}

	savedCustomer, savedAccount, err := s.customerRepo.SaveCustomer(ctx, customer, initialAccount)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil, fmt.Errorf("%w: national id is already associated with a customer", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save customer", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer registered",
		slog.Int64("customer_id", savedCustomer.CustomerID),
		slog.Int64("account_id", savedAccount.AccountID),
	)
	return savedCustomer, savedAccount, nil
}

// GetCustomer resolves a customer by id.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %d: %w", customerID, err)
	}
	return customer, nil
}
