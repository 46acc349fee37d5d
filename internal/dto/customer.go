package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/testbanken/backoffice/internal/core/domain"
)

// RegisterCustomerRequest carries the profile fields for onboarding a new
// customer. Registration always opens one initial Checking account.
type RegisterCustomerRequest struct {
	FirstName   string    `json:"firstName" binding:"required,max=50"`
	LastName    string    `json:"lastName" binding:"required,max=50"`
	Address     string    `json:"address" binding:"required,max=50"`
	City        string    `json:"city" binding:"required,max=50"`
	PostalCode  string    `json:"postalCode" binding:"required,max=10"`
	Birthday    time.Time `json:"birthday" binding:"required"`
	NationalID  string    `json:"nationalID" binding:"required,max=20"`
	Telephone   string    `json:"telephone" binding:"required,max=20"`
	Email       string    `json:"email" binding:"required,email,max=50"`
	CountryCode string    `json:"countryCode" binding:"required,len=2"`
}

// CustomerResponse mirrors a registered customer and their initial account.
type CustomerResponse struct {
	CustomerID  int64           `json:"customerID"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	CountryCode string          `json:"countryCode"`
	AccountID   int64           `json:"accountID"`
	Balance     decimal.Decimal `json:"balance"`
}

// ToCustomerResponse maps a customer and their initial account.
func ToCustomerResponse(c *domain.Customer, a *domain.Account) CustomerResponse {
	return CustomerResponse{
		CustomerID:  c.CustomerID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		CountryCode: c.CountryCode,
		AccountID:   a.AccountID,
		Balance:     a.Balance,
	}
}
