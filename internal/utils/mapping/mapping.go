package mapping

import (
	"github.com/testbanken/backoffice/internal/core/domain"
	"github.com/testbanken/backoffice/internal/models"
)

func ToDomainCountry(m models.Country) domain.Country {
	return domain.Country{
		CountryCode:          m.CountryCode,
		Name:                 m.Name,
		TelephoneCountryCode: m.TelephoneCountryCode,
	}
}

func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Address:     m.Address,
		City:        m.City,
		PostalCode:  m.PostalCode,
		Birthday:    m.Birthday,
		NationalID:  m.NationalID,
		Telephone:   m.Telephone,
		Email:       m.Email,
		CountryCode: m.CountryCode,
	}
}

func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		AccountType: domain.AccountType(m.AccountType),
		Created:     m.Created,
		Balance:     m.Balance,
		CustomerID:  m.CustomerID,
	}
}

func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Timestamp:       m.Timestamp,
		Amount:          m.Amount,
		NewBalance:      m.NewBalance,
		AccountID:       m.AccountID,
		Checked:         m.Checked,
	}
}
