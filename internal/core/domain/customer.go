package domain

import "time"

// Customer represents an account holder. A customer always owns at least one
// account; the first one is opened together with the customer at registration.
type Customer struct {
	CustomerID  int64     `json:"customerID"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postalCode"`
	Birthday    time.Time `json:"birthday"`
	NationalID  string    `json:"nationalID"`
	Telephone   string    `json:"telephone"`
	Email       string    `json:"email"`
	CountryCode string    `json:"countryCode"`
}

// FullName returns the display name used in audit reports.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
