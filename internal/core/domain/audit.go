package domain

// FlaggedCustomer aggregates everything the audit sweep flagged for one
// customer: the accounts involved and the transactions that tripped a rule.
// ID sets are deduplicated; the same transaction id never appears twice.
type FlaggedCustomer struct {
	CustomerID     int64              `json:"customerID"`
	FirstName      string             `json:"firstName"`
	LastName       string             `json:"lastName"`
	AccountIDs     map[int64]struct{} `json:"-"`
	TransactionIDs map[int64]struct{} `json:"-"`
}

// NewFlaggedCustomer initializes the id sets for a customer.
func NewFlaggedCustomer(c Customer) *FlaggedCustomer {
	return &FlaggedCustomer{
		CustomerID:     c.CustomerID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		AccountIDs:     make(map[int64]struct{}),
		TransactionIDs: make(map[int64]struct{}),
	}
}

// AddTransaction records a flagged transaction and the account it belongs to.
func (f *FlaggedCustomer) AddTransaction(txnID, accountID int64) {
	f.TransactionIDs[txnID] = struct{}{}
	f.AccountIDs[accountID] = struct{}{}
}

// HasFindings reports whether any rule flagged something for this customer.
func (f *FlaggedCustomer) HasFindings() bool {
	return len(f.TransactionIDs) > 0 || len(f.AccountIDs) > 0
}
