package models

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account is the DB representation of a chart-of-accounts entry.
type Account struct {
	AccountID   string
	Code        string
	Name        string
	AccountType AccountType
	SubType     string
	Description string
	IsActive    bool
	AuditFields
}
