package models

// Wallet document fields.
const (
	FieldName           = "name"
	FieldWalletType     = "type"
	FieldBalance        = "balance"
	FieldInitialBalance = "initialBalance"
	FieldCreditLimit    = "creditLimit" // absent when no limit applies
	FieldCurrency       = "currency"
)
