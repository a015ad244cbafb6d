package models

// Transaction document fields.
const (
	FieldWalletID           = "walletId"
	FieldToWalletID         = "toWalletId" // transfers only
	FieldAmount             = "amount"
	FieldTransactionType    = "type"
	FieldCategory           = "category"
	FieldDate               = "date"
	FieldReason             = "reason"
	FieldNotes              = "notes"
	FieldExpectedReturnDate = "expectedReturnDate"
)
