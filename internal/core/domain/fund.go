package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundSourceType classifies where a fund balance lives.
type FundSourceType string

const (
	FundSourceCash    FundSourceType = "CASH"
	FundSourceBank    FundSourceType = "BANK"
	FundSourceEWallet FundSourceType = "EWALLET"
)

// FundSourceStatus is the lifecycle state of a fund source.
type FundSourceStatus string

const (
	FundSourceActive   FundSourceStatus = "active"
	FundSourceInactive FundSourceStatus = "inactive"
)

// FundTransactionType classifies a fund ledger entry. Amount on the entry is
// always a positive magnitude; the type determines the sign of its effect.
type FundTransactionType string

const (
	FundOpeningBalance FundTransactionType = "OPENING_BALANCE"
	FundDeposit        FundTransactionType = "DEPOSIT"
	FundWithdrawal     FundTransactionType = "WITHDRAWAL"
	FundTransferIn     FundTransactionType = "TRANSFER_IN"
	FundTransferOut    FundTransactionType = "TRANSFER_OUT"
	FundAdjustment     FundTransactionType = "ADJUSTMENT"
)

// SignedEffect returns the signed balance effect of an entry of this type
// with the given positive amount. Adjustment entries carry their own sign
// decision and are handled by the caller.
func (t FundTransactionType) SignedEffect(amount decimal.Decimal) decimal.Decimal {
	switch t {
	case FundWithdrawal, FundTransferOut:
		return amount.Neg()
	default:
		return amount
	}
}

// FundSource is a cash, bank or e-wallet balance. CurrentBalance is the
// running balance; it must always equal the signed sum of the source's fund
// transactions, the opening balance being recorded as the first entry.
type FundSource struct {
	FundSourceID   string           `json:"fundSourceID"`
	Name           string           `json:"name"`
	Code           string           `json:"code"`
	Type           FundSourceType   `json:"type"`
	BankName       string           `json:"bankName,omitempty"`
	AccountNumber  string           `json:"accountNumber,omitempty"`
	AccountHolder  string           `json:"accountHolder,omitempty"`
	Description    string           `json:"description,omitempty"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	CurrentBalance decimal.Decimal  `json:"currentBalance"`
	Currency       string           `json:"currency"`
	IsDefault      bool             `json:"isDefault"`
	Status         FundSourceStatus `json:"status"`
	AuditFields
}

// FundTransaction is an immutable fund ledger entry. RunningBalance is the
// fund source balance immediately after the entry was applied. Entries are
// append-only and are never mutated or deleted.
type FundTransaction struct {
	TransactionID   string              `json:"transactionID"`
	FundSourceID    string              `json:"fundSourceID"`
	Type            FundTransactionType `json:"type"`
	Amount          decimal.Decimal     `json:"amount"`
	RunningBalance  decimal.Decimal     `json:"runningBalance"`
	ReferenceType   string              `json:"referenceType,omitempty"`
	ReferenceID     string              `json:"referenceID,omitempty"`
	Description     string              `json:"description"`
	TransactionDate time.Time           `json:"transactionDate"`
	CreatedBy       string              `json:"createdBy"`
}

// FundTransfer is a two-sided fund movement between sources. The source is
// debited Amount plus TransferFee; the destination is credited NetAmount
// (Amount minus TransferFee). Both sides post in one transaction.
type FundTransfer struct {
	TransferID       string          `json:"transferID"`
	TransferNumber   string          `json:"transferNumber"`
	FromFundSourceID string          `json:"fromFundSourceID"`
	ToFundSourceID   string          `json:"toFundSourceID"`
	Amount           decimal.Decimal `json:"amount"`
	TransferFee      decimal.Decimal `json:"transferFee"`
	NetAmount        decimal.Decimal `json:"netAmount"`
	Description      string          `json:"description,omitempty"`
	Status           string          `json:"status"`
	TransferDate     time.Time       `json:"transferDate"`
	CreatedBy        string          `json:"createdBy"`
	CreatedAt        time.Time       `json:"createdAt"`
	FromName         string          `json:"fromName,omitempty"`
	ToName           string          `json:"toName,omitempty"`
}
