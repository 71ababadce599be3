package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/core/domain"
)

// CreateFundSourceRequest creates a new fund source.
type CreateFundSourceRequest struct {
	Name           string          `json:"name" binding:"required"`
	Code           string          `json:"code" binding:"required"`
	Type           string          `json:"type" binding:"required,oneof=CASH BANK EWALLET"`
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber"`
	AccountHolder  string          `json:"accountHolder"`
	Description    string          `json:"description"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Currency       string          `json:"currency"`
	IsDefault      bool            `json:"isDefault"`
}

// UpdateFundSourceRequest updates fund source metadata. Balances are never
// edited here; use the balance adjustment operation instead.
type UpdateFundSourceRequest struct {
	Name          *string `json:"name"`
	Code          *string `json:"code"`
	Type          *string `json:"type" binding:"omitempty,oneof=CASH BANK EWALLET"`
	BankName      *string `json:"bankName"`
	AccountNumber *string `json:"accountNumber"`
	AccountHolder *string `json:"accountHolder"`
	Description   *string `json:"description"`
	Status        *string `json:"status" binding:"omitempty,oneof=active inactive"`
	IsDefault     *bool   `json:"isDefault"`
}

// RecordFundTransactionRequest records a deposit or withdrawal.
type RecordFundTransactionRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	ReferenceType string          `json:"referenceType"`
	ReferenceID   string          `json:"referenceID"`
}

// AdjustBalanceRequest reconciles a fund source to an exact balance.
type AdjustBalanceRequest struct {
	NewBalance decimal.Decimal `json:"newBalance" binding:"required"`
	Reason     string          `json:"reason" binding:"required"`
}

// CreateFundTransferRequest moves funds between two sources.
type CreateFundTransferRequest struct {
	FromFundSourceID string          `json:"fromFundSourceID" binding:"required"`
	ToFundSourceID   string          `json:"toFundSourceID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	TransferFee      decimal.Decimal `json:"transferFee"`
	Description      string          `json:"description"`
	TransferDate     *time.Time      `json:"transferDate"`
}

// ListFundSourcesParams filters fund source listing.
type ListFundSourcesParams struct {
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	Type   string `form:"type" binding:"omitempty,oneof=CASH BANK EWALLET"`
	Search string `form:"search"`
}

// ListFundTransactionsParams filters one fund source's ledger history.
type ListFundTransactionsParams struct {
	Type     string     `form:"type"`
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit    int        `form:"limit"`
}

// ListFundTransfersParams filters fund transfer listing.
type ListFundTransfersParams struct {
	FundSourceID string     `form:"fundSourceID"`
	DateFrom     *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo       *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// FundSourceResponse mirrors a fund source for API consumers.
type FundSourceResponse struct {
	FundSourceID   string          `json:"fundSourceID"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	Type           string          `json:"type"`
	BankName       string          `json:"bankName,omitempty"`
	AccountNumber  string          `json:"accountNumber,omitempty"`
	AccountHolder  string          `json:"accountHolder,omitempty"`
	Description    string          `json:"description,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Currency       string          `json:"currency"`
	IsDefault      bool            `json:"isDefault"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToFundSourceResponse converts a domain fund source to its response DTO.
func ToFundSourceResponse(s *domain.FundSource) FundSourceResponse {
	return FundSourceResponse{
		FundSourceID:   s.FundSourceID,
		Name:           s.Name,
		Code:           s.Code,
		Type:           string(s.Type),
		BankName:       s.BankName,
		AccountNumber:  s.AccountNumber,
		AccountHolder:  s.AccountHolder,
		Description:    s.Description,
		OpeningBalance: s.OpeningBalance,
		CurrentBalance: s.CurrentBalance,
		Currency:       s.Currency,
		IsDefault:      s.IsDefault,
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
	}
}

// ToFundSourceResponses converts a slice of domain fund sources.
func ToFundSourceResponses(sources []domain.FundSource) []FundSourceResponse {
	responses := make([]FundSourceResponse, len(sources))
	for i := range sources {
		responses[i] = ToFundSourceResponse(&sources[i])
	}
	return responses
}

// FundTransactionResponse mirrors a fund ledger entry for API consumers.
type FundTransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	FundSourceID    string          `json:"fundSourceID"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
	ReferenceType   string          `json:"referenceType,omitempty"`
	ReferenceID     string          `json:"referenceID,omitempty"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// ToFundTransactionResponse converts a domain fund ledger entry to its response DTO.
func ToFundTransactionResponse(txn *domain.FundTransaction) FundTransactionResponse {
	return FundTransactionResponse{
		TransactionID:   txn.TransactionID,
		FundSourceID:    txn.FundSourceID,
		Type:            string(txn.Type),
		Amount:          txn.Amount,
		RunningBalance:  txn.RunningBalance,
		ReferenceType:   txn.ReferenceType,
		ReferenceID:     txn.ReferenceID,
		Description:     txn.Description,
		TransactionDate: txn.TransactionDate,
	}
}

// ToFundTransactionResponses converts fund ledger entries.
func ToFundTransactionResponses(txns []domain.FundTransaction) []FundTransactionResponse {
	responses := make([]FundTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToFundTransactionResponse(&txns[i])
	}
	return responses
}

// FundTransferResponse mirrors a fund transfer for API consumers.
type FundTransferResponse struct {
	TransferID       string          `json:"transferID"`
	TransferNumber   string          `json:"transferNumber"`
	FromFundSourceID string          `json:"fromFundSourceID"`
	FromName         string          `json:"fromName,omitempty"`
	ToFundSourceID   string          `json:"toFundSourceID"`
	ToName           string          `json:"toName,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	TransferFee      decimal.Decimal `json:"transferFee"`
	NetAmount        decimal.Decimal `json:"netAmount"`
	Description      string          `json:"description,omitempty"`
	Status           string          `json:"status"`
	TransferDate     time.Time       `json:"transferDate"`
}

// ToFundTransferResponse converts a domain fund transfer to its response DTO.
func ToFundTransferResponse(t *domain.FundTransfer) FundTransferResponse {
	return FundTransferResponse{
		TransferID:       t.TransferID,
		TransferNumber:   t.TransferNumber,
		FromFundSourceID: t.FromFundSourceID,
		FromName:         t.FromName,
		ToFundSourceID:   t.ToFundSourceID,
		ToName:           t.ToName,
		Amount:           t.Amount,
		TransferFee:      t.TransferFee,
		NetAmount:        t.NetAmount,
		Description:      t.Description,
		Status:           t.Status,
		TransferDate:     t.TransferDate,
	}
}

// ToFundTransferResponses converts a slice of domain fund transfers.
func ToFundTransferResponses(transfers []domain.FundTransfer) []FundTransferResponse {
	responses := make([]FundTransferResponse, len(transfers))
	for i := range transfers {
		responses[i] = ToFundTransferResponse(&transfers[i])
	}
	return responses
}
