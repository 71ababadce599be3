package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/apperrors"
	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
	portssvc "github.com/inventra/inventra_backend/internal/core/ports/services"
	"github.com/inventra/inventra_backend/internal/dto"
	"github.com/inventra/inventra_backend/internal/middleware"
)

const (
	fundSourceResource      = "FUND_SOURCE"
	fundTransactionResource = "FUND_TRANSACTION"
	fundTransferResource    = "FUND_TRANSFER"
)

// fundService provides fund source management and fund ledger operations.
type fundService struct {
	fundRepo  portsrepo.FundRepositoryWithTx
	auditRepo portsrepo.AuditRecorder
}

// NewFundService creates a new FundService.
func NewFundService(fundRepo portsrepo.FundRepositoryWithTx, auditRepo portsrepo.AuditRecorder) portssvc.FundSvcFacade {
	return &fundService{
		fundRepo:  fundRepo,
		auditRepo: auditRepo,
	}
}

var _ portssvc.FundSvcFacade = (*fundService)(nil)

// CreateFundSource creates a fund source. A non-zero opening balance writes
// an OPENING_BALANCE ledger entry in the same transaction, so the running
// balance invariant holds from the first row.
func (s *fundService) CreateFundSource(ctx context.Context, req dto.CreateFundSourceRequest, creatorUserID string) (*domain.FundSource, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.fundRepo.FindFundSourceByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check fund source code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: fund source code %s", apperrors.ErrDuplicate, req.Code)
	}

	now := time.Now().UTC()
	currency := req.Currency
	if currency == "" {
		currency = "PHP"
	}

	source := domain.FundSource{
		FundSourceID:   uuid.NewString(),
		Name:           req.Name,
		Code:           req.Code,
		Type:           domain.FundSourceType(req.Type),
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		AccountHolder:  req.AccountHolder,
		Description:    req.Description,
		OpeningBalance: req.OpeningBalance,
		Currency:       currency,
		IsDefault:      req.IsDefault,
		Status:         domain.FundSourceActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	err = runInTx(ctx, s.fundRepo, func(tx pgx.Tx) error {
		if err := s.fundRepo.CreateFundSource(ctx, tx, source); err != nil {
			return fmt.Errorf("failed to save fund source: %w", err)
		}

		if !req.OpeningBalance.IsZero() {
			if _, err := s.fundRepo.FindFundSourceForUpdate(ctx, tx, source.FundSourceID); err != nil {
				return fmt.Errorf("failed to lock fund source: %w", err)
			}
			meta := portsrepo.FundDeltaMeta{
				Type:            domain.FundOpeningBalance,
				Amount:          req.OpeningBalance.Abs(),
				Description:     "Opening balance",
				TransactionDate: now,
				CreatedBy:       creatorUserID,
				AllowNegative:   true,
			}
			if _, err := s.fundRepo.ApplyFundDelta(ctx, tx, source.FundSourceID, req.OpeningBalance, meta); err != nil {
				return fmt.Errorf("failed to record opening balance: %w", err)
			}
		}

		return s.recordAudit(ctx, tx, creatorUserID, domain.AuditCreate, fundSourceResource, source.FundSourceID, map[string]any{
			"code": source.Code,
		})
	})
	if err != nil {
		logger.Error("Failed to create fund source", "error", err.Error())
		return nil, err
	}

	logger.Info("Fund source created", "fund_source_id", source.FundSourceID, "code", source.Code)
	return s.fundRepo.FindFundSourceByID(ctx, source.FundSourceID)
}

// GetFundSourceByID retrieves a specific fund source.
func (s *fundService) GetFundSourceByID(ctx context.Context, fundSourceID string) (*domain.FundSource, error) {
	source, err := s.fundRepo.FindFundSourceByID(ctx, fundSourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fund source %s: %w", fundSourceID, err)
	}
	return source, nil
}

// ListFundSources retrieves fund sources matching the filter params.
func (s *fundService) ListFundSources(ctx context.Context, params dto.ListFundSourcesParams) ([]domain.FundSource, error) {
	filter := portsrepo.FundSourceFilter{
		Status: domain.FundSourceStatus(params.Status),
		Type:   domain.FundSourceType(params.Type),
		Search: params.Search,
	}
	sources, err := s.fundRepo.ListFundSources(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund sources: %w", err)
	}
	return sources, nil
}

// UpdateFundSource updates fund source metadata. Balances are never edited
// here; reconciliation goes through AdjustBalance.
func (s *fundService) UpdateFundSource(ctx context.Context, fundSourceID string, req dto.UpdateFundSourceRequest, requestingUserID string) (*domain.FundSource, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := s.fundRepo.FindFundSourceByID(ctx, fundSourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fund source %s: %w", fundSourceID, err)
	}

	if req.Code != nil && *req.Code != source.Code {
		existing, err := s.fundRepo.FindFundSourceByCode(ctx, *req.Code)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check fund source code: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: fund source code %s", apperrors.ErrDuplicate, *req.Code)
		}
		source.Code = *req.Code
	}
	if req.Name != nil {
		source.Name = *req.Name
	}
	if req.Type != nil {
		source.Type = domain.FundSourceType(*req.Type)
	}
	if req.BankName != nil {
		source.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		source.AccountNumber = *req.AccountNumber
	}
	if req.AccountHolder != nil {
		source.AccountHolder = *req.AccountHolder
	}
	if req.Description != nil {
		source.Description = *req.Description
	}
	if req.Status != nil {
		source.Status = domain.FundSourceStatus(*req.Status)
	}
	if req.IsDefault != nil {
		source.IsDefault = *req.IsDefault
	}
	source.LastUpdatedAt = time.Now().UTC()
	source.LastUpdatedBy = requestingUserID

	if err := s.fundRepo.UpdateFundSource(ctx, *source); err != nil {
		logger.Error("Failed to update fund source", "fund_source_id", fundSourceID, "error", err.Error())
		return nil, fmt.Errorf("failed to update fund source: %w", err)
	}
	if err := s.recordAudit(ctx, nil, requestingUserID, domain.AuditUpdate, fundSourceResource, fundSourceID, nil); err != nil {
		logger.Warn("Failed to record update audit", "fund_source_id", fundSourceID, "error", err.Error())
	}

	return s.fundRepo.FindFundSourceByID(ctx, fundSourceID)
}

// DeleteFundSource hard-deletes a source with no ledger activity beyond its
// opening balance, and deactivates it otherwise so history stays auditable.
func (s *fundService) DeleteFundSource(ctx context.Context, fundSourceID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := s.fundRepo.FindFundSourceByID(ctx, fundSourceID)
	if err != nil {
		return fmt.Errorf("failed to find fund source %s: %w", fundSourceID, err)
	}

	hasActivity, err := s.fundRepo.HasFundActivity(ctx, fundSourceID)
	if err != nil {
		return fmt.Errorf("failed to check fund activity: %w", err)
	}

	if hasActivity {
		if err := s.fundRepo.DeactivateFundSource(ctx, fundSourceID, requestingUserID, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to deactivate fund source: %w", err)
		}
	} else {
		if err := s.fundRepo.DeleteFundSource(ctx, fundSourceID); err != nil {
			return fmt.Errorf("failed to delete fund source: %w", err)
		}
	}

	if err := s.recordAudit(ctx, nil, requestingUserID, domain.AuditDelete, fundSourceResource, fundSourceID, map[string]any{
		"code":        source.Code,
		"deactivated": hasActivity,
	}); err != nil {
		logger.Warn("Failed to record delete audit", "fund_source_id", fundSourceID, "error", err.Error())
	}

	logger.Info("Fund source deleted", "fund_source_id", fundSourceID, "deactivated", hasActivity)
	return nil
}

// RecordDeposit credits a fund source and appends a DEPOSIT ledger entry.
func (s *fundService) RecordDeposit(ctx context.Context, fundSourceID string, req dto.RecordFundTransactionRequest, userID string) (*domain.FundTransaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	return s.applyFundEntry(ctx, fundSourceID, req.Amount, portsrepo.FundDeltaMeta{
		Type:            domain.FundDeposit,
		Amount:          req.Amount,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		Description:     req.Description,
		TransactionDate: time.Now().UTC(),
		CreatedBy:       userID,
	}, userID)
}

// RecordWithdrawal debits a fund source and appends a WITHDRAWAL ledger
// entry. skipBalanceCheck is for callers that already validated the funds,
// such as the transfer poster.
func (s *fundService) RecordWithdrawal(ctx context.Context, fundSourceID string, req dto.RecordFundTransactionRequest, userID string, skipBalanceCheck bool) (*domain.FundTransaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}
	return s.applyFundEntry(ctx, fundSourceID, req.Amount.Neg(), portsrepo.FundDeltaMeta{
		Type:            domain.FundWithdrawal,
		Amount:          req.Amount,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		Description:     req.Description,
		TransactionDate: time.Now().UTC(),
		CreatedBy:       userID,
		AllowNegative:   skipBalanceCheck,
	}, userID)
}

// applyFundEntry locks the fund source and applies one signed delta with its
// ledger entry and audit record in a single transaction.
func (s *fundService) applyFundEntry(ctx context.Context, fundSourceID string, delta decimal.Decimal, meta portsrepo.FundDeltaMeta, userID string) (*domain.FundTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var entry *domain.FundTransaction
	err := runInTx(ctx, s.fundRepo, func(tx pgx.Tx) error {
		source, err := s.fundRepo.FindFundSourceForUpdate(ctx, tx, fundSourceID)
		if err != nil {
			return fmt.Errorf("failed to find fund source %s: %w", fundSourceID, err)
		}
		if source.Status != domain.FundSourceActive {
			return fmt.Errorf("%w: fund source %s is inactive", apperrors.ErrValidation, source.Code)
		}

		entry, err = s.fundRepo.ApplyFundDelta(ctx, tx, fundSourceID, delta, meta)
		if err != nil {
			return err
		}

		return s.recordAudit(ctx, tx, userID, domain.AuditCreate, fundTransactionResource, entry.TransactionID, map[string]any{
			"fundSourceID": fundSourceID,
			"type":         string(meta.Type),
		})
	})
	if err != nil {
		logger.Error("Failed to apply fund entry", "fund_source_id", fundSourceID, "type", string(meta.Type), "error", err.Error())
		return nil, err
	}

	logger.Info("Fund entry recorded", "fund_source_id", fundSourceID, "type", string(meta.Type))
	return entry, nil
}

// AdjustBalance reconciles a fund source to an exact balance. The single
// ADJUSTMENT entry carries the absolute difference and the guard is bypassed;
// this is a corrective override, not a normal transaction.
func (s *fundService) AdjustBalance(ctx context.Context, fundSourceID string, req dto.AdjustBalanceRequest, userID string) (*domain.FundTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var entry *domain.FundTransaction
	err := runInTx(ctx, s.fundRepo, func(tx pgx.Tx) error {
		source, err := s.fundRepo.FindFundSourceForUpdate(ctx, tx, fundSourceID)
		if err != nil {
			return fmt.Errorf("failed to find fund source %s: %w", fundSourceID, err)
		}

		difference := req.NewBalance.Sub(source.CurrentBalance)
		if difference.IsZero() {
			return fmt.Errorf("%w: new balance equals the current balance", apperrors.ErrValidation)
		}

		meta := portsrepo.FundDeltaMeta{
			Type:            domain.FundAdjustment,
			Amount:          difference.Abs(),
			Description:     req.Reason,
			TransactionDate: time.Now().UTC(),
			CreatedBy:       userID,
			AllowNegative:   true,
		}
		entry, err = s.fundRepo.ApplyFundDelta(ctx, tx, fundSourceID, difference, meta)
		if err != nil {
			return err
		}

		return s.recordAudit(ctx, tx, userID, domain.AuditUpdate, fundSourceResource, fundSourceID, map[string]any{
			"reason":     req.Reason,
			"newBalance": req.NewBalance.String(),
		})
	})
	if err != nil {
		logger.Error("Failed to adjust fund balance", "fund_source_id", fundSourceID, "error", err.Error())
		return nil, err
	}

	logger.Info("Fund balance adjusted", "fund_source_id", fundSourceID, "new_balance", req.NewBalance.String())
	return entry, nil
}

// CreateFundTransfer atomically debits the source by amount plus fee and
// credits the destination by amount minus fee. Both fund sources are locked
// in a deterministic order before any write.
func (s *fundService) CreateFundTransfer(ctx context.Context, req dto.CreateFundTransferRequest, userID string) (*domain.FundTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromFundSourceID == req.ToFundSourceID {
		return nil, fmt.Errorf("%w: source and destination fund sources must be different", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.TransferFee.IsNegative() {
		return nil, fmt.Errorf("%w: transfer fee cannot be negative", apperrors.ErrValidation)
	}
	if req.TransferFee.GreaterThanOrEqual(req.Amount) {
		return nil, fmt.Errorf("%w: transfer fee must be less than the transfer amount", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	transferDate := now
	if req.TransferDate != nil {
		transferDate = *req.TransferDate
	}

	netAmount := req.Amount.Sub(req.TransferFee)
	totalDebit := req.Amount.Add(req.TransferFee)

	transfer := domain.FundTransfer{
		TransferID:       uuid.NewString(),
		FromFundSourceID: req.FromFundSourceID,
		ToFundSourceID:   req.ToFundSourceID,
		Amount:           req.Amount,
		TransferFee:      req.TransferFee,
		NetAmount:        netAmount,
		Description:      req.Description,
		Status:           "completed",
		TransferDate:     transferDate,
		CreatedBy:        userID,
		CreatedAt:        now,
	}

	err := runInTx(ctx, s.fundRepo, func(tx pgx.Tx) error {
		// Lock order by ID keeps concurrent opposite-direction transfers
		// from deadlocking.
		firstID, secondID := req.FromFundSourceID, req.ToFundSourceID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		locked := make(map[string]*domain.FundSource, 2)
		for _, id := range []string{firstID, secondID} {
			source, err := s.fundRepo.FindFundSourceForUpdate(ctx, tx, id)
			if err != nil {
				return fmt.Errorf("failed to find fund source %s: %w", id, err)
			}
			if source.Status != domain.FundSourceActive {
				return fmt.Errorf("%w: fund source %s is inactive", apperrors.ErrValidation, source.Code)
			}
			locked[id] = source
		}

		from := locked[req.FromFundSourceID]
		if from.CurrentBalance.LessThan(totalDebit) {
			return &apperrors.InsufficientBalanceError{
				FundSourceID: from.FundSourceID,
				Available:    from.CurrentBalance,
				Requested:    totalDebit,
			}
		}

		number, err := s.fundRepo.NextFundTransferNumber(ctx, tx, now)
		if err != nil {
			return fmt.Errorf("failed to generate transfer number: %w", err)
		}
		transfer.TransferNumber = number

		outMeta := portsrepo.FundDeltaMeta{
			Type:            domain.FundTransferOut,
			Amount:          totalDebit,
			ReferenceType:   fundTransferResource,
			ReferenceID:     transfer.TransferNumber,
			Description:     fmt.Sprintf("Transfer to %s", locked[req.ToFundSourceID].Name),
			TransactionDate: transferDate,
			CreatedBy:       userID,
			AllowNegative:   true, // validated above under the same lock
		}
		if _, err := s.fundRepo.ApplyFundDelta(ctx, tx, req.FromFundSourceID, totalDebit.Neg(), outMeta); err != nil {
			return err
		}

		inMeta := portsrepo.FundDeltaMeta{
			Type:            domain.FundTransferIn,
			Amount:          netAmount,
			ReferenceType:   fundTransferResource,
			ReferenceID:     transfer.TransferNumber,
			Description:     fmt.Sprintf("Transfer from %s", from.Name),
			TransactionDate: transferDate,
			CreatedBy:       userID,
		}
		if _, err := s.fundRepo.ApplyFundDelta(ctx, tx, req.ToFundSourceID, netAmount, inMeta); err != nil {
			return err
		}

		if err := s.fundRepo.CreateFundTransfer(ctx, tx, transfer); err != nil {
			return fmt.Errorf("failed to save fund transfer: %w", err)
		}

		return s.recordAudit(ctx, tx, userID, domain.AuditCreate, fundTransferResource, transfer.TransferID, map[string]any{
			"transferNumber": transfer.TransferNumber,
		})
	})
	if err != nil {
		logger.Error("Failed to create fund transfer", "error", err.Error())
		return nil, err
	}

	logger.Info("Fund transfer completed", "transfer_id", transfer.TransferID, "transfer_number", transfer.TransferNumber)
	return s.fundRepo.FindFundTransferByID(ctx, transfer.TransferID)
}

// GetFundTransferByID retrieves a specific fund transfer.
func (s *fundService) GetFundTransferByID(ctx context.Context, transferID string) (*domain.FundTransfer, error) {
	transfer, err := s.fundRepo.FindFundTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fund transfer %s: %w", transferID, err)
	}
	return transfer, nil
}

// ListFundTransfers retrieves fund transfers matching the filter params.
func (s *fundService) ListFundTransfers(ctx context.Context, params dto.ListFundTransfersParams) ([]domain.FundTransfer, error) {
	filter := portsrepo.FundTransferFilter{
		FundSourceID: params.FundSourceID,
		DateFrom:     params.DateFrom,
		DateTo:       params.DateTo,
	}
	transfers, err := s.fundRepo.ListFundTransfers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund transfers: %w", err)
	}
	return transfers, nil
}

// ListFundTransactions retrieves one fund source's ledger history, newest first.
func (s *fundService) ListFundTransactions(ctx context.Context, fundSourceID string, params dto.ListFundTransactionsParams) ([]domain.FundTransaction, error) {
	if _, err := s.fundRepo.FindFundSourceByID(ctx, fundSourceID); err != nil {
		return nil, fmt.Errorf("failed to find fund source %s: %w", fundSourceID, err)
	}
	filter := portsrepo.FundTransactionFilter{
		Type:     domain.FundTransactionType(params.Type),
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
		Limit:    params.Limit,
	}
	transactions, err := s.fundRepo.ListFundTransactions(ctx, fundSourceID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund transactions: %w", err)
	}
	return transactions, nil
}

func (s *fundService) recordAudit(ctx context.Context, tx pgx.Tx, userID string, action domain.AuditAction, resourceType, resourceID string, details map[string]any) error {
	return s.auditRepo.Record(ctx, tx, domain.AuditLog{
		AuditID:      uuid.NewString(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		CreatedAt:    time.Now().UTC(),
	})
}
