package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inventra/inventra_backend/internal/apperrors"
	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
	portssvc "github.com/inventra/inventra_backend/internal/core/ports/services"
	"github.com/inventra/inventra_backend/internal/core/services"
	"github.com/inventra/inventra_backend/internal/dto"
)

type TransferServiceTestSuite struct {
	suite.Suite
	transferRepo  *MockTransferRepository
	inventoryRepo *MockInventoryRepository
	catalogRepo   *MockCatalogRepository
	auditRepo     *MockAuditRecorder
	service       portssvc.TransferSvcFacade

	ctx         context.Context
	userID      string
	source      domain.Warehouse
	destination domain.Warehouse
	product     domain.Product
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.transferRepo = new(MockTransferRepository)
	suite.inventoryRepo = new(MockInventoryRepository)
	suite.catalogRepo = new(MockCatalogRepository)
	suite.auditRepo = new(MockAuditRecorder)
	suite.service = services.NewTransferService(
		suite.transferRepo, suite.inventoryRepo, suite.catalogRepo, suite.auditRepo)

	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
	suite.source = domain.Warehouse{WarehouseID: uuid.NewString(), Name: "Main Warehouse"}
	suite.destination = domain.Warehouse{WarehouseID: uuid.NewString(), Name: "Retail Store"}
	suite.product = domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Bottled Water 500ml",
		SKU:       "BW-500",
		BaseUOM:   "pcs",
		AlternateUOMs: []domain.AlternateUOM{
			{Name: "box", ConversionFactor: decimal.NewFromInt(12)},
		},
		IsActive: true,
	}

	suite.auditRepo.On("Record", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *TransferServiceTestSuite) productsMap() map[string]domain.Product {
	return map[string]domain.Product{suite.product.ProductID: suite.product}
}

func (suite *TransferServiceTestSuite) draftTransfer(items ...domain.TransferItem) *domain.Transfer {
	return &domain.Transfer{
		TransferID:             uuid.NewString(),
		TransferNumber:         "TRF-20260831-0001",
		SourceWarehouseID:      suite.source.WarehouseID,
		DestinationWarehouseID: suite.destination.WarehouseID,
		Reason:                 "Restock retail",
		Status:                 domain.StatusDraft,
		Items:                  items,
	}
}

func (suite *TransferServiceTestSuite) TestCreateTransfer() {
	req := dto.CreateTransferRequest{
		SourceWarehouseID:      suite.source.WarehouseID,
		DestinationWarehouseID: suite.destination.WarehouseID,
		Reason:                 "Restock retail",
		Items: []dto.TransferItemRequest{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(5), UOM: "box"},
		},
	}

	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.source.WarehouseID).Return(&suite.source, nil).Once()
	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.destination.WarehouseID).Return(&suite.destination, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, []string{suite.product.ProductID}).Return(suite.productsMap(), nil).Once()
	suite.transferRepo.On("NextTransferNumber", mock.Anything, mock.Anything, mock.Anything).Return("TRF-20260831-0004", nil).Once()

	var created domain.Transfer
	suite.transferRepo.On("CreateTransfer", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transfer")).
		Run(func(args mock.Arguments) {
			created = args.Get(2).(domain.Transfer)
		}).Return(nil).Once()
	suite.transferRepo.On("FindTransferByID", mock.Anything, mock.AnythingOfType("string")).
		Return(&domain.Transfer{TransferNumber: "TRF-20260831-0004", Status: domain.StatusDraft}, nil).Once()

	result, err := suite.service.CreateTransfer(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("TRF-20260831-0004", result.TransferNumber)
	suite.Equal(domain.StatusDraft, created.Status)
	suite.Require().Len(created.Items, 1)
	suite.True(created.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
	suite.transferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCreateTransferRejectsSameWarehouse() {
	req := dto.CreateTransferRequest{
		SourceWarehouseID:      suite.source.WarehouseID,
		DestinationWarehouseID: suite.source.WarehouseID,
		Items: []dto.TransferItemRequest{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(1), UOM: "pcs"},
		},
	}

	_, err := suite.service.CreateTransfer(suite.ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.transferRepo.AssertNotCalled(suite.T(), "CreateTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCreateTransferRejectsDuplicateProduct() {
	req := dto.CreateTransferRequest{
		SourceWarehouseID:      suite.source.WarehouseID,
		DestinationWarehouseID: suite.destination.WarehouseID,
		Items: []dto.TransferItemRequest{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(1), UOM: "pcs"},
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(2), UOM: "box"},
		},
	}

	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.source.WarehouseID).Return(&suite.source, nil).Once()
	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.destination.WarehouseID).Return(&suite.destination, nil).Once()

	_, err := suite.service.CreateTransfer(suite.ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestCreateTransferRejectsNonPositiveQuantity() {
	req := dto.CreateTransferRequest{
		SourceWarehouseID:      suite.source.WarehouseID,
		DestinationWarehouseID: suite.destination.WarehouseID,
		Items: []dto.TransferItemRequest{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(-4), UOM: "pcs"},
		},
	}

	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.source.WarehouseID).Return(&suite.source, nil).Once()
	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.destination.WarehouseID).Return(&suite.destination, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()

	_, err := suite.service.CreateTransfer(suite.ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestPostTransfer() {
	// 5 box at 12 pcs per box moves 60 base units.
	transfer := suite.draftTransfer(domain.TransferItem{
		ItemID:    uuid.NewString(),
		ProductID: suite.product.ProductID,
		Quantity:  decimal.NewFromInt(5),
		UOM:       "box",
	})

	suite.transferRepo.On("FindTransferForUpdate", mock.Anything, mock.Anything, transfer.TransferID).Return(transfer, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, []string{suite.product.ProductID}).Return(suite.productsMap(), nil).Once()

	suite.inventoryRepo.On("ApplyStockDelta", mock.Anything, mock.Anything, suite.product.ProductID, suite.source.WarehouseID,
		decimal.NewFromInt(-60), mock.MatchedBy(func(meta portsrepo.StockDeltaMeta) bool {
			return meta.Type == domain.MovementTransferOut && meta.ForbidNegative && meta.ReferenceID == transfer.TransferNumber
		})).Return(decimal.NewFromInt(40), nil).Once()
	suite.inventoryRepo.On("ApplyStockDelta", mock.Anything, mock.Anything, suite.product.ProductID, suite.destination.WarehouseID,
		decimal.NewFromInt(60), mock.MatchedBy(func(meta portsrepo.StockDeltaMeta) bool {
			return meta.Type == domain.MovementTransferIn && !meta.ForbidNegative
		})).Return(decimal.NewFromInt(60), nil).Once()

	suite.transferRepo.On("MarkTransferPosted", mock.Anything, mock.Anything, transfer.TransferID, suite.userID, mock.Anything).Return(nil).Once()
	suite.transferRepo.On("FindTransferByID", mock.Anything, transfer.TransferID).
		Return(&domain.Transfer{TransferID: transfer.TransferID, Status: domain.StatusPosted}, nil).Once()

	result, err := suite.service.PostTransfer(suite.ctx, transfer.TransferID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPosted, result.Status)
	suite.inventoryRepo.AssertExpectations(suite.T())
	suite.transferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestPostTransferInsufficientStock() {
	transfer := suite.draftTransfer(domain.TransferItem{
		ItemID:    uuid.NewString(),
		ProductID: suite.product.ProductID,
		Quantity:  decimal.NewFromInt(5),
		UOM:       "box",
	})

	stockErr := &apperrors.InsufficientStockError{
		ProductID:   suite.product.ProductID,
		WarehouseID: suite.source.WarehouseID,
		Available:   decimal.NewFromInt(30),
		Requested:   decimal.NewFromInt(60),
	}

	suite.transferRepo.On("FindTransferForUpdate", mock.Anything, mock.Anything, transfer.TransferID).Return(transfer, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()
	suite.inventoryRepo.On("ApplyStockDelta", mock.Anything, mock.Anything, suite.product.ProductID, suite.source.WarehouseID,
		decimal.NewFromInt(-60), mock.Anything).Return(decimal.Decimal{}, stockErr).Once()

	_, err := suite.service.PostTransfer(suite.ctx, transfer.TransferID, suite.userID)

	suite.Require().Error(err)
	var target *apperrors.InsufficientStockError
	suite.Require().ErrorAs(err, &target)
	suite.True(target.Available.Equal(decimal.NewFromInt(30)))
	// The destination side is never touched once the source debit fails.
	suite.inventoryRepo.AssertNumberOfCalls(suite.T(), "ApplyStockDelta", 1)
	suite.transferRepo.AssertNotCalled(suite.T(), "MarkTransferPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestPostTransferRejectsNonDraft() {
	transfer := suite.draftTransfer()
	transfer.Status = domain.StatusCancelled

	suite.transferRepo.On("FindTransferForUpdate", mock.Anything, mock.Anything, transfer.TransferID).Return(transfer, nil).Once()

	_, err := suite.service.PostTransfer(suite.ctx, transfer.TransferID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestUpdateTransferCancelsDraft() {
	transfer := suite.draftTransfer()

	suite.transferRepo.On("FindTransferByID", mock.Anything, transfer.TransferID).Return(transfer, nil).Once()

	var updated domain.Transfer
	suite.transferRepo.On("UpdateDraftTransfer", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transfer")).
		Run(func(args mock.Arguments) {
			updated = args.Get(2).(domain.Transfer)
		}).Return(nil).Once()
	suite.transferRepo.On("FindTransferByID", mock.Anything, transfer.TransferID).Return(transfer, nil).Once()

	_, err := suite.service.UpdateTransfer(suite.ctx, transfer.TransferID, dto.UpdateTransferRequest{Cancel: true}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelled, updated.Status)
}

func (suite *TransferServiceTestSuite) TestUpdateTransferRejectsPosted() {
	transfer := suite.draftTransfer()
	transfer.Status = domain.StatusPosted
	newReason := "Different reason"

	suite.transferRepo.On("FindTransferByID", mock.Anything, transfer.TransferID).Return(transfer, nil).Once()

	_, err := suite.service.UpdateTransfer(suite.ctx, transfer.TransferID, dto.UpdateTransferRequest{Reason: &newReason}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.transferRepo.AssertNotCalled(suite.T(), "UpdateDraftTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestReverseTransferSwapsWarehouses() {
	original := suite.draftTransfer(domain.TransferItem{
		ItemID:    uuid.NewString(),
		ProductID: suite.product.ProductID,
		Quantity:  decimal.NewFromInt(5),
		UOM:       "box",
	})
	original.Status = domain.StatusPosted

	suite.transferRepo.On("FindTransferByID", mock.Anything, original.TransferID).Return(original, nil).Once()
	suite.transferRepo.On("NextTransferNumber", mock.Anything, mock.Anything, mock.Anything).Return("TRF-20260831-0002", nil).Once()

	var reversal domain.Transfer
	suite.transferRepo.On("CreateTransfer", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transfer")).
		Run(func(args mock.Arguments) {
			reversal = args.Get(2).(domain.Transfer)
		}).Return(nil).Once()

	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()
	// Stock flows back: debit the original destination, credit the original source.
	suite.inventoryRepo.On("ApplyStockDelta", mock.Anything, mock.Anything, suite.product.ProductID, suite.destination.WarehouseID,
		decimal.NewFromInt(-60), mock.MatchedBy(func(meta portsrepo.StockDeltaMeta) bool {
			return meta.Type == domain.MovementTransferOut && meta.ForbidNegative
		})).Return(decimal.Zero, nil).Once()
	suite.inventoryRepo.On("ApplyStockDelta", mock.Anything, mock.Anything, suite.product.ProductID, suite.source.WarehouseID,
		decimal.NewFromInt(60), mock.MatchedBy(func(meta portsrepo.StockDeltaMeta) bool {
			return meta.Type == domain.MovementTransferIn
		})).Return(decimal.NewFromInt(60), nil).Once()
	suite.transferRepo.On("MarkTransferPosted", mock.Anything, mock.Anything, mock.AnythingOfType("string"), suite.userID, mock.Anything).Return(nil).Once()
	suite.transferRepo.On("FindTransferByID", mock.Anything, mock.AnythingOfType("string")).
		Return(&domain.Transfer{Status: domain.StatusPosted}, nil).Once()

	_, err := suite.service.ReverseTransfer(suite.ctx, original.TransferID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(original.DestinationWarehouseID, reversal.SourceWarehouseID)
	suite.Equal(original.SourceWarehouseID, reversal.DestinationWarehouseID)
	suite.Contains(reversal.Reason, original.TransferNumber)
	suite.Require().Len(reversal.Items, 1)
	suite.True(reversal.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
	suite.Equal("box", reversal.Items[0].UOM)
	suite.inventoryRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestReverseTransferRejectsDraft() {
	original := suite.draftTransfer()

	suite.transferRepo.On("FindTransferByID", mock.Anything, original.TransferID).Return(original, nil).Once()

	_, err := suite.service.ReverseTransfer(suite.ctx, original.TransferID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.transferRepo.AssertNotCalled(suite.T(), "CreateTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCopyTransfer() {
	original := suite.draftTransfer(domain.TransferItem{
		ItemID:    uuid.NewString(),
		ProductID: suite.product.ProductID,
		Quantity:  decimal.NewFromInt(3),
		UOM:       "pcs",
	})
	original.Status = domain.StatusPosted

	suite.transferRepo.On("FindTransferByID", mock.Anything, original.TransferID).Return(original, nil).Once()
	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.source.WarehouseID).Return(&suite.source, nil).Once()
	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.destination.WarehouseID).Return(&suite.destination, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()
	suite.transferRepo.On("NextTransferNumber", mock.Anything, mock.Anything, mock.Anything).Return("TRF-20260831-0008", nil).Once()

	var copied domain.Transfer
	suite.transferRepo.On("CreateTransfer", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transfer")).
		Run(func(args mock.Arguments) {
			copied = args.Get(2).(domain.Transfer)
		}).Return(nil).Once()
	suite.transferRepo.On("FindTransferByID", mock.Anything, mock.AnythingOfType("string")).
		Return(&domain.Transfer{Status: domain.StatusDraft}, nil).Once()

	_, err := suite.service.CopyTransfer(suite.ctx, original.TransferID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDraft, copied.Status)
	suite.NotEqual(original.TransferID, copied.TransferID)
	suite.Contains(copied.Reason, "Copy of "+original.TransferNumber)
}

func (suite *TransferServiceTestSuite) TestDeleteTransferRejectsPosted() {
	transfer := suite.draftTransfer()
	transfer.Status = domain.StatusPosted

	suite.transferRepo.On("FindTransferByID", mock.Anything, transfer.TransferID).Return(transfer, nil).Once()

	err := suite.service.DeleteTransfer(suite.ctx, transfer.TransferID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.transferRepo.AssertNotCalled(suite.T(), "DeleteTransfer", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestDeleteTransferConflictWhenPostedConcurrently() {
	transfer := suite.draftTransfer()

	// The document reads as a draft, but another request posts it before
	// the delete lands. The repository's status guard reports the race.
	suite.transferRepo.On("FindTransferByID", mock.Anything, transfer.TransferID).Return(transfer, nil).Once()
	suite.transferRepo.On("DeleteTransfer", mock.Anything, transfer.TransferID).
		Return(fmt.Errorf("%w: transfer %s is not a draft", apperrors.ErrConflict, transfer.TransferID)).Once()

	err := suite.service.DeleteTransfer(suite.ctx, transfer.TransferID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
