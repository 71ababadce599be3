package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inventra/inventra_backend/internal/apperrors"
	"github.com/inventra/inventra_backend/internal/core/domain"
	portssvc "github.com/inventra/inventra_backend/internal/core/ports/services"
	"github.com/inventra/inventra_backend/internal/core/services"
	"github.com/inventra/inventra_backend/internal/dto"
)

type AdjustmentServiceTestSuite struct {
	suite.Suite
	adjustmentRepo *MockAdjustmentRepository
	inventoryRepo  *MockInventoryRepository
	catalogRepo    *MockCatalogRepository
	auditRepo      *MockAuditRecorder
	service        portssvc.AdjustmentSvcFacade

	ctx       context.Context
	userID    string
	warehouse domain.Warehouse
	product   domain.Product
}

func (suite *AdjustmentServiceTestSuite) SetupTest() {
	suite.adjustmentRepo = new(MockAdjustmentRepository)
	suite.inventoryRepo = new(MockInventoryRepository)
	suite.catalogRepo = new(MockCatalogRepository)
	suite.auditRepo = new(MockAuditRecorder)
	suite.service = services.NewAdjustmentService(
		suite.adjustmentRepo, suite.inventoryRepo, suite.catalogRepo, suite.auditRepo, false)

	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
	suite.warehouse = domain.Warehouse{
		WarehouseID: uuid.NewString(),
		Name:        "Main Warehouse",
	}
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

	// Audit writes succeed unless a test overrides this.
	suite.auditRepo.On("Record", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *AdjustmentServiceTestSuite) productsMap() map[string]domain.Product {
	return map[string]domain.Product{suite.product.ProductID: suite.product}
}

func (suite *AdjustmentServiceTestSuite) draftAdjustment(items ...domain.AdjustmentItem) *domain.Adjustment {
	return &domain.Adjustment{
		AdjustmentID:     uuid.NewString(),
		AdjustmentNumber: "ADJ-20260831-0001",
		WarehouseID:      suite.warehouse.WarehouseID,
		Reason:           "Cycle count",
		Status:           domain.StatusDraft,
		Items:            items,
	}
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment() {
	req := dto.CreateAdjustmentRequest{
		WarehouseID: suite.warehouse.WarehouseID,
		Reason:      "Damaged goods",
		Items: []dto.AdjustmentItemRequest{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(-3), UOM: "pcs", Type: "RELATIVE"},
		},
	}

	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.warehouse.WarehouseID).Return(&suite.warehouse, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, []string{suite.product.ProductID}).Return(suite.productsMap(), nil).Once()
	suite.adjustmentRepo.On("NextAdjustmentNumber", mock.Anything, mock.Anything, mock.Anything).Return("ADJ-20260831-0007", nil).Once()

	var created domain.Adjustment
	suite.adjustmentRepo.On("CreateAdjustment", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Adjustment")).
		Run(func(args mock.Arguments) {
			created = args.Get(2).(domain.Adjustment)
		}).Return(nil).Once()
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, mock.AnythingOfType("string")).
		Return(&domain.Adjustment{AdjustmentNumber: "ADJ-20260831-0007", Status: domain.StatusDraft}, nil).Once()

	result, err := suite.service.CreateAdjustment(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("ADJ-20260831-0007", result.AdjustmentNumber)
	suite.Equal(domain.StatusDraft, created.Status)
	suite.Equal("ADJ-20260831-0007", created.AdjustmentNumber)
	suite.Require().Len(created.Items, 1)
	suite.Equal(domain.AdjustmentRelative, created.Items[0].Type)
	suite.Nil(created.Items[0].SystemQuantity)
	suite.adjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustmentRejectsUnknownUOM() {
	req := dto.CreateAdjustmentRequest{
		WarehouseID: suite.warehouse.WarehouseID,
		Reason:      "Cycle count",
		Items: []dto.AdjustmentItemRequest{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(1), UOM: "pallet"},
		},
	}

	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.warehouse.WarehouseID).Return(&suite.warehouse, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()

	_, err := suite.service.CreateAdjustment(suite.ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.adjustmentRepo.AssertNotCalled(suite.T(), "CreateAdjustment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustmentRejectsZeroRelativeQuantity() {
	req := dto.CreateAdjustmentRequest{
		WarehouseID: suite.warehouse.WarehouseID,
		Reason:      "Cycle count",
		Items: []dto.AdjustmentItemRequest{
			{ProductID: suite.product.ProductID, Quantity: decimal.Zero, UOM: "pcs", Type: "RELATIVE"},
		},
	}

	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.warehouse.WarehouseID).Return(&suite.warehouse, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()

	_, err := suite.service.CreateAdjustment(suite.ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdjustmentServiceTestSuite) TestPostAdjustmentAbsolute() {
	adjustment := suite.draftAdjustment(domain.AdjustmentItem{
		ItemID:    uuid.NewString(),
		ProductID: suite.product.ProductID,
		Quantity:  decimal.NewFromInt(200),
		UOM:       "pcs",
		Type:      domain.AdjustmentAbsolute,
	})

	suite.adjustmentRepo.On("FindAdjustmentForUpdate", mock.Anything, mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, []string{suite.product.ProductID}).Return(suite.productsMap(), nil).Once()
	suite.inventoryRepo.On("GetQuantitiesForUpdate", mock.Anything, mock.Anything, suite.warehouse.WarehouseID, []string{suite.product.ProductID}).
		Return(map[string]decimal.Decimal{suite.product.ProductID: decimal.NewFromInt(80)}, nil).Once()

	suite.inventoryRepo.On("InsertMovement", mock.Anything, mock.Anything, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Type == domain.MovementAdjustment &&
			m.Quantity.Equal(decimal.NewFromInt(120)) &&
			m.RunningBalance.Equal(decimal.NewFromInt(200)) &&
			m.ReferenceID == adjustment.AdjustmentNumber
	})).Return(nil).Once()
	suite.inventoryRepo.On("SetQuantity", mock.Anything, mock.Anything, suite.product.ProductID, suite.warehouse.WarehouseID, decimal.NewFromInt(200)).Return(nil).Once()

	suite.adjustmentRepo.On("CaptureItemQuantities", mock.Anything, mock.Anything, mock.MatchedBy(func(items []domain.AdjustmentItem) bool {
		return len(items) == 1 &&
			items[0].SystemQuantity != nil && items[0].SystemQuantity.Equal(decimal.NewFromInt(80)) &&
			items[0].ActualQuantity != nil && items[0].ActualQuantity.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()
	suite.adjustmentRepo.On("MarkAdjustmentPosted", mock.Anything, mock.Anything, adjustment.AdjustmentID, suite.userID, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).
		Return(&domain.Adjustment{AdjustmentID: adjustment.AdjustmentID, Status: domain.StatusPosted}, nil).Once()

	result, err := suite.service.PostAdjustment(suite.ctx, adjustment.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPosted, result.Status)
	suite.adjustmentRepo.AssertExpectations(suite.T())
	suite.inventoryRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestPostAdjustmentRelativeConvertsAlternateUOM() {
	// -2 box at 12 pcs per box takes the balance from 50 to 26.
	adjustment := suite.draftAdjustment(domain.AdjustmentItem{
		ItemID:    uuid.NewString(),
		ProductID: suite.product.ProductID,
		Quantity:  decimal.NewFromInt(-2),
		UOM:       "box",
		Type:      domain.AdjustmentRelative,
	})

	suite.adjustmentRepo.On("FindAdjustmentForUpdate", mock.Anything, mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()
	suite.inventoryRepo.On("GetQuantitiesForUpdate", mock.Anything, mock.Anything, suite.warehouse.WarehouseID, mock.Anything).
		Return(map[string]decimal.Decimal{suite.product.ProductID: decimal.NewFromInt(50)}, nil).Once()

	suite.inventoryRepo.On("InsertMovement", mock.Anything, mock.Anything, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Quantity.Equal(decimal.NewFromInt(-24)) && m.RunningBalance.Equal(decimal.NewFromInt(26))
	})).Return(nil).Once()
	suite.inventoryRepo.On("SetQuantity", mock.Anything, mock.Anything, suite.product.ProductID, suite.warehouse.WarehouseID, decimal.NewFromInt(26)).Return(nil).Once()
	suite.adjustmentRepo.On("CaptureItemQuantities", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("MarkAdjustmentPosted", mock.Anything, mock.Anything, adjustment.AdjustmentID, suite.userID, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()

	_, err := suite.service.PostAdjustment(suite.ctx, adjustment.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.inventoryRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestPostAdjustmentLaterLinesSeeEarlierEffect() {
	// Two lines on the same product stack: 0 +10 then +5 lands at 15.
	adjustment := suite.draftAdjustment(
		domain.AdjustmentItem{
			ItemID:    uuid.NewString(),
			ProductID: suite.product.ProductID,
			Quantity:  decimal.NewFromInt(10),
			UOM:       "pcs",
			Type:      domain.AdjustmentRelative,
		},
		domain.AdjustmentItem{
			ItemID:    uuid.NewString(),
			ProductID: suite.product.ProductID,
			Quantity:  decimal.NewFromInt(5),
			UOM:       "pcs",
			Type:      domain.AdjustmentRelative,
		},
	)

	suite.adjustmentRepo.On("FindAdjustmentForUpdate", mock.Anything, mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, []string{suite.product.ProductID}).Return(suite.productsMap(), nil).Once()
	suite.inventoryRepo.On("GetQuantitiesForUpdate", mock.Anything, mock.Anything, suite.warehouse.WarehouseID, []string{suite.product.ProductID}).
		Return(map[string]decimal.Decimal{suite.product.ProductID: decimal.Zero}, nil).Once()

	suite.inventoryRepo.On("InsertMovement", mock.Anything, mock.Anything, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Quantity.Equal(decimal.NewFromInt(10)) && m.RunningBalance.Equal(decimal.NewFromInt(10))
	})).Return(nil).Once()
	suite.inventoryRepo.On("InsertMovement", mock.Anything, mock.Anything, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Quantity.Equal(decimal.NewFromInt(5)) && m.RunningBalance.Equal(decimal.NewFromInt(15))
	})).Return(nil).Once()
	suite.inventoryRepo.On("SetQuantity", mock.Anything, mock.Anything, suite.product.ProductID, suite.warehouse.WarehouseID, decimal.NewFromInt(10)).Return(nil).Once()
	suite.inventoryRepo.On("SetQuantity", mock.Anything, mock.Anything, suite.product.ProductID, suite.warehouse.WarehouseID, decimal.NewFromInt(15)).Return(nil).Once()
	suite.adjustmentRepo.On("CaptureItemQuantities", mock.Anything, mock.Anything, mock.MatchedBy(func(items []domain.AdjustmentItem) bool {
		return len(items) == 2 &&
			items[1].SystemQuantity != nil && items[1].SystemQuantity.Equal(decimal.NewFromInt(10)) &&
			items[1].ActualQuantity != nil && items[1].ActualQuantity.Equal(decimal.NewFromInt(15))
	})).Return(nil).Once()
	suite.adjustmentRepo.On("MarkAdjustmentPosted", mock.Anything, mock.Anything, adjustment.AdjustmentID, suite.userID, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()

	_, err := suite.service.PostAdjustment(suite.ctx, adjustment.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.inventoryRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestPostAdjustmentAppliesLinesInDocumentOrder() {
	// An ABSOLUTE line followed by a RELATIVE one on the same product is
	// order sensitive: from 80, set-to-100 then +5 lands at 105, while the
	// swapped order would land at 100.
	adjustment := suite.draftAdjustment(
		domain.AdjustmentItem{
			ItemID:    uuid.NewString(),
			ProductID: suite.product.ProductID,
			Quantity:  decimal.NewFromInt(100),
			UOM:       "pcs",
			Type:      domain.AdjustmentAbsolute,
		},
		domain.AdjustmentItem{
			ItemID:    uuid.NewString(),
			ProductID: suite.product.ProductID,
			Quantity:  decimal.NewFromInt(5),
			UOM:       "pcs",
			Type:      domain.AdjustmentRelative,
		},
	)

	suite.adjustmentRepo.On("FindAdjustmentForUpdate", mock.Anything, mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, []string{suite.product.ProductID}).Return(suite.productsMap(), nil).Once()
	suite.inventoryRepo.On("GetQuantitiesForUpdate", mock.Anything, mock.Anything, suite.warehouse.WarehouseID, []string{suite.product.ProductID}).
		Return(map[string]decimal.Decimal{suite.product.ProductID: decimal.NewFromInt(80)}, nil).Once()

	var movements []domain.StockMovement
	suite.inventoryRepo.On("InsertMovement", mock.Anything, mock.Anything, mock.AnythingOfType("domain.StockMovement")).
		Run(func(args mock.Arguments) {
			movements = append(movements, args.Get(2).(domain.StockMovement))
		}).Return(nil).Times(2)
	suite.inventoryRepo.On("SetQuantity", mock.Anything, mock.Anything, suite.product.ProductID, suite.warehouse.WarehouseID, mock.Anything).Return(nil).Times(2)
	suite.adjustmentRepo.On("CaptureItemQuantities", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("MarkAdjustmentPosted", mock.Anything, mock.Anything, adjustment.AdjustmentID, suite.userID, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()

	_, err := suite.service.PostAdjustment(suite.ctx, adjustment.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(movements, 2)
	suite.True(movements[0].Quantity.Equal(decimal.NewFromInt(20)))
	suite.True(movements[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	suite.True(movements[1].Quantity.Equal(decimal.NewFromInt(5)))
	suite.True(movements[1].RunningBalance.Equal(decimal.NewFromInt(105)))
}

func (suite *AdjustmentServiceTestSuite) TestPostAdjustmentInsufficientStock() {
	adjustment := suite.draftAdjustment(domain.AdjustmentItem{
		ItemID:    uuid.NewString(),
		ProductID: suite.product.ProductID,
		Quantity:  decimal.NewFromInt(-100),
		UOM:       "pcs",
		Type:      domain.AdjustmentRelative,
	})

	suite.adjustmentRepo.On("FindAdjustmentForUpdate", mock.Anything, mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()
	suite.inventoryRepo.On("GetQuantitiesForUpdate", mock.Anything, mock.Anything, suite.warehouse.WarehouseID, mock.Anything).
		Return(map[string]decimal.Decimal{suite.product.ProductID: decimal.NewFromInt(80)}, nil).Once()

	_, err := suite.service.PostAdjustment(suite.ctx, adjustment.AdjustmentID, suite.userID)

	suite.Require().Error(err)
	var stockErr *apperrors.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.True(stockErr.Available.Equal(decimal.NewFromInt(80)))
	suite.True(stockErr.Requested.Equal(decimal.NewFromInt(100)))
	suite.inventoryRepo.AssertNotCalled(suite.T(), "InsertMovement", mock.Anything, mock.Anything, mock.Anything)
	suite.adjustmentRepo.AssertNotCalled(suite.T(), "MarkAdjustmentPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestPostAdjustmentNegativeStockAllowed() {
	service := services.NewAdjustmentService(
		suite.adjustmentRepo, suite.inventoryRepo, suite.catalogRepo, suite.auditRepo, true)

	adjustment := suite.draftAdjustment(domain.AdjustmentItem{
		ItemID:    uuid.NewString(),
		ProductID: suite.product.ProductID,
		Quantity:  decimal.NewFromInt(-100),
		UOM:       "pcs",
		Type:      domain.AdjustmentRelative,
	})

	suite.adjustmentRepo.On("FindAdjustmentForUpdate", mock.Anything, mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()
	suite.inventoryRepo.On("GetQuantitiesForUpdate", mock.Anything, mock.Anything, suite.warehouse.WarehouseID, mock.Anything).
		Return(map[string]decimal.Decimal{suite.product.ProductID: decimal.NewFromInt(80)}, nil).Once()
	suite.inventoryRepo.On("InsertMovement", mock.Anything, mock.Anything, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.RunningBalance.Equal(decimal.NewFromInt(-20))
	})).Return(nil).Once()
	suite.inventoryRepo.On("SetQuantity", mock.Anything, mock.Anything, suite.product.ProductID, suite.warehouse.WarehouseID, decimal.NewFromInt(-20)).Return(nil).Once()
	suite.adjustmentRepo.On("CaptureItemQuantities", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("MarkAdjustmentPosted", mock.Anything, mock.Anything, adjustment.AdjustmentID, suite.userID, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()

	_, err := service.PostAdjustment(suite.ctx, adjustment.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.inventoryRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestPostAdjustmentRejectsNonDraft() {
	adjustment := suite.draftAdjustment()
	adjustment.Status = domain.StatusPosted

	suite.adjustmentRepo.On("FindAdjustmentForUpdate", mock.Anything, mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()

	_, err := suite.service.PostAdjustment(suite.ctx, adjustment.AdjustmentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdjustmentServiceTestSuite) TestUpdateAdjustmentRejectsPosted() {
	adjustment := suite.draftAdjustment()
	adjustment.Status = domain.StatusPosted
	newReason := "Changed my mind"

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()

	_, err := suite.service.UpdateAdjustment(suite.ctx, adjustment.AdjustmentID, dto.UpdateAdjustmentRequest{Reason: &newReason}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.adjustmentRepo.AssertNotCalled(suite.T(), "UpdateDraftAdjustment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestUpdateAdjustmentCancelsDraft() {
	adjustment := suite.draftAdjustment()

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()

	var updated domain.Adjustment
	suite.adjustmentRepo.On("UpdateDraftAdjustment", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Adjustment")).
		Run(func(args mock.Arguments) {
			updated = args.Get(2).(domain.Adjustment)
		}).Return(nil).Once()
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()

	_, err := suite.service.UpdateAdjustment(suite.ctx, adjustment.AdjustmentID, dto.UpdateAdjustmentRequest{Cancel: true}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelled, updated.Status)
}

func (suite *AdjustmentServiceTestSuite) TestReverseAdjustmentRelative() {
	system := decimal.NewFromInt(50)
	actual := decimal.NewFromInt(26)
	original := suite.draftAdjustment(domain.AdjustmentItem{
		ItemID:         uuid.NewString(),
		ProductID:      suite.product.ProductID,
		Quantity:       decimal.NewFromInt(-2),
		UOM:            "box",
		Type:           domain.AdjustmentRelative,
		SystemQuantity: &system,
		ActualQuantity: &actual,
		BaseUOM:        "pcs",
	})
	original.Status = domain.StatusPosted

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, original.AdjustmentID).Return(original, nil).Once()
	suite.adjustmentRepo.On("CountReversalsOf", mock.Anything, original.AdjustmentNumber).Return(0, nil).Once()
	suite.adjustmentRepo.On("NextAdjustmentNumber", mock.Anything, mock.Anything, mock.Anything).Return("ADJ-20260831-0002", nil).Once()

	var reversal domain.Adjustment
	suite.adjustmentRepo.On("CreateAdjustment", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Adjustment")).
		Run(func(args mock.Arguments) {
			reversal = args.Get(2).(domain.Adjustment)
		}).Return(nil).Once()

	// Posting the reversal walks the usual path.
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()
	suite.inventoryRepo.On("GetQuantitiesForUpdate", mock.Anything, mock.Anything, suite.warehouse.WarehouseID, mock.Anything).
		Return(map[string]decimal.Decimal{suite.product.ProductID: actual}, nil).Once()
	suite.inventoryRepo.On("InsertMovement", mock.Anything, mock.Anything, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Quantity.Equal(decimal.NewFromInt(24)) && m.RunningBalance.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()
	suite.inventoryRepo.On("SetQuantity", mock.Anything, mock.Anything, suite.product.ProductID, suite.warehouse.WarehouseID, decimal.NewFromInt(50)).Return(nil).Once()
	suite.adjustmentRepo.On("CaptureItemQuantities", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("MarkAdjustmentPosted", mock.Anything, mock.Anything, mock.AnythingOfType("string"), suite.userID, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, mock.AnythingOfType("string")).
		Return(&domain.Adjustment{Status: domain.StatusPosted}, nil).Once()

	_, err := suite.service.ReverseAdjustment(suite.ctx, original.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(reversal.Items, 1)
	suite.Equal(domain.AdjustmentRelative, reversal.Items[0].Type)
	suite.True(reversal.Items[0].Quantity.Equal(decimal.NewFromInt(2)))
	suite.Equal("box", reversal.Items[0].UOM)
	suite.Equal(original.AdjustmentNumber, reversal.ReferenceNumber)
	suite.Contains(reversal.Reason, original.AdjustmentNumber)
}

func (suite *AdjustmentServiceTestSuite) TestReverseAdjustmentAbsoluteUsesCapturedDelta() {
	system := decimal.NewFromInt(80)
	actual := decimal.NewFromInt(200)
	original := suite.draftAdjustment(domain.AdjustmentItem{
		ItemID:         uuid.NewString(),
		ProductID:      suite.product.ProductID,
		Quantity:       decimal.NewFromInt(200),
		UOM:            "pcs",
		Type:           domain.AdjustmentAbsolute,
		SystemQuantity: &system,
		ActualQuantity: &actual,
		BaseUOM:        "pcs",
	})
	original.Status = domain.StatusPosted

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, original.AdjustmentID).Return(original, nil).Once()
	suite.adjustmentRepo.On("CountReversalsOf", mock.Anything, original.AdjustmentNumber).Return(0, nil).Once()
	suite.adjustmentRepo.On("NextAdjustmentNumber", mock.Anything, mock.Anything, mock.Anything).Return("ADJ-20260831-0002", nil).Once()

	var reversal domain.Adjustment
	suite.adjustmentRepo.On("CreateAdjustment", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Adjustment")).
		Run(func(args mock.Arguments) {
			reversal = args.Get(2).(domain.Adjustment)
		}).Return(nil).Once()

	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()
	suite.inventoryRepo.On("GetQuantitiesForUpdate", mock.Anything, mock.Anything, suite.warehouse.WarehouseID, mock.Anything).
		Return(map[string]decimal.Decimal{suite.product.ProductID: actual}, nil).Once()
	suite.inventoryRepo.On("InsertMovement", mock.Anything, mock.Anything, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Quantity.Equal(decimal.NewFromInt(-120)) && m.RunningBalance.Equal(decimal.NewFromInt(80))
	})).Return(nil).Once()
	suite.inventoryRepo.On("SetQuantity", mock.Anything, mock.Anything, suite.product.ProductID, suite.warehouse.WarehouseID, decimal.NewFromInt(80)).Return(nil).Once()
	suite.adjustmentRepo.On("CaptureItemQuantities", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("MarkAdjustmentPosted", mock.Anything, mock.Anything, mock.AnythingOfType("string"), suite.userID, mock.Anything).Return(nil).Once()
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, mock.AnythingOfType("string")).
		Return(&domain.Adjustment{Status: domain.StatusPosted}, nil).Once()

	_, err := suite.service.ReverseAdjustment(suite.ctx, original.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(reversal.Items, 1)
	suite.Equal(domain.AdjustmentRelative, reversal.Items[0].Type)
	suite.True(reversal.Items[0].Quantity.Equal(decimal.NewFromInt(-120)))
	suite.Equal("pcs", reversal.Items[0].UOM)
}

func (suite *AdjustmentServiceTestSuite) TestReverseAdjustmentRejectsDraft() {
	original := suite.draftAdjustment()

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, original.AdjustmentID).Return(original, nil).Once()

	_, err := suite.service.ReverseAdjustment(suite.ctx, original.AdjustmentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.adjustmentRepo.AssertNotCalled(suite.T(), "CreateAdjustment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestReverseAdjustmentMissingCapturesFails() {
	original := suite.draftAdjustment(domain.AdjustmentItem{
		ItemID:    uuid.NewString(),
		ProductID: suite.product.ProductID,
		Quantity:  decimal.NewFromInt(200),
		UOM:       "pcs",
		Type:      domain.AdjustmentAbsolute,
		BaseUOM:   "pcs",
	})
	original.Status = domain.StatusPosted

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, original.AdjustmentID).Return(original, nil).Once()
	suite.adjustmentRepo.On("CountReversalsOf", mock.Anything, original.AdjustmentNumber).Return(0, nil).Once()

	_, err := suite.service.ReverseAdjustment(suite.ctx, original.AdjustmentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInternal)
}

func (suite *AdjustmentServiceTestSuite) TestReverseAdjustmentRejectsSecondReversal() {
	original := suite.draftAdjustment(domain.AdjustmentItem{
		ItemID:    uuid.NewString(),
		ProductID: suite.product.ProductID,
		Quantity:  decimal.NewFromInt(-5),
		UOM:       "pcs",
		Type:      domain.AdjustmentRelative,
		BaseUOM:   "pcs",
	})
	original.Status = domain.StatusPosted

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, original.AdjustmentID).Return(original, nil).Once()
	suite.adjustmentRepo.On("CountReversalsOf", mock.Anything, original.AdjustmentNumber).Return(1, nil).Once()

	_, err := suite.service.ReverseAdjustment(suite.ctx, original.AdjustmentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "already been reversed")
	suite.adjustmentRepo.AssertNotCalled(suite.T(), "CreateAdjustment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestCopyAdjustmentResetsDocument() {
	system := decimal.NewFromInt(80)
	actual := decimal.NewFromInt(200)
	original := suite.draftAdjustment(domain.AdjustmentItem{
		ItemID:         uuid.NewString(),
		ProductID:      suite.product.ProductID,
		Quantity:       decimal.NewFromInt(200),
		UOM:            "pcs",
		Type:           domain.AdjustmentAbsolute,
		SystemQuantity: &system,
		ActualQuantity: &actual,
	})
	original.Status = domain.StatusPosted

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, original.AdjustmentID).Return(original, nil).Once()
	suite.catalogRepo.On("FindWarehouseByID", mock.Anything, suite.warehouse.WarehouseID).Return(&suite.warehouse, nil).Once()
	suite.catalogRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(suite.productsMap(), nil).Once()
	suite.adjustmentRepo.On("NextAdjustmentNumber", mock.Anything, mock.Anything, mock.Anything).Return("ADJ-20260831-0009", nil).Once()

	var copied domain.Adjustment
	suite.adjustmentRepo.On("CreateAdjustment", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Adjustment")).
		Run(func(args mock.Arguments) {
			copied = args.Get(2).(domain.Adjustment)
		}).Return(nil).Once()
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, mock.AnythingOfType("string")).
		Return(&domain.Adjustment{Status: domain.StatusDraft}, nil).Once()

	_, err := suite.service.CopyAdjustment(suite.ctx, original.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDraft, copied.Status)
	suite.NotEqual(original.AdjustmentID, copied.AdjustmentID)
	suite.Equal("ADJ-20260831-0009", copied.AdjustmentNumber)
	suite.Contains(copied.Reason, "Copy of "+original.AdjustmentNumber)
	suite.Require().Len(copied.Items, 1)
	suite.Nil(copied.Items[0].SystemQuantity)
	suite.Nil(copied.Items[0].ActualQuantity)
}

func (suite *AdjustmentServiceTestSuite) TestDeleteAdjustmentDraft() {
	adjustment := suite.draftAdjustment()

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()
	suite.adjustmentRepo.On("DeleteAdjustment", mock.Anything, adjustment.AdjustmentID).Return(nil).Once()

	err := suite.service.DeleteAdjustment(suite.ctx, adjustment.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.adjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestDeleteAdjustmentRejectsPosted() {
	adjustment := suite.draftAdjustment()
	adjustment.Status = domain.StatusPosted

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()

	err := suite.service.DeleteAdjustment(suite.ctx, adjustment.AdjustmentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.adjustmentRepo.AssertNotCalled(suite.T(), "DeleteAdjustment", mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestDeleteAdjustmentConflictWhenPostedConcurrently() {
	adjustment := suite.draftAdjustment()

	// The document reads as a draft, but another request posts it before
	// the delete lands. The repository's status guard reports the race.
	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil).Once()
	suite.adjustmentRepo.On("DeleteAdjustment", mock.Anything, adjustment.AdjustmentID).
		Return(fmt.Errorf("%w: adjustment %s is not a draft", apperrors.ErrConflict, adjustment.AdjustmentID)).Once()

	err := suite.service.DeleteAdjustment(suite.ctx, adjustment.AdjustmentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AdjustmentServiceTestSuite) TestGetAdjustmentByIDNotFound() {
	adjustmentID := uuid.NewString()

	suite.adjustmentRepo.On("FindAdjustmentByID", mock.Anything, adjustmentID).
		Return(nil, apperrors.NewNotFoundError("adjustment not found")).Once()

	_, err := suite.service.GetAdjustmentByID(suite.ctx, adjustmentID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func TestAdjustmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdjustmentServiceTestSuite))
}
