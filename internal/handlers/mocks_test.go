package handlers_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/dto"
)

// --- Mock SavingsAccountService ---
type MockSavingsAccountService struct {
	mock.Mock
}

var _ portssvc.SavingsAccountSvcFacade = (*MockSavingsAccountService)(nil)

func (m *MockSavingsAccountService) result(args mock.Arguments) (*domain.CommandProcessingResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommandProcessingResult), args.Error(1)
}

func (m *MockSavingsAccountService) GetSavingsAccount(ctx context.Context, accountID string) (*domain.SavingsAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsAccount), args.Error(1)
}

func (m *MockSavingsAccountService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockSavingsAccountService) Activate(ctx context.Context, accountID string, req dto.ActivateSavingsAccountRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, req, userID))
}

func (m *MockSavingsAccountService) Deposit(ctx context.Context, accountID string, req dto.SavingsTransactionRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, req, userID))
}

func (m *MockSavingsAccountService) Withdraw(ctx context.Context, accountID string, req dto.SavingsWithdrawalRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, req, userID))
}

func (m *MockSavingsAccountService) UndoTransaction(ctx context.Context, accountID, transactionID string, req dto.UndoTransactionRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, transactionID, req, userID))
}

func (m *MockSavingsAccountService) AdjustTransaction(ctx context.Context, accountID, transactionID string, req dto.SavingsTransactionRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, transactionID, req, userID))
}

func (m *MockSavingsAccountService) Close(ctx context.Context, accountID string, req dto.CloseSavingsAccountRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, req, userID))
}

func (m *MockSavingsAccountService) PrematureClose(ctx context.Context, accountID string, req dto.CloseSavingsAccountRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, req, userID))
}

func (m *MockSavingsAccountService) CalculateInterest(ctx context.Context, accountID string, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, userID))
}

func (m *MockSavingsAccountService) PostInterest(ctx context.Context, accountID string, req dto.PostInterestRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, req, userID))
}

func (m *MockSavingsAccountService) UpdateMaturityDetails(ctx context.Context, accountID string, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, userID))
}

func (m *MockSavingsAccountService) AddCharge(ctx context.Context, accountID string, req dto.AddChargeRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, req, userID))
}

func (m *MockSavingsAccountService) UpdateCharge(ctx context.Context, accountID, chargeID string, req dto.UpdateChargeRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, chargeID, req, userID))
}

func (m *MockSavingsAccountService) WaiveCharge(ctx context.Context, accountID, chargeID string, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, chargeID, userID))
}

func (m *MockSavingsAccountService) RemoveCharge(ctx context.Context, accountID, chargeID string, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, chargeID, userID))
}

func (m *MockSavingsAccountService) PayCharge(ctx context.Context, accountID, chargeID string, req dto.PayChargeRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, chargeID, req, userID))
}

func (m *MockSavingsAccountService) ApplyChargeDue(ctx context.Context, accountID, chargeID string, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, chargeID, userID))
}

func (m *MockSavingsAccountService) InitiateTransfer(ctx context.Context, accountID string, req dto.TransferRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, req, userID))
}

func (m *MockSavingsAccountService) RejectTransfer(ctx context.Context, accountID string, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, userID))
}

func (m *MockSavingsAccountService) WithdrawTransfer(ctx context.Context, accountID string, req dto.TransferRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, req, userID))
}

func (m *MockSavingsAccountService) AcceptTransfer(ctx context.Context, accountID string, req dto.AcceptTransferRequest, userID string) (*domain.CommandProcessingResult, error) {
	return m.result(m.Called(ctx, accountID, req, userID))
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CurrencyData(ctx context.Context, code string) (domain.CurrencyData, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.CurrencyData), args.Error(1)
}

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) PostDelta(ctx context.Context, tx pgx.Tx, delta domain.AccountingBridgeDelta, pc domain.ProcessingContext) error {
	args := m.Called(ctx, tx, delta, pc)
	return args.Error(0)
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
