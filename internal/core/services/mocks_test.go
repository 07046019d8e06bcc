package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
)

// --- Mock SavingsAccountRepository ---
type MockSavingsAccountRepository struct {
	mock.Mock
}

var _ portsrepo.SavingsAccountRepositoryWithTx = (*MockSavingsAccountRepository)(nil)

func (m *MockSavingsAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSavingsAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSavingsAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSavingsAccountRepository) FindSavingsAccountByID(ctx context.Context, accountID string) (*domain.SavingsAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsAccount), args.Error(1)
}

func (m *MockSavingsAccountRepository) ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockSavingsAccountRepository) FindSavingsAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.SavingsAccount, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsAccount), args.Error(1)
}

func (m *MockSavingsAccountRepository) SaveSavingsAccountInTx(ctx context.Context, tx pgx.Tx, account *domain.SavingsAccount) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

// --- Mock ChargeDefinitionReader ---
type MockChargeDefinitionReader struct {
	mock.Mock
}

func (m *MockChargeDefinitionReader) FindChargeDefinitionByID(ctx context.Context, chargeDefinitionID string) (*domain.ChargeDefinition, error) {
	args := m.Called(ctx, chargeDefinitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChargeDefinition), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindGLMappingByProductID(ctx context.Context, productID string) (*domain.GLMapping, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLMapping), args.Error(1)
}

func (m *MockJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	args := m.Called(ctx, tx, journal)
	return args.Error(0)
}

// --- Mock JournalSink ---
type MockJournalSink struct {
	mock.Mock
}

var _ portssvc.JournalSink = (*MockJournalSink)(nil)

func (m *MockJournalSink) PostDelta(ctx context.Context, tx pgx.Tx, delta domain.AccountingBridgeDelta, pc domain.ProcessingContext) error {
	args := m.Called(ctx, tx, delta, pc)
	return args.Error(0)
}

// --- Mock PaymentInstrumentCapture ---
type MockPaymentCapture struct {
	mock.Mock
}

var _ portssvc.PaymentInstrumentCapture = (*MockPaymentCapture)(nil)

func (m *MockPaymentCapture) CapturePaymentDetail(ctx context.Context, tx pgx.Tx, detail *domain.PaymentDetail) (*string, map[string]any, error) {
	args := m.Called(ctx, tx, detail)
	var id *string
	if args.Get(0) != nil {
		idVal := args.Get(0).(string)
		id = &idVal
	}
	var changes map[string]any
	if args.Get(1) != nil {
		changes = args.Get(1).(map[string]any)
	}
	return id, changes, args.Error(2)
}

// --- Mock PaymentDetailRepository ---
type MockPaymentDetailRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentDetailRepository = (*MockPaymentDetailRepository)(nil)

func (m *MockPaymentDetailRepository) SavePaymentDetailInTx(ctx context.Context, tx pgx.Tx, detail domain.PaymentDetail) error {
	args := m.Called(ctx, tx, detail)
	return args.Error(0)
}

func (m *MockPaymentDetailRepository) FindPaymentDetailByID(ctx context.Context, paymentDetailID string) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, paymentDetailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDetail), args.Error(1)
}

// --- Mock ActivityGate ---
type MockActivityGate struct {
	mock.Mock
}

var _ portssvc.ActivityGate = (*MockActivityGate)(nil)

func (m *MockActivityGate) IsClientActive(ctx context.Context, clientID string) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockActivityGate) IsGroupActive(ctx context.Context, groupID string) (bool, error) {
	args := m.Called(ctx, groupID)
	return args.Bool(0), args.Error(1)
}

// --- Mock CalendarReader ---
type MockCalendarReader struct {
	mock.Mock
}

var _ portsrepo.CalendarReader = (*MockCalendarReader)(nil)

func (m *MockCalendarReader) IsHoliday(ctx context.Context, officeID string, date time.Time) (bool, error) {
	args := m.Called(ctx, officeID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockCalendarReader) IsWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockCalendarReader) GetCalendarSettings(ctx context.Context) (domain.CalendarSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CalendarSettings), args.Error(1)
}

// fixedClock pins the wall clock for deterministic business dates.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time           { return c.now }
func (c fixedClock) Location() *time.Location { return time.UTC }
