package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/dto"
	"github.com/SscSPs/savings_ledger/internal/platform/lock"
)

const defaultTransactionPageSize = 20

// savingsAccountService runs every savings account command as one unit of work.
type savingsAccountService struct {
	BaseService
	accountRepo       portsrepo.SavingsAccountRepositoryWithTx
	chargeDefRepo     portsrepo.ChargeDefinitionReader
	currencyCatalog   portssvc.CurrencyCatalog
	journalSink       portssvc.JournalSink
	paymentCapture    portssvc.PaymentInstrumentCapture
	activityGate      portssvc.ActivityGate
	holidays          portssvc.HolidayCalendar
	workingDays       portssvc.WorkingDayCalendar
	locker            portssvc.AccountLocker
	clock             portssvc.Clock
	maxCatchUpPeriods int
}

// SavingsAccountServiceOption is a functional option for configuring the savings account service
type SavingsAccountServiceOption func(*savingsAccountService)

// WithChargeDefinitions adds the charge catalog dependency
func WithChargeDefinitions(repo portsrepo.ChargeDefinitionReader) SavingsAccountServiceOption {
	return func(s *savingsAccountService) {
		s.chargeDefRepo = repo
	}
}

// WithCurrencyCatalog adds the currency metadata dependency
func WithCurrencyCatalog(catalog portssvc.CurrencyCatalog) SavingsAccountServiceOption {
	return func(s *savingsAccountService) {
		s.currencyCatalog = catalog
	}
}

// WithJournalSink adds the accounting bridge consumer
func WithJournalSink(sink portssvc.JournalSink) SavingsAccountServiceOption {
	return func(s *savingsAccountService) {
		s.journalSink = sink
	}
}

// WithPaymentCapture adds the payment instrument capture dependency
func WithPaymentCapture(capture portssvc.PaymentInstrumentCapture) SavingsAccountServiceOption {
	return func(s *savingsAccountService) {
		s.paymentCapture = capture
	}
}

// WithActivityGate adds the client and group activity check
func WithActivityGate(gate portssvc.ActivityGate) SavingsAccountServiceOption {
	return func(s *savingsAccountService) {
		s.activityGate = gate
	}
}

// WithCalendars adds the holiday and working day calendars
func WithCalendars(holidays portssvc.HolidayCalendar, workingDays portssvc.WorkingDayCalendar) SavingsAccountServiceOption {
	return func(s *savingsAccountService) {
		s.holidays = holidays
		s.workingDays = workingDays
	}
}

// WithAccountLocker replaces the in-process account locker
func WithAccountLocker(locker portssvc.AccountLocker) SavingsAccountServiceOption {
	return func(s *savingsAccountService) {
		s.locker = locker
	}
}

// WithClock replaces the UTC wall clock
func WithClock(clock portssvc.Clock) SavingsAccountServiceOption {
	return func(s *savingsAccountService) {
		s.clock = clock
	}
}

// WithMaxCatchUpPeriods bounds how many missed installments one ApplyChargeDue collects
func WithMaxCatchUpPeriods(n int) SavingsAccountServiceOption {
	return func(s *savingsAccountService) {
		if n > 0 {
			s.maxCatchUpPeriods = n
		}
	}
}

// NewSavingsAccountService creates a new savings account service with the provided options
func NewSavingsAccountService(repo portsrepo.SavingsAccountRepositoryWithTx, options ...SavingsAccountServiceOption) portssvc.SavingsAccountSvcFacade {
	svc := &savingsAccountService{
		accountRepo:       repo,
		locker:            lock.NewMemoryLocker(),
		clock:             NewTenantClock(time.UTC),
		maxCatchUpPeriods: domain.DefaultMaxChargeCatchUpPeriods,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure savingsAccountService implements the SavingsAccountSvcFacade interface
var _ portssvc.SavingsAccountSvcFacade = (*savingsAccountService)(nil)

// unit is the state a command body works against.
type unit struct {
	pc      domain.ProcessingContext
	tx      pgx.Tx
	account *domain.SavingsAccount
}

type commandFunc func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error)

// execute runs fn as a unit of work: lock the account, load it for update,
// apply fn atomically, save, post the accounting delta and commit. Any error
// rolls the database back and leaves the stored account untouched.
func (s *savingsAccountService) execute(ctx context.Context, command, accountID, userID string, fn commandFunc) (*domain.CommandProcessingResult, error) {
	logger := s.accountLogger(ctx, accountID).With(
		slog.String("command", command),
		slog.String("user_id", userID))

	release, err := s.locker.Lock(ctx, accountID)
	if err != nil {
		logger.Error("Failed to lock savings account", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(http.StatusConflict, "savings account is busy", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Failed to release savings account lock", slog.String("error", err.Error()))
		}
	}()

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			if err := s.accountRepo.Rollback(context.WithoutCancel(ctx), tx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
				logger.Warn("Failed to roll back transaction", slog.String("error", err.Error()))
			}
		}
	}()

	account, err := s.accountRepo.FindSavingsAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load savings account", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to load savings account %s: %w", accountID, err)
	}
	if err := s.resolveCurrency(ctx, account); err != nil {
		return nil, err
	}
	if err := s.checkOwnersActive(ctx, account); err != nil {
		logger.Warn("Savings account owner is not active", slog.String("error", err.Error()))
		return nil, err
	}

	pc := domain.NewProcessingContext(s.clock.Now(), s.clock.Location(), userID)
	projector := domain.NewBridgeProjector(account)

	var result *domain.CommandProcessingResult
	err = account.ApplyUnit(func(a *domain.SavingsAccount) error {
		var err error
		result, err = fn(ctx, &unit{pc: pc, tx: tx, account: a})
		return err
	})
	if err != nil {
		logger.Warn("Savings account command rejected", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.accountRepo.SaveSavingsAccountInTx(ctx, tx, account); err != nil {
		logger.Error("Failed to save savings account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save savings account %s: %w", accountID, err)
	}

	delta, err := projector.Derive(account)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	if s.journalSink != nil && !delta.IsEmpty() {
		if err := s.journalSink.PostDelta(ctx, tx, delta, pc); err != nil {
			return nil, fmt.Errorf("failed to post accounting delta: %w", err)
		}
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	committed = true

	logger.Info("Savings account command processed",
		slog.String("entity_id", result.EntityID),
		slog.Int("new_transactions", len(delta.NewTransactions)),
		slog.Int("reversed_transactions", len(delta.ReversedTransactions)))
	return result, nil
}

// resolveCurrency replaces the stored currency metadata with the catalog's.
func (s *savingsAccountService) resolveCurrency(ctx context.Context, account *domain.SavingsAccount) error {
	if s.currencyCatalog == nil {
		return nil
	}
	data, err := s.currencyCatalog.CurrencyData(ctx, account.Currency.Code)
	if err != nil {
		return fmt.Errorf("failed to resolve currency %s: %w", account.Currency.Code, err)
	}
	account.Currency = data
	return nil
}

func (s *savingsAccountService) checkOwnersActive(ctx context.Context, account *domain.SavingsAccount) error {
	if s.activityGate == nil {
		return nil
	}
	if account.ClientID != nil {
		active, err := s.activityGate.IsClientActive(ctx, *account.ClientID)
		if err != nil {
			return fmt.Errorf("failed to check client %s: %w", *account.ClientID, err)
		}
		if !active {
			return apperrors.NewNotActiveError(*account.ClientID, "error.msg.client.not.active", "client is not active")
		}
	}
	if account.GroupID != nil {
		active, err := s.activityGate.IsGroupActive(ctx, *account.GroupID)
		if err != nil {
			return fmt.Errorf("failed to check group %s: %w", *account.GroupID, err)
		}
		if !active {
			return apperrors.NewNotActiveError(*account.GroupID, "error.msg.group.not.active", "group is not active")
		}
	}
	return nil
}

// checkCalendar rejects a date that falls on a holiday or a non-working day
// unless the tenant allows transactions on such days.
func (s *savingsAccountService) checkCalendar(ctx context.Context, officeID, parameter string, date time.Time, codePrefix string) error {
	if s.holidays != nil {
		holiday, err := s.holidays.IsHoliday(ctx, officeID, date)
		if err != nil {
			return err
		}
		if holiday {
			allowed, err := s.holidays.IsTransactionAllowedOnHoliday(ctx)
			if err != nil {
				return err
			}
			if !allowed {
				return apperrors.NewCalendarViolationError(parameter, date.Format(dto.DateFormat), codePrefix+".is.on.holiday")
			}
		}
	}
	if s.workingDays != nil {
		working, err := s.workingDays.IsWorkingDay(ctx, date)
		if err != nil {
			return err
		}
		if !working {
			allowed, err := s.workingDays.IsTransactionAllowedOnNonWorkingDay(ctx)
			if err != nil {
				return err
			}
			if !allowed {
				return apperrors.NewCalendarViolationError(parameter, date.Format(dto.DateFormat), codePrefix+".is.a.nonworking.day")
			}
		}
	}
	return nil
}

// capture stores the payment detail of a request, if any.
func (s *savingsAccountService) capture(ctx context.Context, u *unit, req *dto.PaymentDetailRequest) (*string, map[string]any, error) {
	detail := req.ToPaymentDetail(u.pc.UserID, u.pc.Now)
	if detail == nil {
		return nil, nil, nil
	}
	if s.paymentCapture == nil {
		return nil, nil, apperrors.NewValidationError("paymentDetail", detail.PaymentTypeID, "payment details are not accepted")
	}
	return s.paymentCapture.CapturePaymentDetail(ctx, u.tx, detail)
}

// GetSavingsAccount retrieves an account with its charges and summary.
func (s *savingsAccountService) GetSavingsAccount(ctx context.Context, accountID string) (*domain.SavingsAccount, error) {
	account, err := s.accountRepo.FindSavingsAccountByID(ctx, accountID)
	if err != nil {
		s.accountLogger(ctx, accountID).Debug("Savings account lookup failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to find savings account %s: %w", accountID, err)
	}
	if err := s.resolveCurrency(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListTransactions retrieves a page of an account's transactions, newest first.
func (s *savingsAccountService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	txns, nextToken, err := s.accountRepo.ListTransactions(ctx, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list savings transactions", slog.String("savings_account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions for savings account %s: %w", accountID, err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
