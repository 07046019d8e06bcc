package services

import (
	"context"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/SscSPs/savings_ledger/internal/dto"
)

// SavingsAccountReaderSvc defines read operations for savings accounts
type SavingsAccountReaderSvc interface {
	// GetSavingsAccount retrieves an account with its charges and summary.
	GetSavingsAccount(ctx context.Context, accountID string) (*domain.SavingsAccount, error)

	// ListTransactions retrieves a page of an account's transactions.
	ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// SavingsLedgerSvc defines the ledger commands
type SavingsLedgerSvc interface {
	Activate(ctx context.Context, accountID string, req dto.ActivateSavingsAccountRequest, userID string) (*domain.CommandProcessingResult, error)
	Deposit(ctx context.Context, accountID string, req dto.SavingsTransactionRequest, userID string) (*domain.CommandProcessingResult, error)
	Withdraw(ctx context.Context, accountID string, req dto.SavingsWithdrawalRequest, userID string) (*domain.CommandProcessingResult, error)
	UndoTransaction(ctx context.Context, accountID, transactionID string, req dto.UndoTransactionRequest, userID string) (*domain.CommandProcessingResult, error)
	AdjustTransaction(ctx context.Context, accountID, transactionID string, req dto.SavingsTransactionRequest, userID string) (*domain.CommandProcessingResult, error)
	Close(ctx context.Context, accountID string, req dto.CloseSavingsAccountRequest, userID string) (*domain.CommandProcessingResult, error)
	PrematureClose(ctx context.Context, accountID string, req dto.CloseSavingsAccountRequest, userID string) (*domain.CommandProcessingResult, error)
}

// SavingsInterestSvc defines the interest commands
type SavingsInterestSvc interface {
	CalculateInterest(ctx context.Context, accountID string, userID string) (*domain.CommandProcessingResult, error)
	PostInterest(ctx context.Context, accountID string, req dto.PostInterestRequest, userID string) (*domain.CommandProcessingResult, error)
	UpdateMaturityDetails(ctx context.Context, accountID string, userID string) (*domain.CommandProcessingResult, error)
}

// SavingsChargeSvc defines the charge commands
type SavingsChargeSvc interface {
	AddCharge(ctx context.Context, accountID string, req dto.AddChargeRequest, userID string) (*domain.CommandProcessingResult, error)
	UpdateCharge(ctx context.Context, accountID, chargeID string, req dto.UpdateChargeRequest, userID string) (*domain.CommandProcessingResult, error)
	WaiveCharge(ctx context.Context, accountID, chargeID string, userID string) (*domain.CommandProcessingResult, error)
	RemoveCharge(ctx context.Context, accountID, chargeID string, userID string) (*domain.CommandProcessingResult, error)
	PayCharge(ctx context.Context, accountID, chargeID string, req dto.PayChargeRequest, userID string) (*domain.CommandProcessingResult, error)
	ApplyChargeDue(ctx context.Context, accountID, chargeID string, userID string) (*domain.CommandProcessingResult, error)
}

// SavingsTransferSvc defines the office transfer commands
type SavingsTransferSvc interface {
	InitiateTransfer(ctx context.Context, accountID string, req dto.TransferRequest, userID string) (*domain.CommandProcessingResult, error)
	RejectTransfer(ctx context.Context, accountID string, userID string) (*domain.CommandProcessingResult, error)
	WithdrawTransfer(ctx context.Context, accountID string, req dto.TransferRequest, userID string) (*domain.CommandProcessingResult, error)
	AcceptTransfer(ctx context.Context, accountID string, req dto.AcceptTransferRequest, userID string) (*domain.CommandProcessingResult, error)
}

// SavingsAccountSvcFacade combines all savings account service interfaces
type SavingsAccountSvcFacade interface {
	SavingsAccountReaderSvc
	SavingsLedgerSvc
	SavingsInterestSvc
	SavingsChargeSvc
	SavingsTransferSvc
}
