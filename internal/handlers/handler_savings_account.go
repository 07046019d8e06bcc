package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/dto"
	"github.com/SscSPs/savings_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// savingsAccountHandler handles HTTP requests against a single savings account.
type savingsAccountHandler struct {
	savingsService portssvc.SavingsAccountSvcFacade
}

// newSavingsAccountHandler creates a new savingsAccountHandler.
func newSavingsAccountHandler(ss portssvc.SavingsAccountSvcFacade) *savingsAccountHandler {
	return &savingsAccountHandler{
		savingsService: ss,
	}
}

// RegisterSavingsAccountRoutes registers the savings account read and command routes.
func RegisterSavingsAccountRoutes(rg *gin.RouterGroup, savingsService portssvc.SavingsAccountSvcFacade) {
	h := newSavingsAccountHandler(savingsService)

	accounts := rg.Group("/savingsaccounts/:accountID")
	{
		accounts.GET("", h.getSavingsAccount)
		accounts.GET("/transactions", h.listTransactions)

		accounts.POST("/activate", h.activate)
		accounts.POST("/deposit", h.deposit)
		accounts.POST("/withdraw", h.withdraw)
		accounts.POST("/transactions/:transactionID/undo", h.undoTransaction)
		accounts.POST("/transactions/:transactionID/adjust", h.adjustTransaction)
		accounts.POST("/close", h.closeAccount)
		accounts.POST("/premature-close", h.prematureClose)

		accounts.POST("/calculate-interest", h.calculateInterest)
		accounts.POST("/post-interest", h.postInterest)
		accounts.POST("/update-maturity", h.updateMaturityDetails)

		accounts.POST("/charges", h.addCharge)
		accounts.PUT("/charges/:chargeID", h.updateCharge)
		accounts.DELETE("/charges/:chargeID", h.removeCharge)
		accounts.POST("/charges/:chargeID/waive", h.waiveCharge)
		accounts.POST("/charges/:chargeID/pay", h.payCharge)
		accounts.POST("/charges/:chargeID/apply-due", h.applyChargeDue)

		accounts.POST("/transfers/initiate", h.initiateTransfer)
		accounts.POST("/transfers/withdraw", h.withdrawTransfer)
		accounts.POST("/transfers/reject", h.rejectTransfer)
		accounts.POST("/transfers/accept", h.acceptTransfer)
	}
}

type commandFunc func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error)

// runCommand resolves the acting user, runs the command and writes its result.
func (h *savingsAccountHandler) runCommand(c *gin.Context, name string, fn commandFunc) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("command", name),
		slog.String("savings_account_id", accountID),
	)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received savings account command")
	result, err := fn(c.Request.Context(), accountID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to process "+name)
		return
	}

	logger.Info("Savings account command processed", slog.String("resource_id", result.EntityID))
	c.JSON(http.StatusOK, result)
}

// bindJSON binds the request body, writing a 400 and returning false on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), bindingError(err), "Invalid request")
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for commands whose body may be omitted.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), bindingError(err), "Invalid request")
		return false
	}
	return true
}

// getSavingsAccount godoc
// @Summary Get a savings account
// @Description Retrieves a savings account with its charges and summary
// @Tags savingsaccounts
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Success 200 {object} dto.SavingsAccountResponse
// @Failure 404 {object} map[string]string "Savings account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve savings account"
// @Security BearerAuth
// @Router /savingsaccounts/{accountID} [get]
func (h *savingsAccountHandler) getSavingsAccount(c *gin.Context) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("savings_account_id", accountID))
	logger.Info("Received request to get savings account")

	account, err := h.savingsService.GetSavingsAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve savings account")
		return
	}

	c.JSON(http.StatusOK, dto.ToSavingsAccountResponse(account))
}

// listTransactions godoc
// @Summary List transactions of a savings account
// @Description Retrieves a page of transactions, newest first
// @Tags savingsaccounts
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/transactions [get]
func (h *savingsAccountHandler) listTransactions(c *gin.Context) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("savings_account_id", accountID))

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, logger, bindingError(err), "Invalid query parameters")
		return
	}

	logger.Info("Received request to list transactions", slog.Int("limit", params.Limit))
	resp, err := h.savingsService.ListTransactions(c.Request.Context(), accountID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// activate godoc
// @Summary Activate a savings account
// @Tags savingsaccounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   request body dto.ActivateSavingsAccountRequest true "Activation date"
// @Success 200 {object} domain.CommandProcessingResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Rejected by a ledger rule"
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/activate [post]
func (h *savingsAccountHandler) activate(c *gin.Context) {
	var req dto.ActivateSavingsAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	h.runCommand(c, "activate", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.Activate(ctx, accountID, req, userID)
	})
}

// deposit godoc
// @Summary Deposit into a savings account
// @Tags savingsaccounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   request body dto.SavingsTransactionRequest true "Deposit details"
// @Success 200 {object} domain.CommandProcessingResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Rejected by a ledger rule"
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/deposit [post]
func (h *savingsAccountHandler) deposit(c *gin.Context) {
	var req dto.SavingsTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	h.runCommand(c, "deposit", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.Deposit(ctx, accountID, req, userID)
	})
}

// withdraw godoc
// @Summary Withdraw from a savings account
// @Tags savingsaccounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   request body dto.SavingsWithdrawalRequest true "Withdrawal details"
// @Success 200 {object} domain.CommandProcessingResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Insufficient balance or account not active"
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/withdraw [post]
func (h *savingsAccountHandler) withdraw(c *gin.Context) {
	var req dto.SavingsWithdrawalRequest
	if !bindJSON(c, &req) {
		return
	}
	h.runCommand(c, "withdraw", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.Withdraw(ctx, accountID, req, userID)
	})
}

// undoTransaction godoc
// @Summary Reverse a savings transaction
// @Tags savingsaccounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   transactionID path string true "Transaction ID"
// @Param   request body dto.UndoTransactionRequest false "Undo options"
// @Success 200 {object} domain.CommandProcessingResult
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Already reversed or linked to a transfer"
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/transactions/{transactionID}/undo [post]
func (h *savingsAccountHandler) undoTransaction(c *gin.Context) {
	var req dto.UndoTransactionRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	transactionID := c.Param("transactionID")
	h.runCommand(c, "undo transaction", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.UndoTransaction(ctx, accountID, transactionID, req, userID)
	})
}

// adjustTransaction godoc
// @Summary Replace a deposit or withdrawal with corrected values
// @Tags savingsaccounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   transactionID path string true "Transaction ID"
// @Param   request body dto.SavingsTransactionRequest true "Replacement values"
// @Success 200 {object} domain.CommandProcessingResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Rejected by a ledger rule"
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/transactions/{transactionID}/adjust [post]
func (h *savingsAccountHandler) adjustTransaction(c *gin.Context) {
	var req dto.SavingsTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	transactionID := c.Param("transactionID")
	h.runCommand(c, "adjust transaction", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.AdjustTransaction(ctx, accountID, transactionID, req, userID)
	})
}

// closeAccount godoc
// @Summary Close a savings account
// @Tags savingsaccounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   request body dto.CloseSavingsAccountRequest true "Closure details"
// @Success 200 {object} domain.CommandProcessingResult
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/close [post]
func (h *savingsAccountHandler) closeAccount(c *gin.Context) {
	var req dto.CloseSavingsAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	h.runCommand(c, "close", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.Close(ctx, accountID, req, userID)
	})
}

// prematureClose godoc
// @Summary Close a term deposit before maturity
// @Tags savingsaccounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   request body dto.CloseSavingsAccountRequest true "Closure details"
// @Success 200 {object} domain.CommandProcessingResult
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/premature-close [post]
func (h *savingsAccountHandler) prematureClose(c *gin.Context) {
	var req dto.CloseSavingsAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	h.runCommand(c, "premature close", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.PrematureClose(ctx, accountID, req, userID)
	})
}

func (h *savingsAccountHandler) calculateInterest(c *gin.Context) {
	h.runCommand(c, "calculate interest", h.savingsService.CalculateInterest)
}

func (h *savingsAccountHandler) postInterest(c *gin.Context) {
	var req dto.PostInterestRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	h.runCommand(c, "post interest", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.PostInterest(ctx, accountID, req, userID)
	})
}

func (h *savingsAccountHandler) updateMaturityDetails(c *gin.Context) {
	h.runCommand(c, "update maturity details", h.savingsService.UpdateMaturityDetails)
}

// addCharge godoc
// @Summary Attach a charge to a savings account
// @Tags savingsaccounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   request body dto.AddChargeRequest true "Charge details"
// @Success 200 {object} domain.CommandProcessingResult
// @Failure 400 {object} map[string]string "Invalid input or due date on a holiday"
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/charges [post]
func (h *savingsAccountHandler) addCharge(c *gin.Context) {
	var req dto.AddChargeRequest
	if !bindJSON(c, &req) {
		return
	}
	h.runCommand(c, "add charge", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.AddCharge(ctx, accountID, req, userID)
	})
}

func (h *savingsAccountHandler) updateCharge(c *gin.Context) {
	var req dto.UpdateChargeRequest
	if !bindJSON(c, &req) {
		return
	}
	chargeID := c.Param("chargeID")
	h.runCommand(c, "update charge", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.UpdateCharge(ctx, accountID, chargeID, req, userID)
	})
}

func (h *savingsAccountHandler) removeCharge(c *gin.Context) {
	chargeID := c.Param("chargeID")
	h.runCommand(c, "remove charge", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.RemoveCharge(ctx, accountID, chargeID, userID)
	})
}

func (h *savingsAccountHandler) waiveCharge(c *gin.Context) {
	chargeID := c.Param("chargeID")
	h.runCommand(c, "waive charge", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.WaiveCharge(ctx, accountID, chargeID, userID)
	})
}

// payCharge godoc
// @Summary Pay a charge from the account balance
// @Tags savingsaccounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   chargeID path string true "Charge ID"
// @Param   request body dto.PayChargeRequest true "Payment details"
// @Success 200 {object} domain.CommandProcessingResult
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/charges/{chargeID}/pay [post]
func (h *savingsAccountHandler) payCharge(c *gin.Context) {
	var req dto.PayChargeRequest
	if !bindJSON(c, &req) {
		return
	}
	chargeID := c.Param("chargeID")
	h.runCommand(c, "pay charge", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.PayCharge(ctx, accountID, chargeID, req, userID)
	})
}

func (h *savingsAccountHandler) applyChargeDue(c *gin.Context) {
	chargeID := c.Param("chargeID")
	h.runCommand(c, "apply charge due", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.ApplyChargeDue(ctx, accountID, chargeID, userID)
	})
}

// initiateTransfer godoc
// @Summary Start moving a savings account to another office
// @Tags savingsaccounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Savings Account ID"
// @Param   request body dto.TransferRequest true "Transfer date"
// @Success 200 {object} domain.CommandProcessingResult
// @Security BearerAuth
// @Router /savingsaccounts/{accountID}/transfers/initiate [post]
func (h *savingsAccountHandler) initiateTransfer(c *gin.Context) {
	var req dto.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	h.runCommand(c, "initiate transfer", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.InitiateTransfer(ctx, accountID, req, userID)
	})
}

func (h *savingsAccountHandler) withdrawTransfer(c *gin.Context) {
	var req dto.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	h.runCommand(c, "withdraw transfer", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.WithdrawTransfer(ctx, accountID, req, userID)
	})
}

func (h *savingsAccountHandler) rejectTransfer(c *gin.Context) {
	h.runCommand(c, "reject transfer", h.savingsService.RejectTransfer)
}

func (h *savingsAccountHandler) acceptTransfer(c *gin.Context) {
	var req dto.AcceptTransferRequest
	if !bindJSON(c, &req) {
		return
	}
	h.runCommand(c, "accept transfer", func(ctx context.Context, accountID, userID string) (*domain.CommandProcessingResult, error) {
		return h.savingsService.AcceptTransfer(ctx, accountID, req, userID)
	})
}
