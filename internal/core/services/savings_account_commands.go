package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/SscSPs/savings_ledger/internal/dto"
)

func withNote(r *domain.CommandProcessingResult, note string) *domain.CommandProcessingResult {
	if note != "" {
		r.With("note", note)
	}
	return r
}

func (s *savingsAccountService) Activate(ctx context.Context, accountID string, req dto.ActivateSavingsAccountRequest, userID string) (*domain.CommandProcessingResult, error) {
	activatedOn, err := dto.ParseDate("activatedOnDate", req.ActivatedOnDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "activate", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		err := u.account.Activate(u.pc, domain.ActivationCommand{
			ActivatedOn:           activatedOn,
			TransferFromAccountID: req.TransferFromAccountID,
		})
		if err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, u.account.AccountID).
			With("status", string(u.account.Status)).
			With("activatedOnDate", req.ActivatedOnDate), nil
	})
}

func (s *savingsAccountService) Deposit(ctx context.Context, accountID string, req dto.SavingsTransactionRequest, userID string) (*domain.CommandProcessingResult, error) {
	date, err := dto.ParseDate("transactionDate", req.TransactionDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "deposit", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		paymentDetailID, changes, err := s.capture(ctx, u, req.PaymentDetail)
		if err != nil {
			return nil, err
		}
		txn, err := u.account.Deposit(u.pc, domain.TransactionCommand{
			TransactionDate: date,
			Amount:          req.TransactionAmount,
			PaymentDetailID: paymentDetailID,
			Note:            req.Note,
		})
		if err != nil {
			return nil, err
		}
		r := domain.NewCommandProcessingResult(u.account, txn.TransactionID).
			With("transactionDate", req.TransactionDate).
			With("transactionAmount", txn.Amount.String()).
			Merge(changes)
		return withNote(r, req.Note), nil
	})
}

func (s *savingsAccountService) Withdraw(ctx context.Context, accountID string, req dto.SavingsWithdrawalRequest, userID string) (*domain.CommandProcessingResult, error) {
	date, err := dto.ParseDate("transactionDate", req.TransactionDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "withdraw", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		paymentDetailID, changes, err := s.capture(ctx, u, req.PaymentDetail)
		if err != nil {
			return nil, err
		}
		txn, err := u.account.Withdraw(u.pc, domain.TransactionCommand{
			TransactionDate: date,
			Amount:          req.TransactionAmount,
			PaymentDetailID: paymentDetailID,
			Note:            req.Note,
		}, req.AllowOverdraft)
		if err != nil {
			return nil, err
		}
		r := domain.NewCommandProcessingResult(u.account, txn.TransactionID).
			With("transactionDate", req.TransactionDate).
			With("transactionAmount", txn.Amount.String()).
			Merge(changes)
		return withNote(r, req.Note), nil
	})
}

func (s *savingsAccountService) UndoTransaction(ctx context.Context, accountID, transactionID string, req dto.UndoTransactionRequest, userID string) (*domain.CommandProcessingResult, error) {
	return s.execute(ctx, "undo_transaction", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		txn, err := u.account.UndoTransaction(u.pc, transactionID, req.AllowTransferModification)
		if err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, txn.TransactionID).
			With("reversed", true), nil
	})
}

func (s *savingsAccountService) AdjustTransaction(ctx context.Context, accountID, transactionID string, req dto.SavingsTransactionRequest, userID string) (*domain.CommandProcessingResult, error) {
	date, err := dto.ParseDate("transactionDate", req.TransactionDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "adjust_transaction", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		paymentDetailID, changes, err := s.capture(ctx, u, req.PaymentDetail)
		if err != nil {
			return nil, err
		}
		txn, err := u.account.AdjustTransaction(u.pc, transactionID, domain.TransactionCommand{
			TransactionDate: date,
			Amount:          req.TransactionAmount,
			PaymentDetailID: paymentDetailID,
			Note:            req.Note,
		})
		if err != nil {
			return nil, err
		}
		r := domain.NewCommandProcessingResult(u.account, txn.TransactionID).
			With("originalTransactionId", transactionID).
			With("transactionDate", req.TransactionDate).
			With("transactionAmount", txn.Amount.String()).
			Merge(changes)
		return withNote(r, req.Note), nil
	})
}

func (s *savingsAccountService) Close(ctx context.Context, accountID string, req dto.CloseSavingsAccountRequest, userID string) (*domain.CommandProcessingResult, error) {
	return s.close(ctx, "close", accountID, req, userID, false)
}

func (s *savingsAccountService) PrematureClose(ctx context.Context, accountID string, req dto.CloseSavingsAccountRequest, userID string) (*domain.CommandProcessingResult, error) {
	return s.close(ctx, "premature_close", accountID, req, userID, true)
}

func (s *savingsAccountService) close(ctx context.Context, command, accountID string, req dto.CloseSavingsAccountRequest, userID string, premature bool) (*domain.CommandProcessingResult, error) {
	closedOn, err := dto.ParseDate("closedOnDate", req.ClosedOnDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, command, accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		paymentDetailID, changes, err := s.capture(ctx, u, req.PaymentDetail)
		if err != nil {
			return nil, err
		}
		cmd := domain.CloseCommand{ClosedOn: closedOn, PaymentDetailID: paymentDetailID, Note: req.Note}
		closeFn := u.account.Close
		if premature {
			closeFn = u.account.PrematureClose
		}
		payout, err := closeFn(u.pc, cmd)
		if err != nil {
			return nil, err
		}
		r := domain.NewCommandProcessingResult(u.account, u.account.AccountID).
			With("status", string(u.account.Status)).
			With("closedOnDate", req.ClosedOnDate).
			Merge(changes)
		if payout != nil {
			r.With("payoutTransactionId", payout.TransactionID).
				With("payoutAmount", payout.Amount.String())
		}
		return withNote(r, req.Note), nil
	})
}

func (s *savingsAccountService) CalculateInterest(ctx context.Context, accountID string, userID string) (*domain.CommandProcessingResult, error) {
	return s.execute(ctx, "calculate_interest", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		earned, err := u.account.CalculateInterest(u.pc)
		if err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, u.account.AccountID).
			With("totalInterestEarned", earned.String()), nil
	})
}

func (s *savingsAccountService) PostInterest(ctx context.Context, accountID string, req dto.PostInterestRequest, userID string) (*domain.CommandProcessingResult, error) {
	asOf, err := dto.ParseOptionalDate("transactionDate", req.TransactionDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "post_interest", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		postThrough := u.pc.Today
		if asOf != nil {
			postThrough = *asOf
		}
		if err := u.account.PostInterest(u.pc, postThrough); err != nil {
			return nil, err
		}
		r := domain.NewCommandProcessingResult(u.account, u.account.AccountID).
			With("totalInterestPosted", u.account.Summary.TotalInterestPosted.String())
		if u.account.InterestPostedTill != nil {
			r.With("interestPostedTill", u.account.InterestPostedTill.Format(dto.DateFormat))
		}
		return r, nil
	})
}

func (s *savingsAccountService) UpdateMaturityDetails(ctx context.Context, accountID string, userID string) (*domain.CommandProcessingResult, error) {
	return s.execute(ctx, "update_maturity", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		matured, err := u.account.UpdateMaturityDetails(u.pc)
		if err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, u.account.AccountID).
			With("matured", matured).
			With("status", string(u.account.Status)), nil
	})
}

func (s *savingsAccountService) AddCharge(ctx context.Context, accountID string, req dto.AddChargeRequest, userID string) (*domain.CommandProcessingResult, error) {
	dueDate, err := dto.ParseOptionalDate("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}
	if s.chargeDefRepo == nil {
		return nil, fmt.Errorf("charge catalog is not configured")
	}
	return s.execute(ctx, "add_charge", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		def, err := s.chargeDefRepo.FindChargeDefinitionByID(ctx, req.ChargeID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find charge definition", slog.String("charge_definition_id", req.ChargeID))
			return nil, fmt.Errorf("failed to find charge definition %s: %w", req.ChargeID, err)
		}
		if dueDate != nil {
			if err := s.checkCalendar(ctx, u.account.OfficeID, "dueDate", *dueDate, "charge.due.date"); err != nil {
				return nil, err
			}
		}
		charge, err := u.account.AddCharge(u.pc, domain.AddChargeCommand{
			Definition: *def,
			DueDate:    dueDate,
			Amount:     req.Amount,
		})
		if err != nil {
			return nil, err
		}
		r := domain.NewCommandProcessingResult(u.account, charge.ChargeID).
			With("chargeDefinitionId", def.ChargeDefinitionID).
			With("amount", charge.InstallmentAmount.String())
		if req.DueDate != nil {
			r.With("dueDate", *req.DueDate)
		}
		return r, nil
	})
}

func (s *savingsAccountService) UpdateCharge(ctx context.Context, accountID, chargeID string, req dto.UpdateChargeRequest, userID string) (*domain.CommandProcessingResult, error) {
	dueDate, err := dto.ParseOptionalDate("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "update_charge", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		if dueDate != nil {
			if err := s.checkCalendar(ctx, u.account.OfficeID, "dueDate", *dueDate, "charge.due.date"); err != nil {
				return nil, err
			}
		}
		charge, err := u.account.UpdateCharge(u.pc, chargeID, dueDate, req.Amount)
		if err != nil {
			return nil, err
		}
		r := domain.NewCommandProcessingResult(u.account, charge.ChargeID)
		if req.DueDate != nil {
			r.With("dueDate", *req.DueDate)
		}
		if req.Amount != nil {
			r.With("amount", charge.InstallmentAmount.String())
		}
		return r, nil
	})
}

func (s *savingsAccountService) WaiveCharge(ctx context.Context, accountID, chargeID string, userID string) (*domain.CommandProcessingResult, error) {
	return s.execute(ctx, "waive_charge", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		charge, err := u.account.WaiveCharge(u.pc, chargeID)
		if err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, charge.ChargeID).
			With("amountWaived", charge.AmountWaived.String()), nil
	})
}

func (s *savingsAccountService) RemoveCharge(ctx context.Context, accountID, chargeID string, userID string) (*domain.CommandProcessingResult, error) {
	return s.execute(ctx, "remove_charge", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		if err := u.account.RemoveCharge(u.pc, chargeID); err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, chargeID), nil
	})
}

func (s *savingsAccountService) PayCharge(ctx context.Context, accountID, chargeID string, req dto.PayChargeRequest, userID string) (*domain.CommandProcessingResult, error) {
	date, err := dto.ParseDate("transactionDate", req.TransactionDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "pay_charge", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		if err := s.checkCalendar(ctx, u.account.OfficeID, "transactionDate", date, "transaction.date"); err != nil {
			return nil, err
		}
		txn, err := u.account.PayCharge(u.pc, chargeID, date, req.Amount)
		if err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, txn.TransactionID).
			With("chargeId", chargeID).
			With("transactionDate", req.TransactionDate).
			With("amount", txn.Amount.String()), nil
	})
}

func (s *savingsAccountService) ApplyChargeDue(ctx context.Context, accountID, chargeID string, userID string) (*domain.CommandProcessingResult, error) {
	return s.execute(ctx, "apply_charge_due", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		collected, err := u.account.ApplyChargeDue(u.pc, chargeID, s.maxCatchUpPeriods)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(collected))
		for i, txn := range collected {
			ids[i] = txn.TransactionID
		}
		r := domain.NewCommandProcessingResult(u.account, chargeID).
			With("transactionIds", ids)
		if charge, ok := u.account.ChargeByID(chargeID); ok && charge.DueDate != nil {
			r.With("nextDueDate", charge.DueDate.Format(dto.DateFormat))
		}
		return r, nil
	})
}

func (s *savingsAccountService) InitiateTransfer(ctx context.Context, accountID string, req dto.TransferRequest, userID string) (*domain.CommandProcessingResult, error) {
	date, err := dto.ParseDate("transferDate", req.TransferDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "initiate_transfer", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		txn, err := u.account.InitiateTransfer(u.pc, date)
		if err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, txn.TransactionID).
			With("status", string(u.account.Status)), nil
	})
}

func (s *savingsAccountService) RejectTransfer(ctx context.Context, accountID string, userID string) (*domain.CommandProcessingResult, error) {
	return s.execute(ctx, "reject_transfer", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		if err := u.account.RejectTransfer(u.pc); err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, u.account.AccountID).
			With("status", string(u.account.Status)), nil
	})
}

func (s *savingsAccountService) WithdrawTransfer(ctx context.Context, accountID string, req dto.TransferRequest, userID string) (*domain.CommandProcessingResult, error) {
	date, err := dto.ParseDate("transferDate", req.TransferDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "withdraw_transfer", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		txn, err := u.account.WithdrawTransfer(u.pc, date)
		if err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, txn.TransactionID).
			With("status", string(u.account.Status)), nil
	})
}

func (s *savingsAccountService) AcceptTransfer(ctx context.Context, accountID string, req dto.AcceptTransferRequest, userID string) (*domain.CommandProcessingResult, error) {
	date, err := dto.ParseDate("transferDate", req.TransferDate)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "accept_transfer", accountID, userID, func(ctx context.Context, u *unit) (*domain.CommandProcessingResult, error) {
		txn, err := u.account.AcceptTransfer(u.pc, date, req.DestinationOfficeID, req.FieldOfficerID)
		if err != nil {
			return nil, err
		}
		return domain.NewCommandProcessingResult(u.account, txn.TransactionID).
			With("status", string(u.account.Status)).
			With("officeId", u.account.OfficeID), nil
	})
}
