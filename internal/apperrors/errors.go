package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent modification or a state conflict on the resource.
var ErrConflict = errors.New("resource conflict")

// ErrForbidden indicates that the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure in the system.
var ErrInternal = errors.New("internal error")

// Ledger rule rejections.
var (
	ErrNotActive         = errors.New("entity is not active")
	ErrAlreadyReversed   = errors.New("transaction already reversed")
	ErrTransferLinked    = errors.New("transaction is linked to an account transfer")
	ErrNegativeBalance   = errors.New("insufficient account balance")
	ErrCalendarViolation = errors.New("date is not allowed by the calendar")
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets callers match an AppError against the sentinel implied by its code.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusBadRequest:
		return target == ErrValidation
	case http.StatusConflict:
		return target == ErrConflict
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusInternalServerError:
		return target == ErrInternal
	}
	return false
}

// DomainError is a ledger rule rejection. Kind is one of the sentinels above,
// so errors.Is(err, ErrNegativeBalance) works through any amount of wrapping.
type DomainError struct {
	Kind      error
	Code      string
	Parameter string
	Value     any
	EntityID  string
	Message   string
}

func (e *DomainError) Error() string {
	switch {
	case e.Parameter != "":
		return fmt.Sprintf("%s: %s (parameter %s, value %v)", e.Kind, e.Message, e.Parameter, e.Value)
	case e.EntityID != "":
		return fmt.Sprintf("%s: %s (id %s)", e.Kind, e.Message, e.EntityID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

// NewValidationError reports a malformed or out-of-range command field.
func NewValidationError(parameter string, value any, message string) *DomainError {
	return &DomainError{
		Kind:      ErrValidation,
		Code:      "validation.msg." + parameter + ".invalid",
		Parameter: parameter,
		Value:     value,
		Message:   message,
	}
}

// NewNotActiveError reports that the account, client or group does not permit the operation.
func NewNotActiveError(entityID, code, message string) *DomainError {
	return &DomainError{Kind: ErrNotActive, Code: code, EntityID: entityID, Message: message}
}

// NewNotFoundError reports a transaction or charge missing from the account.
func NewNotFoundError(entity, entityID string) *DomainError {
	return &DomainError{
		Kind:     ErrNotFound,
		Code:     "error.msg." + entity + ".not.found",
		EntityID: entityID,
		Message:  entity + " does not exist",
	}
}

func NewAlreadyReversedError(transactionID string) *DomainError {
	return &DomainError{
		Kind:     ErrAlreadyReversed,
		Code:     "error.msg.saving.account.transaction.already.reversed",
		EntityID: transactionID,
		Message:  "transaction was already reversed",
	}
}

func NewTransferLinkedError(transactionID string) *DomainError {
	return &DomainError{
		Kind:     ErrTransferLinked,
		Code:     "error.msg.saving.account.transfer.transaction.update.not.allowed",
		EntityID: transactionID,
		Message:  "transaction belongs to an account transfer and cannot be changed independently",
	}
}

// NewNegativeBalanceError reports that an action would leave the balance below its floor.
func NewNegativeBalanceError(accountID, action string) *DomainError {
	return &DomainError{
		Kind:     ErrNegativeBalance,
		Code:     "error.msg.savingsaccount.transaction.insufficient.account.balance",
		EntityID: accountID,
		Message:  action + " would result in a negative balance",
	}
}

// NewCalendarViolationError reports a date that falls on a holiday or non-working day.
func NewCalendarViolationError(parameter string, value any, code string) *DomainError {
	return &DomainError{
		Kind:      ErrCalendarViolation,
		Code:      code,
		Parameter: parameter,
		Value:     value,
		Message:   "date is not allowed by the calendar",
	}
}

func NewConflictError(entityID, code, message string) *DomainError {
	return &DomainError{Kind: ErrConflict, Code: code, EntityID: entityID, Message: message}
}

// AsDomainError unwraps err into a DomainError if it contains one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
