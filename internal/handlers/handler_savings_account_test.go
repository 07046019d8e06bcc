package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/dto"
	"github.com/SscSPs/savings_ledger/internal/handlers"
	"github.com/SscSPs/savings_ledger/internal/platform/config"
)

const (
	testJWTSecret = "test-secret"
	testUserID    = "user-1"
	accountsPath  = "/api/v1/savingsaccounts/acc-1"
)

// generateTestToken creates an HS256 token for userID.
func generateTestToken(t *testing.T, userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func newTestRouter(services *portssvc.ServiceContainer, rate limiter.Rate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cfg := &config.Config{JWTSecret: testJWTSecret}
	handlers.RegisterRoutes(router, cfg, services, limiter.New(memory.NewStore(), rate))
	return router
}

type SavingsAccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockSavingsAccountService
	token       string
}

func (suite *SavingsAccountHandlerTestSuite) SetupTest() {
	suite.mockService = new(MockSavingsAccountService)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		SavingsAccount: suite.mockService,
		Currency:       new(MockCurrencyService),
		Journal:        new(MockJournalService),
	}, limiter.Rate{Period: time.Minute, Limit: 1000})
	suite.token = generateTestToken(suite.T(), testUserID)
}

func (suite *SavingsAccountHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return v
}

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Parameter string `json:"parameter"`
	EntityID  string `json:"entityId"`
}

func depositResult() *domain.CommandProcessingResult {
	clientID := "client-1"
	return &domain.CommandProcessingResult{
		EntityID:  "txn-1",
		OfficeID:  "office-1",
		ClientID:  &clientID,
		SavingsID: "acc-1",
		Changes:   map[string]any{"amount": "100.5"},
	}
}

func (suite *SavingsAccountHandlerTestSuite) TestDeposit_Success() {
	suite.mockService.On("Deposit", mock.Anything, "acc-1",
		mock.MatchedBy(func(req dto.SavingsTransactionRequest) bool {
			return req.TransactionDate == "2024-03-05" && req.TransactionAmount.Equal(decimal.RequireFromString("100.50"))
		}), testUserID).
		Return(depositResult(), nil).Once()

	w := suite.do(http.MethodPost, accountsPath+"/deposit", `{"transactionDate":"2024-03-05","transactionAmount":"100.50"}`)

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody[map[string]any](suite.T(), w)
	suite.Equal("txn-1", body["resourceId"])
	suite.Equal("acc-1", body["savingsId"])
	suite.Equal("client-1", body["clientId"])
	suite.NotContains(body, "groupId")
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SavingsAccountHandlerTestSuite) TestDeposit_BindingErrorNamesParameter() {
	w := suite.do(http.MethodPost, accountsPath+"/deposit", `{"transactionDate":"05/03/2024","transactionAmount":"10"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := decodeBody[errorBody](suite.T(), w)
	suite.Equal("transactionDate", body.Parameter)
	suite.Equal("validation.msg.transactionDate.invalid", body.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SavingsAccountHandlerTestSuite) TestDeposit_MalformedBody() {
	w := suite.do(http.MethodPost, accountsPath+"/deposit", `{"transactionDate":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("body", decodeBody[errorBody](suite.T(), w).Parameter)
}

func (suite *SavingsAccountHandlerTestSuite) TestWithdraw_NegativeBalanceIsConflict() {
	suite.mockService.On("Withdraw", mock.Anything, "acc-1", mock.AnythingOfType("dto.SavingsWithdrawalRequest"), testUserID).
		Return(nil, apperrors.NewNegativeBalanceError("acc-1", "withdrawal")).Once()

	w := suite.do(http.MethodPost, accountsPath+"/withdraw", `{"transactionDate":"2024-03-05","transactionAmount":"500"}`)

	suite.Equal(http.StatusConflict, w.Code)
	body := decodeBody[errorBody](suite.T(), w)
	suite.Equal("error.msg.savingsaccount.transaction.insufficient.account.balance", body.Code)
	suite.Equal("acc-1", body.EntityID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SavingsAccountHandlerTestSuite) TestPayCharge_CalendarViolationIsBadRequest() {
	suite.mockService.On("PayCharge", mock.Anything, "acc-1", "chg-1", mock.AnythingOfType("dto.PayChargeRequest"), testUserID).
		Return(nil, apperrors.NewCalendarViolationError("transactionDate", "2024-03-10", "error.msg.transaction.on.holiday")).Once()

	w := suite.do(http.MethodPost, accountsPath+"/charges/chg-1/pay", `{"transactionDate":"2024-03-10","amount":"5"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := decodeBody[errorBody](suite.T(), w)
	suite.Equal("transactionDate", body.Parameter)
	suite.Equal("error.msg.transaction.on.holiday", body.Code)
}

func (suite *SavingsAccountHandlerTestSuite) TestUndo_EmptyBodyAllowed() {
	suite.mockService.On("UndoTransaction", mock.Anything, "acc-1", "txn-9", dto.UndoTransactionRequest{}, testUserID).
		Return(&domain.CommandProcessingResult{EntityID: "txn-9", SavingsID: "acc-1"}, nil).Once()

	w := suite.do(http.MethodPost, accountsPath+"/transactions/txn-9/undo", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SavingsAccountHandlerTestSuite) TestUndo_TransferLinked() {
	suite.mockService.On("UndoTransaction", mock.Anything, "acc-1", "txn-9", dto.UndoTransactionRequest{AllowTransferModification: false}, testUserID).
		Return(nil, apperrors.NewTransferLinkedError("txn-9")).Once()

	w := suite.do(http.MethodPost, accountsPath+"/transactions/txn-9/undo", `{"allowTransferModification":false}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("txn-9", decodeBody[errorBody](suite.T(), w).EntityID)
}

func (suite *SavingsAccountHandlerTestSuite) TestGetSavingsAccount() {
	activated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	account := &domain.SavingsAccount{
		AccountID:   "acc-1",
		ProductID:   "prod-1",
		DepositType: domain.DepositTypeSavings,
		Status:      domain.StatusActive,
		OfficeID:    "office-1",
		Currency:    domain.CurrencyData{Code: "USD", DecimalPlaces: 2},
		ActivatedOn: &activated,
		Version:     3,
	}
	suite.mockService.On("GetSavingsAccount", mock.Anything, "acc-1").Return(account, nil).Once()

	w := suite.do(http.MethodGet, accountsPath, nil)

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody[dto.SavingsAccountResponse](suite.T(), w)
	suite.Equal("acc-1", body.AccountID)
	suite.Equal("ACTIVE", body.Status)
	suite.Require().NotNil(body.ActivatedOn)
	suite.Equal("2024-01-01", *body.ActivatedOn)
	suite.Equal(int64(3), body.Version)
}

func (suite *SavingsAccountHandlerTestSuite) TestGetSavingsAccount_NotFound() {
	suite.mockService.On("GetSavingsAccount", mock.Anything, "acc-1").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, accountsPath, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SavingsAccountHandlerTestSuite) TestGetSavingsAccount_InternalErrorHidesCause() {
	suite.mockService.On("GetSavingsAccount", mock.Anything, "acc-1").Return(nil, assert.AnError).Once()

	w := suite.do(http.MethodGet, accountsPath, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to retrieve savings account", decodeBody[errorBody](suite.T(), w).Error)
}

func (suite *SavingsAccountHandlerTestSuite) TestListTransactions() {
	next := "cursor-2"
	resp := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{{TransactionID: "txn-2", Type: "DEPOSIT", TransactionDate: "2024-03-05"}},
		NextToken:    &next,
	}
	suite.mockService.On("ListTransactions", mock.Anything, "acc-1", dto.ListTransactionsParams{Limit: 5}).Return(resp, nil).Once()

	w := suite.do(http.MethodGet, accountsPath+"/transactions?limit=5", nil)

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody[dto.ListTransactionsResponse](suite.T(), w)
	suite.Require().Len(body.Transactions, 1)
	suite.Equal("txn-2", body.Transactions[0].TransactionID)
	suite.Require().NotNil(body.NextToken)
	suite.Equal("cursor-2", *body.NextToken)
}

func (suite *SavingsAccountHandlerTestSuite) TestListTransactions_LimitOutOfRange() {
	w := suite.do(http.MethodGet, accountsPath+"/transactions?limit=500", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("limit", decodeBody[errorBody](suite.T(), w).Parameter)
}

func (suite *SavingsAccountHandlerTestSuite) TestCommandsWithoutBody() {
	result := &domain.CommandProcessingResult{EntityID: "acc-1", SavingsID: "acc-1"}
	suite.mockService.On("CalculateInterest", mock.Anything, "acc-1", testUserID).Return(result, nil).Once()
	suite.mockService.On("UpdateMaturityDetails", mock.Anything, "acc-1", testUserID).Return(result, nil).Once()
	suite.mockService.On("WaiveCharge", mock.Anything, "acc-1", "chg-1", testUserID).Return(result, nil).Once()
	suite.mockService.On("RemoveCharge", mock.Anything, "acc-1", "chg-1", testUserID).Return(result, nil).Once()
	suite.mockService.On("ApplyChargeDue", mock.Anything, "acc-1", "chg-1", testUserID).Return(result, nil).Once()
	suite.mockService.On("RejectTransfer", mock.Anything, "acc-1", testUserID).Return(result, nil).Once()
	suite.mockService.On("PostInterest", mock.Anything, "acc-1", dto.PostInterestRequest{}, testUserID).Return(result, nil).Once()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, accountsPath + "/calculate-interest"},
		{http.MethodPost, accountsPath + "/update-maturity"},
		{http.MethodPost, accountsPath + "/charges/chg-1/waive"},
		{http.MethodDelete, accountsPath + "/charges/chg-1"},
		{http.MethodPost, accountsPath + "/charges/chg-1/apply-due"},
		{http.MethodPost, accountsPath + "/transfers/reject"},
		{http.MethodPost, accountsPath + "/post-interest"},
	} {
		w := suite.do(tc.method, tc.path, nil)
		suite.Equal(http.StatusOK, w.Code, tc.path)
	}
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SavingsAccountHandlerTestSuite) TestAcceptTransfer_RequiresDestinationOffice() {
	w := suite.do(http.MethodPost, accountsPath+"/transfers/accept", `{"transferDate":"2024-03-05"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("destinationOfficeId", decodeBody[errorBody](suite.T(), w).Parameter)
}

func (suite *SavingsAccountHandlerTestSuite) TestAddCharge_NotActive() {
	suite.mockService.On("AddCharge", mock.Anything, "acc-1", mock.AnythingOfType("dto.AddChargeRequest"), testUserID).
		Return(nil, apperrors.NewNotActiveError("acc-1", "error.msg.savingsaccount.not.active", "account is not active")).Once()

	w := suite.do(http.MethodPost, accountsPath+"/charges", `{"chargeId":"def-1"}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("error.msg.savingsaccount.not.active", decodeBody[errorBody](suite.T(), w).Code)
}

func (suite *SavingsAccountHandlerTestSuite) TestMissingToken() {
	req := httptest.NewRequest(http.MethodGet, accountsPath, nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GetSavingsAccount", mock.Anything, mock.Anything)
}

func (suite *SavingsAccountHandlerTestSuite) TestInvalidToken() {
	req := httptest.NewRequest(http.MethodGet, accountsPath, nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestSavingsAccountHandler(t *testing.T) {
	suite.Run(t, new(SavingsAccountHandlerTestSuite))
}

func TestRateLimitPerUser(t *testing.T) {
	svc := new(MockSavingsAccountService)
	svc.On("GetSavingsAccount", mock.Anything, "acc-1").Return(nil, apperrors.ErrNotFound)
	router := newTestRouter(&portssvc.ServiceContainer{
		SavingsAccount: svc,
		Currency:       new(MockCurrencyService),
		Journal:        new(MockJournalService),
	}, limiter.Rate{Period: time.Minute, Limit: 1})
	token := generateTestToken(t, testUserID)

	codes := make([]int, 2)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, accountsPath, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes[i] = w.Code
	}

	assert.Equal(t, []int{http.StatusNotFound, http.StatusTooManyRequests}, codes)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&portssvc.ServiceContainer{}, limiter.Rate{Period: time.Minute, Limit: 10})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
