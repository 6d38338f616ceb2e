package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
	"github.com/SscSPs/ledger_period_engine/internal/handlers"
	"github.com/SscSPs/ledger_period_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionPosterSvc ---
type MockPoster struct {
	mock.Mock
}

var _ portssvc.TransactionPosterSvc = (*MockPoster)(nil)

func (m *MockPoster) PostCredit(ctx context.Context, draft domain.TransactionDraft, actorID string) (*domain.Transaction, error) {
	args := m.Called(ctx, draft, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPoster) PostDebit(ctx context.Context, draft domain.TransactionDraft, actorID string) (*domain.Transaction, error) {
	args := m.Called(ctx, draft, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPoster) VoidTransaction(ctx context.Context, transactionID string, actorID string) error {
	return m.Called(ctx, transactionID, actorID).Error(0)
}

func (m *MockPoster) UpdateTransaction(ctx context.Context, transactionID string, draft domain.TransactionDraft, actorID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, draft, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPoster) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPoster) ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

// --- Mock PeriodSvcFacade ---
type MockPeriods struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriods)(nil)

func (m *MockPeriods) GetOpenPeriodForAccount(ctx context.Context, accountID string) (*domain.Period, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriods) ValidateTransactionPeriod(ctx context.Context, accountID string, txDate time.Time, override bool) (bool, error) {
	args := m.Called(ctx, accountID, txDate, override)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriods) ClosePeriod(ctx context.Context, period domain.Period, accountID *string, actorID string) ([]domain.PeriodCloseResult, error) {
	args := m.Called(ctx, period, accountID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodCloseResult), args.Error(1)
}

func (m *MockPeriods) OpenPeriod(ctx context.Context, period domain.Period, accountID string, actorID string) error {
	return m.Called(ctx, period, accountID, actorID).Error(0)
}

func (m *MockPeriods) ReopenPeriod(ctx context.Context, accountID string, newClosingDate time.Time, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, newClosingDate, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock RecalculationSvc ---
type MockRecalculation struct {
	mock.Mock
}

var _ portssvc.RecalculationSvc = (*MockRecalculation)(nil)

func (m *MockRecalculation) Recalculate(ctx context.Context, accountID, ledgerHeadID string, fromDate time.Time, actorID string) (*domain.RecalculationResult, error) {
	args := m.Called(ctx, accountID, ledgerHeadID, fromDate, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecalculationResult), args.Error(1)
}

func (m *MockRecalculation) RecalculateAccount(ctx context.Context, accountID string, fromDate time.Time, actorID string) ([]domain.RecalculationResult, error) {
	args := m.Called(ctx, accountID, fromDate, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecalculationResult), args.Error(1)
}

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router        *gin.Engine
	poster        *MockPoster
	periods       *MockPeriods
	recalculation *MockRecalculation
	jwtSecret     string
}

const (
	clerkID = "clerk-1"
	adminID = "admin-1"
)

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.poster = new(MockPoster)
	suite.periods = new(MockPeriods)
	suite.recalculation = new(MockRecalculation)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, ""))
	handlers.RegisterV1Routes(v1, &portssvc.ServiceContainer{
		Poster:        suite.poster,
		Period:        suite.periods,
		Recalculation: suite.recalculation,
	})
}

func (suite *HandlersTestSuite) token(userID, role string) string {
	claims := middleware.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *HandlersTestSuite) do(method, url, userID, role string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token(userID, role))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func creditBody() map[string]any {
	return map[string]any{
		"cashType": "cash",
		"amount":   "500",
		"txDate":   "2025-03-15",
		"splits":   []map[string]any{{"ledgerHeadID": "head-a", "amount": "500"}},
	}
}

func (suite *HandlersTestSuite) TestPostCredit_Success() {
	posted := &domain.Transaction{TransactionID: "tx-1", AccountID: "acc-1", TxType: domain.TxTypeCredit, Amount: decimal.NewFromInt(500),
		TxDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Status: domain.TxStatusCompleted}
	suite.poster.On("PostCredit", mock.Anything, mock.MatchedBy(func(d domain.TransactionDraft) bool {
		return d.AccountID == "acc-1" &&
			d.TxType == domain.TxTypeCredit &&
			d.RequestID != nil && *d.RequestID == "req-42" &&
			d.Amount.Equal(decimal.NewFromInt(500)) &&
			d.TxDate.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	}), clerkID).Return(posted, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/credits", clerkID, "", creditBody(), middleware.IdempotencyKeyHeader, "req-42")

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("tx-1", resp.TransactionID)
	suite.Equal("2025-03-15", resp.TxDate)
	suite.poster.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestPostCredit_OverrideNeedsAdmin() {
	body := creditBody()
	body["adminOverride"] = true

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/credits", clerkID, "", body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.poster.AssertNotCalled(suite.T(), "PostCredit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestPostCredit_AdminOverridePassesThrough() {
	body := creditBody()
	body["adminOverride"] = true
	suite.poster.On("PostCredit", mock.Anything, mock.MatchedBy(func(d domain.TransactionDraft) bool {
		return d.AdminOverride
	}), adminID).Return(&domain.Transaction{TransactionID: "tx-2", RequiresRecalculation: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/credits", adminID, middleware.AdminRole, body)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"requiresRecalculation":true`)
}

func (suite *HandlersTestSuite) TestPostCredit_RejectsUnknownCashType() {
	body := creditBody()
	body["cashType"] = "gold"

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/credits", clerkID, "", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "cashtype")
}

func (suite *HandlersTestSuite) TestPostDebit_InsufficientBalance() {
	body := creditBody()
	body["targetLedgerHeadID"] = "head-b"
	suite.poster.On("PostDebit", mock.Anything, mock.Anything, clerkID).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/debits", clerkID, "", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlersTestSuite) TestVoid_ClosedPeriodIsConflict() {
	suite.poster.On("VoidTransaction", mock.Anything, "tx-1", clerkID).Return(apperrors.ErrPeriodClosed).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/tx-1", clerkID, "", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestVoid_Success() {
	suite.poster.On("VoidTransaction", mock.Anything, "tx-1", clerkID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/tx-1", clerkID, "", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlersTestSuite) TestGetTransaction_NotFound() {
	suite.poster.On("GetTransaction", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("transaction", "missing")).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/missing", clerkID, "", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestListTransactions_PassesToken() {
	next := "tok-2"
	suite.poster.On("ListTransactions", mock.Anything, "acc-1", 5, mock.MatchedBy(func(tok *string) bool {
		return tok != nil && *tok == "tok-1"
	})).Return([]domain.Transaction{{TransactionID: "tx-1"}}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/transactions?limit=5&nextToken=tok-1", clerkID, "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("tok-2", *resp.NextToken)
}

func (suite *HandlersTestSuite) TestUpdateTransaction_KeepsRequestedType() {
	body := creditBody()
	body["txType"] = "credit"
	suite.poster.On("UpdateTransaction", mock.Anything, "tx-1", mock.MatchedBy(func(d domain.TransactionDraft) bool {
		return d.TxType == domain.TxTypeCredit && d.RequestID == nil
	}), clerkID).Return(&domain.Transaction{TransactionID: "tx-1"}, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/transactions/tx-1", clerkID, "", body)

	suite.Equal(http.StatusOK, w.Code)
	suite.poster.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestClosePeriod_AdminOnly() {
	w := suite.do(http.MethodPost, "/api/v1/periods/close", clerkID, "", map[string]any{"month": 3, "year": 2025})
	suite.Equal(http.StatusForbidden, w.Code)

	lastDay := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.periods.On("ClosePeriod", mock.Anything, domain.Period{Month: 3, Year: 2025}, (*string)(nil), adminID).
		Return([]domain.PeriodCloseResult{
			{AccountID: "acc-1", Period: domain.Period{Month: 3, Year: 2025}, LastClosedDate: lastDay, HeadsClosed: 2},
			{AccountID: "acc-2", Period: domain.Period{Month: 3, Year: 2025}, Err: apperrors.ErrPeriodOutOfSequence},
		}, nil).Once()

	w = suite.do(http.MethodPost, "/api/v1/periods/close", adminID, middleware.AdminRole, map[string]any{"month": 3, "year": 2025})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ClosePeriodResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Results, 2)
	suite.Equal("2025-03-31", resp.Results[0].LastClosedDate)
	suite.Contains(resp.Results[1].Error, "out of sequence")
}

func (suite *HandlersTestSuite) TestClosePeriod_RejectsBadMonth() {
	w := suite.do(http.MethodPost, "/api/v1/periods/close", adminID, middleware.AdminRole, map[string]any{"month": 13, "year": 2025})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestReopenPeriod_WithRecalculation() {
	closing := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	suite.periods.On("ReopenPeriod", mock.Anything, "acc-1", closing, adminID).
		Return(&domain.Account{AccountID: "acc-1", LastClosedDate: &closing}, nil).Once()
	suite.recalculation.On("RecalculateAccount", mock.Anything, "acc-1", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), adminID).
		Return([]domain.RecalculationResult{}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/periods/reopen", adminID, middleware.AdminRole,
		map[string]any{"newClosingDate": "2025-02-28", "recalculate": true})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"lastClosedDate":"2025-02-28"`)
	suite.periods.AssertExpectations(suite.T())
	suite.recalculation.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestReopenPeriod_MidMonthDateRecalculatesFromNextMonth() {
	requested := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	suite.periods.On("ReopenPeriod", mock.Anything, "acc-1", requested, adminID).
		Return(&domain.Account{AccountID: "acc-1", LastClosedDate: &monthEnd}, nil).Once()
	suite.recalculation.On("RecalculateAccount", mock.Anything, "acc-1", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), adminID).
		Return([]domain.RecalculationResult{}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/periods/reopen", adminID, middleware.AdminRole,
		map[string]any{"newClosingDate": "2025-02-10", "recalculate": true})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.recalculation.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestGetOpenPeriod() {
	suite.periods.On("GetOpenPeriodForAccount", mock.Anything, "acc-1").Return(&domain.Period{Month: 4, Year: 2025}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/open-period", clerkID, "", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"accountID":"acc-1","month":4,"year":2025}`, w.Body.String())
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
