package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/SscSPs/monetra/internal/dto"
	"github.com/stretchr/testify/mock"
)

func testLedgerResult(txnType domain.TransactionType, amount string, wallets ...*domain.Wallet) *domain.LedgerResult {
	res := &domain.LedgerResult{
		Transaction: domain.Transaction{
			TransactionID:   "t-1",
			OwnerID:         testUserID,
			WalletID:        "w-1",
			Amount:          dec(amount),
			TransactionType: txnType,
			Category:        domain.CategoryFood,
			Date:            time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
			Version:         1,
		},
	}
	for _, w := range wallets {
		res.Wallets = append(res.Wallets, *w)
	}
	return res
}

func (suite *HandlerTestSuite) TestCreateTransaction_Success() {
	result := testLedgerResult(domain.Expense, "30", testWallet("w-1", domain.Cash, "70"))

	suite.mockTxns.On("CreateTransaction",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.WalletID == "w-1" &&
				req.Amount.Equal(dec("30")) &&
				req.TransactionType == domain.Expense &&
				req.Date.Format(dto.DateLayout) == "2026-05-10"
		}),
		testUserID,
	).Return(result, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/transactions",
		`{"walletID":"w-1","amount":"30","transactionType":"EXPENSE","category":"FOOD","date":"2026-05-10"}`)
	suite.Equal(http.StatusCreated, w.Code)

	var body dto.LedgerResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("t-1", body.Transaction.TransactionID)
	suite.Equal("2026-05-10", body.Transaction.Date.Format(dto.DateLayout))
	suite.Require().Len(body.Wallets, 1)
	suite.True(body.Wallets[0].Balance.Equal(dec("70")))
}

func (suite *HandlerTestSuite) TestCreateTransaction_ErrorMapping() {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"insufficient funds", apperrors.ErrInsufficientFunds, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
		{"credit limit", fmt.Errorf("wallet w-1: %w", apperrors.ErrCreditLimitExceeded), http.StatusUnprocessableEntity, "CREDIT_LIMIT_EXCEEDED"},
		{"invalid amount", apperrors.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"future date", apperrors.ErrInvalidDate, http.StatusBadRequest, "INVALID_DATE"},
		{"wallet missing", apperrors.ErrWalletNotFound, http.StatusNotFound, "WALLET_NOT_FOUND"},
		{"foreign wallet", apperrors.ErrWalletOwnershipMismatch, http.StatusForbidden, "WALLET_OWNERSHIP_MISMATCH"},
		{"partial failure", errors.Join(apperrors.ErrPartialFailure, apperrors.ErrStoreUnavailable), http.StatusInternalServerError, "PARTIAL_FAILURE"},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.mockTxns.On("CreateTransaction", mock.Anything, mock.Anything, testUserID).Return(nil, tc.err).Once()

			w := suite.request(http.MethodPost, "/api/v1/transactions",
				`{"walletID":"w-1","amount":"30","transactionType":"EXPENSE","category":"FOOD","date":"2026-05-10"}`)
			suite.Equal(tc.status, w.Code)

			var body map[string]string
			suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
			suite.Equal(tc.code, body["code"])
		})
	}
}

func (suite *HandlerTestSuite) TestCreateTransaction_ServerErrorsHideDetails() {
	suite.mockTxns.On("CreateTransaction", mock.Anything, mock.Anything, testUserID).
		Return(nil, errors.New("pq: connection reset by peer")).Once()

	w := suite.request(http.MethodPost, "/api/v1/transactions",
		`{"walletID":"w-1","amount":"30","transactionType":"EXPENSE","category":"FOOD","date":"2026-05-10"}`)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *HandlerTestSuite) TestCreateTransaction_BindingErrors() {
	testCases := []struct {
		name string
		body string
	}{
		{"missing wallet", `{"amount":"30","transactionType":"EXPENSE","category":"FOOD","date":"2026-05-10"}`},
		{"unknown type", `{"walletID":"w-1","amount":"30","transactionType":"REFUND","category":"FOOD","date":"2026-05-10"}`},
		{"unknown category", `{"walletID":"w-1","amount":"30","transactionType":"EXPENSE","category":"PETS","date":"2026-05-10"}`},
		{"bad date", `{"walletID":"w-1","amount":"30","transactionType":"EXPENSE","category":"FOOD","date":"10/05/2026"}`},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.request(http.MethodPost, "/api/v1/transactions", tc.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockTxns.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *HandlerTestSuite) TestGetTransaction_Forbidden() {
	suite.mockTxns.On("GetTransactionByID", mock.Anything, "t-9", "intruder").Return(nil, apperrors.ErrForbidden).Once()

	w := suite.requestAs("intruder", http.MethodGet, "/api/v1/transactions/t-9", "")
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions_BindsFilters() {
	next := "token-2"
	resp := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{{TransactionID: "t-1"}},
		NextToken:    &next,
	}
	suite.mockTxns.On("ListTransactions", mock.Anything, testUserID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.WalletID == "w-1" &&
				p.TransactionType == "EXPENSE" &&
				p.Limit == 5 &&
				p.From != nil && p.From.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)) &&
				p.To != nil && p.To.Equal(time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC))
		}),
	).Return(resp, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/transactions?walletId=w-1&type=EXPENSE&from=2026-05-01&to=2026-05-31&limit=5", "")
	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().NotNil(body.NextToken)
	suite.Equal("token-2", *body.NextToken)
}

func (suite *HandlerTestSuite) TestListTransactions_RejectsLimit() {
	w := suite.request(http.MethodGet, "/api/v1/transactions?limit=1000", "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxns.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *HandlerTestSuite) TestUpdateTransaction_VersionMismatch() {
	suite.mockTxns.On("UpdateTransaction", mock.Anything, "t-1",
		mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
			return req.Amount != nil && req.Amount.Equal(dec("45")) &&
				req.Version != nil && *req.Version == 3
		}),
		testUserID,
	).Return(nil, apperrors.ErrConflict).Once()

	w := suite.request(http.MethodPut, "/api/v1/transactions/t-1", `{"amount":"45","version":3}`)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTransaction() {
	result := testLedgerResult(domain.Income, "50", testWallet("w-1", domain.Cash, "50"))
	suite.mockTxns.On("DeleteTransaction", mock.Anything, "t-1", testUserID).Return(result, nil).Once()

	w := suite.request(http.MethodDelete, "/api/v1/transactions/t-1", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"transactionID":"t-1"`)

	suite.mockTxns.On("DeleteTransaction", mock.Anything, "t-2", testUserID).Return(nil, apperrors.ErrInsufficientFunds).Once()
	w = suite.request(http.MethodDelete, "/api/v1/transactions/t-2", "")
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}
