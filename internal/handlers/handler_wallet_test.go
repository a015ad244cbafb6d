package handlers_test

import (
	"encoding/json"
	"net/http"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/SscSPs/monetra/internal/dto"
	"github.com/stretchr/testify/mock"
)

func testWallet(id string, walletType domain.WalletType, balance string) *domain.Wallet {
	return &domain.Wallet{
		WalletID:       id,
		OwnerID:        testUserID,
		Name:           "Wallet " + id,
		WalletType:     walletType,
		Balance:        dec(balance),
		InitialBalance: dec(balance),
		CurrencyCode:   "MAD",
		Version:        1,
	}
}

func (suite *HandlerTestSuite) TestCreateWallet_Success() {
	card := testWallet("w-1", domain.CreditCard, "-100")
	card.CreditLimit = decPtr("500")

	suite.mockWallets.On("CreateWallet",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateWalletRequest) bool {
			return req.Name == "Visa" &&
				req.WalletType == domain.CreditCard &&
				req.InitialBalance.Equal(dec("-100")) &&
				req.CreditLimit != nil && req.CreditLimit.Equal(dec("500"))
		}),
		testUserID,
	).Return(card, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/wallets",
		`{"name":"Visa","walletType":"CREDIT_CARD","initialBalance":"-100","creditLimit":500}`)
	suite.Equal(http.StatusCreated, w.Code)

	var body dto.WalletResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("w-1", body.WalletID)
	suite.Require().NotNil(body.AvailableCredit)
	suite.True(body.AvailableCredit.Equal(dec("400")))
}

func (suite *HandlerTestSuite) TestCreateWallet_BindingErrors() {
	testCases := []struct {
		name string
		body string
	}{
		{"missing name", `{"walletType":"CASH"}`},
		{"unknown type", `{"name":"x","walletType":"PIGGY_BANK"}`},
		{"bad currency", `{"name":"x","walletType":"CASH","currencyCode":"EURO"}`},
		{"malformed json", `{"name":`},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.request(http.MethodPost, "/api/v1/wallets", tc.body)
			suite.Equal(http.StatusBadRequest, w.Code)
			suite.Contains(w.Body.String(), `"code":"VALIDATION_ERROR"`)
		})
	}
	suite.mockWallets.AssertNotCalled(suite.T(), "CreateWallet")
}

func (suite *HandlerTestSuite) TestCreateWallet_CreditLimitExceeded() {
	suite.mockWallets.On("CreateWallet", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.ErrCreditLimitExceeded).Once()

	w := suite.request(http.MethodPost, "/api/v1/wallets",
		`{"name":"Visa","walletType":"CREDIT_CARD","initialBalance":"-900","creditLimit":"500"}`)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), apperrors.ErrCreditLimitExceeded.Error())
}

func (suite *HandlerTestSuite) TestGetWallet_ErrorMapping() {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperrors.ErrWalletNotFound, http.StatusNotFound},
		{"other owner", apperrors.ErrWalletOwnershipMismatch, http.StatusForbidden},
		{"store down", apperrors.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.mockWallets.On("GetWalletByID", mock.Anything, "w-x", testUserID).Return(nil, tc.err).Once()

			w := suite.request(http.MethodGet, "/api/v1/wallets/w-x", "")
			suite.Equal(tc.status, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestListWallets() {
	suite.mockWallets.On("ListWallets", mock.Anything, testUserID).
		Return([]domain.Wallet{*testWallet("a", domain.Cash, "10"), *testWallet("b", domain.BankAccount, "20")}, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/wallets", "")
	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListWalletsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Wallets, 2)
	suite.Nil(body.Wallets[0].AvailableCredit)
}

func (suite *HandlerTestSuite) TestUpdateWallet_Conflict() {
	suite.mockWallets.On("UpdateWallet", mock.Anything, "w-1",
		mock.MatchedBy(func(req dto.UpdateWalletRequest) bool {
			return req.Name != nil && *req.Name == "Renamed" && req.WalletType == nil
		}),
		testUserID,
	).Return(nil, apperrors.ErrConflict).Once()

	w := suite.request(http.MethodPut, "/api/v1/wallets/w-1", `{"name":"Renamed"}`)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), `"code":"CONFLICT"`)
}

func (suite *HandlerTestSuite) TestDeleteWallet() {
	result := &dto.DeleteWalletResult{WalletID: "w-1", DeletedTransactions: 3}
	suite.mockWallets.On("DeleteWallet", mock.Anything, "w-1", testUserID).Return(result, nil).Once()

	w := suite.request(http.MethodDelete, "/api/v1/wallets/w-1", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"deletedTransactions":3`)
}

func (suite *HandlerTestSuite) TestReconcileWallet() {
	rec := &domain.Reconciliation{WalletID: "w-1", StoredBalance: dec("90"), ComputedBalance: dec("100"), Drift: dec("-10"), Repaired: true}
	suite.mockWallets.On("ReconcileWallet", mock.Anything, "w-1", testUserID, true).Return(rec, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/wallets/w-1/reconcile?repair=true", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"repaired":true`)

	w = suite.request(http.MethodPost, "/api/v1/wallets/w-1/reconcile?repair=maybe", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}
