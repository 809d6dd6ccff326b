package http

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/validator"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
	"github.com/x-xyz/launchpad/domain/marketplace"
	"github.com/x-xyz/launchpad/domain/marketplace/mocks"
)

var (
	alice = domain.Address("0x1111111111111111111111111111111111111111")
	art   = domain.Address("0x5fbdb2315678afecb367f032d93f642f64180aa3")
)

type handlerSuite struct {
	suite.Suite

	e  *echo.Echo
	uc *mocks.UseCase
	h  *handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(goValidator.New())
	s.uc = &mocks.UseCase{}
	s.h = &handler{s.uc}
}

func (s *handlerSuite) TearDownTest() {
	s.uc.AssertExpectations(s.T())
}

func (s *handlerSuite) serve(req *http.Request, fn echo.HandlerFunc) (int, json.RawMessage) {
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())
	c.Set("address", alice)
	s.Require().NoError(fn(c))

	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp.Data
}

func post(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func (s *handlerSuite) TestList() {
	price, _ := new(big.Int).SetString("1500000000000000000", 10)
	s.uc.On("List", mock.Anything, alice, art, domain.TokenId("1"), price).
		Return(&ledger.Receipt{TxHash: "0xabc", Status: ledger.StatusSuccess}, nil).Once()

	code, data := s.serve(post("/marketplace/list",
		`{"contractAddress":"0x5FbDB2315678afecb367f032d93F642f64180aa3","tokenId":"1","price":"1.5"}`), s.h.list)
	s.Require().Equal(http.StatusOK, code)
	receipt := ledger.Receipt{}
	s.Require().NoError(json.Unmarshal(data, &receipt))
	s.Equal(domain.TxHash("0xabc"), receipt.TxHash)
}

func (s *handlerSuite) TestListInvalidParams() {
	for _, body := range []string{
		`{"contractAddress":"0x5fbdb2315678afecb367f032d93f642f64180aa3","tokenId":"1","price":"abc"}`,
		`{"contractAddress":"nope","tokenId":"1","price":"1"}`,
		`{"contractAddress":"0x5fbdb2315678afecb367f032d93f642f64180aa3","tokenId":"x","price":"1"}`,
	} {
		code, _ := s.serve(post("/marketplace/list", body), s.h.list)
		s.Equal(http.StatusBadRequest, code, body)
	}
}

func (s *handlerSuite) TestBuyErrorStatus() {
	cases := map[error]int{
		domain.ErrNotListed:           http.StatusUnprocessableEntity,
		domain.ErrInsufficientPayment: http.StatusUnprocessableEntity,
		domain.ErrNotApproved:         http.StatusForbidden,
		domain.ErrLockTimeout:         http.StatusServiceUnavailable,
	}
	for err, status := range cases {
		s.uc.On("Buy", mock.Anything, alice, art, domain.TokenId("7"), mock.Anything).Return(nil, err).Once()

		code, _ := s.serve(post("/marketplace/buy",
			`{"contractAddress":"0x5fbdb2315678afecb367f032d93f642f64180aa3","tokenId":"7","payment":"2"}`), s.h.buy)
		s.Equal(status, code, err.Error())
	}
}

func (s *handlerSuite) TestUnlistForbidden() {
	s.uc.On("Unlist", mock.Anything, alice, art, domain.TokenId("3")).Return(nil, domain.ErrNotSeller).Once()

	code, data := s.serve(post("/marketplace/unlist",
		`{"contractAddress":"0x5fbdb2315678afecb367f032d93f642f64180aa3","tokenId":"3"}`), s.h.unlist)
	s.Equal(http.StatusForbidden, code)
	s.JSONEq(`"`+domain.ErrNotSeller.Error()+`"`, string(data))
}

func (s *handlerSuite) TestListings() {
	views := []*marketplace.ListingView{{
		Listing:        &marketplace.Listing{Collection: art, TokenId: "1", Seller: alice, Price: "1000000000000000000", Active: true},
		TokenUri:       "ipfs://bafymeta",
		CollectionName: "Art",
		Symbol:         "ART",
	}}
	s.uc.On("ActiveListings", mock.Anything, mock.MatchedBy(func(f marketplace.ListingFilter) bool {
		return f.Collection != nil && *f.Collection == art && f.MaxPrice != nil && *f.MaxPrice == 2 && f.Limit == 10
	})).Return(views, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/marketplace/listings?collection=0x5FbDB2315678afecb367f032d93F642f64180aa3&maxPrice=2&limit=10", nil)
	code, data := s.serve(req, s.h.listings)
	s.Require().Equal(http.StatusOK, code)

	res := []map[string]interface{}{}
	s.Require().NoError(json.Unmarshal(data, &res))
	s.Require().Len(res, 1)
	s.Equal("Art", res[0]["collectionName"])
	s.Equal("1", res[0]["tokenId"])
	s.Equal(true, res[0]["active"])
}

func (s *handlerSuite) TestListingsLimitTooLarge() {
	req := httptest.NewRequest(http.MethodGet, "/marketplace/listings?limit=500", nil)
	code, _ := s.serve(req, s.h.listings)
	s.Equal(http.StatusBadRequest, code)
}
