package http

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/launchpad/base/abi"
	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/validator"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/ledger"
	"github.com/x-xyz/launchpad/domain/ledger/ledgertest"
)

var (
	market = domain.Address("0x00000000000000000000000000000000000000f3")
	alice  = domain.Address("0x1111111111111111111111111111111111111111")
)

type handlerSuite struct {
	suite.Suite

	e       *echo.Echo
	ledger  *ledgertest.Executor
	h       *handler
	receipt *ledger.Receipt
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(goValidator.New())
	s.ledger = ledgertest.NewExecutor()
	s.h = &handler{s.ledger}

	receipt, err := s.ledger.Execute(ctx.Background(), ledger.Call{From: alice, To: market, Method: "listNFT"}, func(c ctx.Ctx, tx *ledger.Tx) error {
		return tx.Emit(abi.PackListedLog(market.ToCommon(), &abi.ListedLog{
			Collection: alice.ToCommon(),
			TokenId:    big.NewInt(1),
			Seller:     alice.ToCommon(),
			Price:      big.NewInt(10),
		}))
	})
	s.Require().NoError(err)
	s.receipt = receipt
}

func (s *handlerSuite) get(target string, names, values []string, fn echo.HandlerFunc) (int, json.RawMessage) {
	rec := httptest.NewRecorder()
	c := s.e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	c.Set("ctx", ctx.Background())
	s.Require().NoError(fn(c))

	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp.Data
}

func (s *handlerSuite) TestGetReceipt() {
	hash := string(s.receipt.TxHash)
	code, data := s.get("/tx/"+hash, []string{"hash"}, []string{hash}, s.h.getReceipt)
	s.Require().Equal(http.StatusOK, code)
	got := ledger.Receipt{}
	s.Require().NoError(json.Unmarshal(data, &got))
	s.Equal(s.receipt.TxHash, got.TxHash)
	s.Require().Len(got.Logs, 1)
	s.Equal("Listed", got.Logs[0].Event)

	missing := "0x" + "ab" + hash[4:]
	if missing == hash {
		missing = "0x" + "cd" + hash[4:]
	}
	code, _ = s.get("/tx/"+missing, []string{"hash"}, []string{missing}, s.h.getReceipt)
	s.Equal(http.StatusNotFound, code)

	code, _ = s.get("/tx/0x12", []string{"hash"}, []string{"0x12"}, s.h.getReceipt)
	s.Equal(http.StatusBadRequest, code)
}

func (s *handlerSuite) TestFindEvents() {
	code, data := s.get("/events?event=Listed", nil, nil, s.h.findEvents)
	s.Require().Equal(http.StatusOK, code)
	logs := []ledger.EventLog{}
	s.Require().NoError(json.Unmarshal(data, &logs))
	s.Require().Len(logs, 1)
	s.Equal(market, logs[0].Address)

	code, data = s.get("/events?event=Sold", nil, nil, s.h.findEvents)
	s.Require().Equal(http.StatusOK, code)
	s.JSONEq(`[]`, string(data))

	code, _ = s.get("/events?fromBlock=5&toBlock=1", nil, nil, s.h.findEvents)
	s.Equal(http.StatusBadRequest, code)
}

func (s *handlerSuite) TestLatestBlock() {
	code, data := s.get("/blocks/latest", nil, nil, s.h.latestBlock)
	s.Require().Equal(http.StatusOK, code)
	s.JSONEq(`{"blockNumber":1}`, string(data))
}
