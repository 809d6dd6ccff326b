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
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/validator"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/balance/balancetest"
	"github.com/x-xyz/launchpad/domain/ledger/ledgertest"
	"github.com/x-xyz/launchpad/domain/staking"
	"github.com/x-xyz/launchpad/domain/staking/stakingtest"
	balanceUC "github.com/x-xyz/launchpad/stores/balance/usecase"
	stakingUC "github.com/x-xyz/launchpad/stores/staking/usecase"
)

var (
	operator = domain.Address("0x00000000000000000000000000000000000000f0")
	pool     = domain.Address("0x00000000000000000000000000000000000000f4")
	owner    = domain.Address("0x9999999999999999999999999999999999999999")
	alice    = domain.Address("0x1111111111111111111111111111111111111111")
)

type handlerSuite struct {
	suite.Suite

	e *echo.Echo
	h *handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(goValidator.New())

	balances := balancetest.NewRepo()
	repo := stakingtest.NewRepo()
	l := ledgertest.NewExecutor(balances, repo)
	bank := balanceUC.New(&balanceUC.Cfg{Repo: balances, Ledger: l, Operator: operator})
	uc := stakingUC.New(&stakingUC.Cfg{Repo: repo, Ledger: l, Bank: bank, Address: pool})
	_, err := uc.InitPool(ctx.Background(), staking.PoolConfig{
		StakingToken: domain.NativeToken,
		RewardToken:  domain.NativeToken,
		Owner:        owner,
		RewardBudget: big.NewInt(1e18),
	})
	s.Require().NoError(err)
	_, err = bank.Faucet(ctx.Background(), alice, new(big.Int).Mul(big.NewInt(5), big.NewInt(1e18)))
	s.Require().NoError(err)

	s.h = &handler{uc}
}

func (s *handlerSuite) serve(req *http.Request, caller domain.Address, fn echo.HandlerFunc) (int, json.RawMessage) {
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())
	c.Set("address", caller)
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

func (s *handlerSuite) TestStakeNativeCoin() {
	code, _ := s.serve(post("/staking/stake", `{"amount":"1.5"}`), alice, s.h.stake)
	s.Require().Equal(http.StatusOK, code)

	req := httptest.NewRequest(http.MethodGet, "/staking/accounts/"+string(alice), nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.SetParamNames("address")
	c.SetParamValues(string(alice))
	c.Set("ctx", ctx.Background())
	s.Require().NoError(s.h.getAccount(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp struct {
		Data staking.AccountView `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(domain.Amount("1500000000000000000"), resp.Data.Balance)
}

func (s *handlerSuite) TestStakeTooMuch() {
	code, _ := s.serve(post("/staking/stake", `{"amount":"6"}`), alice, s.h.stake)
	s.Equal(http.StatusUnprocessableEntity, code)

	code, _ = s.serve(post("/staking/stake", `{"amount":"0"}`), alice, s.h.stake)
	s.Equal(http.StatusBadRequest, code)
}

func (s *handlerSuite) TestClaimNothing() {
	code, data := s.serve(post("/staking/claim", ``), alice, s.h.claim)
	s.Equal(http.StatusUnprocessableEntity, code)
	s.JSONEq(`"`+domain.ErrNothingToClaim.Error()+`"`, string(data))
}

func (s *handlerSuite) TestSetRewardRateOwnerOnly() {
	code, _ := s.serve(post("/staking/reward-rate", `{"rate":"5","duration":60}`), alice, s.h.setRewardRate)
	s.Equal(http.StatusForbidden, code)

	code, _ = s.serve(post("/staking/reward-rate", `{"rate":"5","duration":60}`), owner, s.h.setRewardRate)
	s.Equal(http.StatusOK, code)
}
